package vision

import (
	"fmt"
	"image"
	"math"

	"road-inspector/internal/domain/entity"
)

// FilterConfig пороги отбора связных областей маски.
type FilterConfig struct {
	MinArea          float64
	MaxArea          float64
	AspectMin        float64 // минимум w/h
	AspectMax        float64 // максимум w/h
	MinFillRatio     float64 // минимум area/(w*h)
	MaxMeanIntensity float64 // максимум средней яркости внутри рамки
}

// DefaultFilterConfig возвращает пороги по умолчанию.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinArea:          6000,
		MaxArea:          40000,
		AspectMin:        1.2,
		AspectMax:        3.2,
		MinFillRatio:     0.2,
		MaxMeanIntensity: 220,
	}
}

// Validate проверяет согласованность порогов.
func (f FilterConfig) Validate() error {
	if !(f.MinArea >= 0) || !(f.MinArea <= f.MaxArea) || math.IsInf(f.MaxArea, 0) {
		return fmt.Errorf("area bounds must satisfy 0 <= min <= max, got %v..%v", f.MinArea, f.MaxArea)
	}
	if !(f.AspectMin > 0) || !(f.AspectMin <= f.AspectMax) || math.IsInf(f.AspectMax, 0) {
		return fmt.Errorf("aspect bounds must satisfy 0 < min <= max, got %v..%v", f.AspectMin, f.AspectMax)
	}
	if !(f.MinFillRatio >= 0 && f.MinFillRatio <= 1) {
		return fmt.Errorf("min fill ratio must be in [0, 1], got %v", f.MinFillRatio)
	}
	if !inByteRange(f.MaxMeanIntensity) {
		return fmt.Errorf("max mean intensity must be in [0, 255], got %v", f.MaxMeanIntensity)
	}
	return nil
}

// Region связная область маски с посчитанными признаками.
type Region struct {
	Rect          image.Rectangle // рамка в координатах ROI
	Area          float64         // площадь контура
	MeanIntensity float64         // средняя яркость выровненного ROI внутри рамки
	Sampled       bool            // false, если область выборки яркости пуста
}

// AcceptShape проверяет площадь, соотношение сторон и заполненность.
// Нулевая ширина или высота рамки отклоняет область.
func (f FilterConfig) AcceptShape(r Region) bool {
	if math.IsNaN(r.Area) || r.Area < f.MinArea || r.Area > f.MaxArea {
		return false
	}

	w, h := r.Rect.Dx(), r.Rect.Dy()
	if w <= 0 || h <= 0 {
		return false
	}

	aspect := float64(w) / float64(h)
	if aspect < f.AspectMin || aspect > f.AspectMax {
		return false
	}

	fill := r.Area / float64(w*h)
	return fill >= f.MinFillRatio
}

// Accept проверяет все четыре условия сразу.
func (f FilterConfig) Accept(r Region) bool {
	if !f.AcceptShape(r) {
		return false
	}
	if !r.Sampled || math.IsNaN(r.MeanIntensity) {
		return false
	}
	return r.MeanIntensity <= f.MaxMeanIntensity
}

// Candidate превращает принятую область в кандидата.
func (f FilterConfig) Candidate(r Region) (entity.Candidate, bool) {
	if !f.Accept(r) {
		return entity.Candidate{}, false
	}
	return entity.Candidate{
		X:             r.Rect.Min.X,
		Y:             r.Rect.Min.Y,
		Width:         r.Rect.Dx(),
		Height:        r.Rect.Dy(),
		Area:          r.Area,
		MeanIntensity: r.MeanIntensity,
	}, true
}

// sampleRect возвращает часть рамки, лежащую внутри изображения cols×rows.
func sampleRect(rect image.Rectangle, cols, rows int) image.Rectangle {
	return rect.Intersect(image.Rect(0, 0, cols, rows))
}
