package vision

import (
	"fmt"
	"math"
)

// Params параметры предобработки, маски и фильтра кандидатов.
type Params struct {
	ROIStartFraction float64 // доля высоты кадра, с которой начинается ROI
	BlurKernel       int     // размер ядра Гаусса, нечётный
	CLAHEClipLimit   float64
	CLAHETileGrid    int

	BackgroundHistory      int     // длина истории MOG2
	BackgroundVarThreshold float64 // порог дисперсии MOG2

	DarkThreshold float64 // пиксели темнее считаются тёмными
	CannyLow      float64
	CannyHigh     float64

	MorphKernel          int // размер эллиптического ядра морфологии
	MorphOpenIterations  int
	MorphCloseIterations int

	Filter FilterConfig
}

// DefaultParams возвращает параметры, подобранные для дорожного видео 720p.
func DefaultParams() Params {
	return Params{
		ROIStartFraction:       0.35,
		BlurKernel:             7,
		CLAHEClipLimit:         2.0,
		CLAHETileGrid:          8,
		BackgroundHistory:      200,
		BackgroundVarThreshold: 50,
		DarkThreshold:          200,
		CannyLow:               60,
		CannyHigh:              140,
		MorphKernel:            7,
		MorphOpenIterations:    1,
		MorphCloseIterations:   2,
		Filter:                 DefaultFilterConfig(),
	}
}

// Validate проверяет параметры до обработки первого кадра.
func (p Params) Validate() error {
	if !(p.ROIStartFraction >= 0 && p.ROIStartFraction < 1) {
		return fmt.Errorf("roi start fraction must be in [0, 1), got %v", p.ROIStartFraction)
	}
	if p.BlurKernel <= 0 || p.BlurKernel%2 == 0 {
		return fmt.Errorf("blur kernel must be a positive odd number, got %d", p.BlurKernel)
	}
	if !(p.CLAHEClipLimit > 0) || math.IsInf(p.CLAHEClipLimit, 0) {
		return fmt.Errorf("clahe clip limit must be positive, got %v", p.CLAHEClipLimit)
	}
	if p.CLAHETileGrid <= 0 {
		return fmt.Errorf("clahe tile grid must be positive, got %d", p.CLAHETileGrid)
	}
	if p.BackgroundHistory <= 0 {
		return fmt.Errorf("background history must be positive, got %d", p.BackgroundHistory)
	}
	if !(p.BackgroundVarThreshold > 0) {
		return fmt.Errorf("background var threshold must be positive, got %v", p.BackgroundVarThreshold)
	}
	if !inByteRange(p.DarkThreshold) {
		return fmt.Errorf("dark threshold must be in [0, 255], got %v", p.DarkThreshold)
	}
	if !(p.CannyLow >= 0) || !(p.CannyLow <= p.CannyHigh) {
		return fmt.Errorf("canny thresholds must satisfy 0 <= low <= high, got %v/%v", p.CannyLow, p.CannyHigh)
	}
	if p.MorphKernel <= 0 {
		return fmt.Errorf("morph kernel must be positive, got %d", p.MorphKernel)
	}
	if p.MorphOpenIterations < 0 || p.MorphCloseIterations < 0 {
		return fmt.Errorf("morph iterations must not be negative, got open=%d close=%d",
			p.MorphOpenIterations, p.MorphCloseIterations)
	}
	return p.Filter.Validate()
}

// ROIOffset возвращает первую строку ROI для кадра высотой height.
func (p Params) ROIOffset(height int) int {
	return int(float64(height) * p.ROIStartFraction)
}

func inByteRange(v float64) bool {
	return v >= 0 && v <= 255
}
