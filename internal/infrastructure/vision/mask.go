//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// MaskBuilder собирает бинарную маску кандидатов: (движение И темнота) ИЛИ контуры.
// Модель фона накапливается между кадрами одного потока.
type MaskBuilder struct {
	params Params
	bg     gocv.BackgroundSubtractorMOG2
	kernel gocv.Mat
}

// NewMaskBuilder создаёт построитель маски с пустой моделью фона.
func NewMaskBuilder(p Params) *MaskBuilder {
	return &MaskBuilder{
		params: p,
		bg:     gocv.NewBackgroundSubtractorMOG2WithParams(p.BackgroundHistory, p.BackgroundVarThreshold, false),
		kernel: gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(p.MorphKernel, p.MorphKernel)),
	}
}

// Build обновляет модель фона и возвращает маску (255 кандидат, 0 фон).
// Вызывающий закрывает возвращённую матрицу.
func (m *MaskBuilder) Build(equalized gocv.Mat) gocv.Mat {
	motion := gocv.NewMat()
	defer motion.Close()
	m.bg.Apply(equalized, &motion)
	// Убираем точечный шум, затем заполняем мелкие разрывы.
	m.morph(&motion, gocv.MorphOpen, m.params.MorphOpenIterations)
	m.morph(&motion, gocv.MorphClose, m.params.MorphCloseIterations)

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(equalized, &dark, float32(m.params.DarkThreshold), 255, gocv.ThresholdBinaryInv)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(equalized, &edges, float32(m.params.CannyLow), float32(m.params.CannyHigh))

	combined := gocv.NewMat()
	gocv.BitwiseAnd(motion, dark, &combined)
	gocv.BitwiseOr(combined, edges, &combined)

	m.morph(&combined, gocv.MorphClose, m.params.MorphCloseIterations)
	m.morph(&combined, gocv.MorphOpen, m.params.MorphOpenIterations)

	return combined
}

func (m *MaskBuilder) morph(mat *gocv.Mat, op gocv.MorphType, iterations int) {
	if iterations <= 0 {
		return
	}
	gocv.MorphologyExWithParams(*mat, mat, op, m.kernel, iterations, gocv.BorderConstant)
}

// Close освобождает модель фона и ядро.
func (m *MaskBuilder) Close() error {
	if err := m.bg.Close(); err != nil {
		return err
	}
	return m.kernel.Close()
}
