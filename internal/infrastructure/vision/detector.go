//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
)

// GoCVDetector ищет кандидатов в дефекты на кадрах одного видеопотока.
type GoCVDetector struct {
	Params Params

	pre     *Preprocessor
	mask    *MaskBuilder
	extract *BlobExtractor
}

// NewGoCVDetector создаёт детектор с собственной моделью фона.
func NewGoCVDetector(p Params) *GoCVDetector {
	return &GoCVDetector{
		Params:  p,
		pre:     NewPreprocessor(p),
		mask:    NewMaskBuilder(p),
		extract: NewBlobExtractor(p.Filter),
	}
}

// Detect прогоняет кадр через предобработку, маску и отбор областей.
func (d *GoCVDetector) Detect(ctx context.Context, frame *entity.Frame) (*entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	mat, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Data)
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", frame.Index, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, entity.NewInputError("frame %d decoded to an empty image", frame.Index)
	}

	equalized, offset, err := d.pre.Apply(mat)
	if err != nil {
		return nil, fmt.Errorf("preprocess frame %d: %w", frame.Index, err)
	}
	defer equalized.Close()

	mask := d.mask.Build(equalized)
	defer mask.Close()

	return &entity.Detection{
		ROIOffset:  offset,
		Candidates: d.extract.Extract(mask, equalized),
	}, nil
}

// Close освобождает ресурсы OpenCV.
func (d *GoCVDetector) Close() error {
	return errors.Join(d.pre.Close(), d.mask.Close())
}

// Проверка реализации интерфейса
var _ port.CandidateDetector = (*GoCVDetector)(nil)
