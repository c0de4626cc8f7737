//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
)

type GoCVDetector struct {
	Params Params
}

// NewGoCVDetector создаёт детектор-заглушку (без OpenCV).
func NewGoCVDetector(p Params) *GoCVDetector {
	return &GoCVDetector{Params: p}
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) Detect(ctx context.Context, frame *entity.Frame) (*entity.Detection, error) {
	_ = ctx
	_ = frame
	return nil, ErrNoGoCV
}

// Close ничего не освобождает.
func (d *GoCVDetector) Close() error {
	return nil
}

var _ port.CandidateDetector = (*GoCVDetector)(nil)
