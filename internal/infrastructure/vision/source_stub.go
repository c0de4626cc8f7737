//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
)

type VideoSource struct{}

// OpenVideoSource возвращает ошибку, если сборка без тега gocv.
func OpenVideoSource(source string) (*VideoSource, error) {
	_ = source
	return nil, ErrNoGoCV
}

// Read возвращает ошибку, если сборка без тега gocv.
func (s *VideoSource) Read(ctx context.Context) (*entity.Frame, error) {
	_ = ctx
	return nil, ErrNoGoCV
}

// Size всегда нулевой.
func (s *VideoSource) Size() (width, height int) {
	return 0, 0
}

// FPS всегда нулевой.
func (s *VideoSource) FPS() float64 {
	return 0
}

// Close ничего не делает.
func (s *VideoSource) Close() error {
	return nil
}

var _ port.FrameSource = (*VideoSource)(nil)
