package port

import (
	"context"

	"road-inspector/internal/domain/entity"
)

// FrameSource источник кадров. По окончании потока Read возвращает io.EOF.
type FrameSource interface {
	Read(ctx context.Context) (*entity.Frame, error)
	Close() error
}
