package port

import (
	"context"

	"road-inspector/internal/domain/entity"
)

// ReportSink получатель покадровых отчётов
type ReportSink interface {
	// Publish принимает отчёт по кадру; ошибка не прерывает конвейер
	Publish(ctx context.Context, report *entity.FrameReport) error
}
