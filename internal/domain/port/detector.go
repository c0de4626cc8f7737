package port

import (
	"context"

	"road-inspector/internal/domain/entity"
)

// CandidateDetector интерфейс детектора кандидатов в дефекты
type CandidateDetector interface {
	// Detect анализирует кадр и возвращает кандидатов в координатах ROI
	Detect(ctx context.Context, frame *entity.Frame) (*entity.Detection, error)

	// Close освобождает модель фона и прочие ресурсы
	Close() error
}
