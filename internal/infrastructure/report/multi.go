package report

import (
	"context"
	"errors"
	"sync"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
)

// Multi рассылает отчёт всем зарегистрированным получателям.
// Получателей можно добавлять после запуска конвейера.
type Multi struct {
	mu    sync.RWMutex
	sinks []port.ReportSink
}

// NewMulti создаёт рассыльщика с начальным набором получателей
func NewMulti(sinks ...port.ReportSink) *Multi {
	return &Multi{sinks: sinks}
}

// Add регистрирует ещё одного получателя
func (m *Multi) Add(sink port.ReportSink) {
	m.mu.Lock()
	m.sinks = append(m.sinks, sink)
	m.mu.Unlock()
}

// Publish отдаёт отчёт каждому получателю и собирает их ошибки.
func (m *Multi) Publish(ctx context.Context, r *entity.FrameReport) error {
	m.mu.RLock()
	sinks := append([]port.ReportSink(nil), m.sinks...)
	m.mu.RUnlock()

	var errs []error
	for _, s := range sinks {
		if err := s.Publish(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ port.ReportSink = (*Multi)(nil)
