package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
	"road-inspector/internal/monitoring"
)

// QueueConfig параметры очереди кадров
type QueueConfig struct {
	Depth int  // глубина очереди, 1–2
	Block bool // ждать место вместо отбрасывания нового кадра
}

// Runner читает кадры из источника в отдельной горутине и обрабатывает их
// по одному в вызывающей горутине.
type Runner struct {
	service *InspectionService
	queue   QueueConfig
}

// NewRunner создаёт цикл обработки
func NewRunner(service *InspectionService, queue QueueConfig) *Runner {
	return &Runner{service: service, queue: queue}
}

// Run обрабатывает поток до io.EOF или отмены контекста и возвращает итог.
// Ошибки отдельных кадров логируются, кадр пропускается.
func (r *Runner) Run(ctx context.Context, source port.FrameSource) (entity.RunSummary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := NewFrameQueue(r.queue.Depth, r.queue.Block)
	readErr := make(chan error, 1)

	go func() {
		defer queue.Close()
		for {
			frame, err := source.Read(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					readErr <- nil
				} else {
					readErr <- fmt.Errorf("read frame: %w", err)
				}
				return
			}
			queue.Offer(ctx, frame)
		}
	}()

	for frame := range queue.Frames() {
		if ctx.Err() != nil {
			break
		}
		if _, err := r.service.ProcessFrame(ctx, frame); err != nil {
			monitoring.Logf("Skipping frame %d: %v", frame.Index, err)
		}
	}

	// Разблокируем читателя, если цикл вышел по отмене.
	cancel()
	err := <-readErr

	r.service.AddDropped(queue.Dropped())
	return r.service.Summary(), err
}
