package app

import (
	"context"
	"sync"
	"sync/atomic"

	"road-inspector/internal/domain/entity"
)

// FrameQueue ограниченная очередь между читателем кадров и конвейером.
//
// В режиме без блокировки новый кадр отбрасывается, если очередь полна:
// для живой камеры свежесть важнее полноты. В блокирующем режиме читатель
// ждёт свободного места (подходит для видеофайлов).
type FrameQueue struct {
	ch      chan *entity.Frame
	block   bool
	dropped atomic.Uint64
	once    sync.Once
}

// NewFrameQueue создаёт очередь глубиной depth (не меньше 1).
func NewFrameQueue(depth int, block bool) *FrameQueue {
	if depth < 1 {
		depth = 1
	}
	return &FrameQueue{
		ch:    make(chan *entity.Frame, depth),
		block: block,
	}
}

// Offer ставит кадр в очередь. Возвращает false, если кадр отброшен
// или контекст отменён.
func (q *FrameQueue) Offer(ctx context.Context, f *entity.Frame) bool {
	if q.block {
		select {
		case q.ch <- f:
			return true
		case <-ctx.Done():
			return false
		}
	}

	select {
	case q.ch <- f:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Frames возвращает канал для чтения кадров; закрывается после Close.
func (q *FrameQueue) Frames() <-chan *entity.Frame {
	return q.ch
}

// Close закрывает очередь. Повторный вызов безопасен.
// Offer после Close недопустим.
func (q *FrameQueue) Close() {
	q.once.Do(func() { close(q.ch) })
}

// Dropped возвращает число отброшенных кадров.
func (q *FrameQueue) Dropped() uint64 {
	return q.dropped.Load()
}
