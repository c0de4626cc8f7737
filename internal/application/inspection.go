package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
	"road-inspector/internal/monitoring"
	"road-inspector/internal/tracking"
)

// InspectionService ведёт кадр через детектор и трекер одного видеопотока.
//
// ProcessFrame и Reset вызываются из одной горутины. Summary безопасно
// вызывать параллельно, например из обработчика команд бота.
type InspectionService struct {
	detector port.CandidateDetector
	tracker  *tracking.Tracker
	sink     port.ReportSink

	mu        sync.RWMutex
	sessionID string
	stats     runStats
}

type runStats struct {
	processed int
	skipped   int
	dropped   uint64
	unique    int
	toConfirm []float64
}

// NewInspectionService создаёт сервис проверки кадров.
func NewInspectionService(detector port.CandidateDetector, tracker *tracking.Tracker, sink port.ReportSink) *InspectionService {
	return &InspectionService{
		detector:  detector,
		tracker:   tracker,
		sink:      sink,
		sessionID: uuid.NewString(),
	}
}

// SessionID возвращает идентификатор текущего прогона.
func (s *InspectionService) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// ProcessFrame обрабатывает один кадр и возвращает отчёт в координатах кадра.
// Ошибка означает, что кадр пропущен и состояние трекера не изменилось.
func (s *InspectionService) ProcessFrame(ctx context.Context, frame *entity.Frame) (*entity.FrameReport, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}
	if s.tracker == nil {
		return nil, errors.New("tracker is not configured")
	}

	if err := frame.Validate(); err != nil {
		s.skip()
		return nil, err
	}
	if last := s.tracker.LastFrame(); frame.Index <= last {
		s.skip()
		return nil, entity.NewInputError("frame index %d does not follow %d", frame.Index, last)
	}

	det, err := s.detector.Detect(ctx, frame)
	if err != nil {
		s.skip()
		return nil, fmt.Errorf("detect frame %d: %w", frame.Index, err)
	}
	for i, c := range det.Candidates {
		if err := c.Validate(); err != nil {
			s.skip()
			return nil, fmt.Errorf("candidate %d of frame %d: %w", i, frame.Index, err)
		}
	}

	confirmations := s.tracker.Update(frame.Index, det.Candidates)
	report := s.buildReport(frame, det, confirmations)
	s.record(report)

	if s.sink != nil {
		if err := s.sink.Publish(ctx, report); err != nil {
			monitoring.Logf("Error publishing report for frame %d: %v", frame.Index, err)
		}
	}

	return report, nil
}

// buildReport переводит кандидатов, треки и подтверждения в координаты кадра.
func (s *InspectionService) buildReport(frame *entity.Frame, det *entity.Detection, confirmations []entity.Confirmation) *entity.FrameReport {
	dy := det.ROIOffset

	candidates := make([]entity.Candidate, len(det.Candidates))
	for i, c := range det.Candidates {
		candidates[i] = c.Shift(dy)
	}

	tracks := s.tracker.Snapshot()
	for i := range tracks {
		tracks[i] = tracks[i].Shift(dy)
	}

	for i := range confirmations {
		confirmations[i].Box = confirmations[i].Box.Shift(dy)
	}

	return &entity.FrameReport{
		SessionID:     s.SessionID(),
		FrameIndex:    frame.Index,
		ImageWidth:    frame.Width,
		ImageHeight:   frame.Height,
		ROIOffset:     dy,
		Candidates:    candidates,
		Tracks:        tracks,
		Confirmations: confirmations,
		UniqueDefects: s.tracker.UniqueCount(),
	}
}

func (s *InspectionService) skip() {
	s.mu.Lock()
	s.stats.skipped++
	s.mu.Unlock()
}

func (s *InspectionService) record(r *entity.FrameReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.processed++
	s.stats.unique = r.UniqueDefects
	for _, c := range r.Confirmations {
		s.stats.toConfirm = append(s.stats.toConfirm, float64(c.FramesToConfirm()))
	}
}

// AddDropped учитывает кадры, отброшенные очередью до обработки.
func (s *InspectionService) AddDropped(n uint64) {
	s.mu.Lock()
	s.stats.dropped += n
	s.mu.Unlock()
}

// Summary возвращает статистику текущего прогона.
func (s *InspectionService) Summary() entity.RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mean, std := meanStdDev(s.stats.toConfirm)
	return entity.RunSummary{
		SessionID:             s.sessionID,
		FramesProcessed:       s.stats.processed,
		FramesSkipped:         s.stats.skipped,
		FramesDropped:         s.stats.dropped,
		UniqueDefects:         s.stats.unique,
		MeanFramesToConfirm:   mean,
		StdDevFramesToConfirm: std,
	}
}

// Reset начинает новый прогон с новым идентификатором сессии.
// Модель фона детектора при этом не сбрасывается.
func (s *InspectionService) Reset() {
	if s.tracker != nil {
		s.tracker.Reset()
	}

	s.mu.Lock()
	s.sessionID = uuid.NewString()
	s.stats = runStats{}
	s.mu.Unlock()
}
