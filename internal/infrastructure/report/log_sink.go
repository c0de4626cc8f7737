// Package report содержит получателей покадровых отчётов.
package report

import (
	"context"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
	"road-inspector/internal/monitoring"
)

// LogSink пишет подтверждения дефектов в лог.
type LogSink struct {
	// Verbose включает строку на каждый кадр с кандидатами.
	Verbose bool
}

// NewLogSink создаёт лог-получатель
func NewLogSink(verbose bool) *LogSink {
	return &LogSink{Verbose: verbose}
}

// Publish логирует подтверждения кадра.
func (s *LogSink) Publish(ctx context.Context, r *entity.FrameReport) error {
	if r == nil {
		return nil
	}
	if s.Verbose && len(r.Candidates) > 0 {
		monitoring.Logf("frame %d: %d candidates, %d live tracks", r.FrameIndex, len(r.Candidates), len(r.Tracks))
		for _, tr := range r.Tracks {
			monitoring.Logf("  track id=%d %s consecutive=%d last_seen=%d", tr.ID, tr.State(), tr.Consecutive, tr.LastSeen)
		}
	}
	for _, c := range r.Confirmations {
		monitoring.Logf("Confirmed defect id=%d at frame %d (seen %d consecutive frames), total=%d",
			c.TrackID, c.FrameIndex, c.Consecutive, r.UniqueDefects)
	}
	return nil
}

var _ port.ReportSink = (*LogSink)(nil)
