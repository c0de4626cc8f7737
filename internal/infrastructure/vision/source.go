//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"io"

	"gocv.io/x/gocv"

	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
)

// VideoSource читает кадры из видеофайла или камеры.
type VideoSource struct {
	capture *gocv.VideoCapture
	buf     gocv.Mat
	index   int64
	width   int
	height  int
	fps     float64
}

// OpenVideoSource открывает файл или устройство (числовой индекс камеры).
func OpenVideoSource(source string) (*VideoSource, error) {
	capture, err := gocv.OpenVideoCapture(source)
	if err != nil {
		return nil, fmt.Errorf("open video source %q: %w", source, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("open video source %q: not opened", source)
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 30
	}

	return &VideoSource{
		capture: capture,
		buf:     gocv.NewMat(),
		width:   int(capture.Get(gocv.VideoCaptureFrameWidth)),
		height:  int(capture.Get(gocv.VideoCaptureFrameHeight)),
		fps:     fps,
	}, nil
}

// Read возвращает следующий кадр. Конец потока отдаётся как io.EOF.
func (s *VideoSource) Read(ctx context.Context) (*entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok := s.capture.Read(&s.buf); !ok || s.buf.Empty() {
		return nil, io.EOF
	}

	s.index++
	return &entity.Frame{
		Index:    s.index,
		Width:    s.buf.Cols(),
		Height:   s.buf.Rows(),
		Channels: s.buf.Channels(),
		Data:     s.buf.ToBytes(),
	}, nil
}

// Size возвращает заявленный размер кадра.
func (s *VideoSource) Size() (width, height int) {
	return s.width, s.height
}

// FPS возвращает частоту кадров (30, если источник её не сообщает).
func (s *VideoSource) FPS() float64 {
	return s.fps
}

// Close закрывает источник.
func (s *VideoSource) Close() error {
	s.buf.Close()
	return s.capture.Close()
}

var _ port.FrameSource = (*VideoSource)(nil)
