package entity

// BGRChannels число каналов цветного кадра
const BGRChannels = 3

// Frame цветной кадр видеопотока (BGR, 8 бит на канал, построчно)
type Frame struct {
	Index    int64  // номер кадра, строго возрастает
	Width    int    // ширина в пикселях
	Height   int    // высота в пикселях
	Channels int    // число каналов
	Data     []byte // пиксели
}

// Validate отсекает пустые и повреждённые кадры до входа в конвейер.
func (f *Frame) Validate() error {
	if f == nil {
		return NewInputError("frame is nil")
	}
	if f.Index <= 0 {
		return NewInputError("frame index must be positive, got %d", f.Index)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return NewInputError("frame %d has zero dimensions %dx%d", f.Index, f.Width, f.Height)
	}
	if f.Channels != BGRChannels {
		return NewInputError("frame %d has %d channels, want %d", f.Index, f.Channels, BGRChannels)
	}
	if want := f.Width * f.Height * f.Channels; len(f.Data) != want {
		return NewInputError("frame %d has %d bytes, want %d", f.Index, len(f.Data), want)
	}
	return nil
}

// Detection результат детектора для одного кадра (координаты ROI)
type Detection struct {
	ROIOffset  int         // смещение ROI по вертикали
	Candidates []Candidate // кандидаты в координатах ROI
}
