package entity

// FrameReport хранит итог обработки одного кадра.
// Все координаты приведены к полному кадру.
type FrameReport struct {
	SessionID     string         // идентификатор прогона
	FrameIndex    int64          // номер кадра
	ImageWidth    int            // ширина кадра
	ImageHeight   int            // высота кадра
	ROIOffset     int            // смещение ROI по вертикали
	Candidates    []Candidate    // кандидаты текущего кадра
	Tracks        []Track        // живые треки после обновления
	Confirmations []Confirmation // подтверждения на этом кадре
	UniqueDefects int            // всего подтверждённых дефектов за прогон
}

// HasConfirmations сообщает, подтвердился ли на кадре хотя бы один дефект.
func (r *FrameReport) HasConfirmations() bool {
	return r != nil && len(r.Confirmations) > 0
}

// RunSummary итоговая статистика прогона
type RunSummary struct {
	SessionID             string
	FramesProcessed       int
	FramesSkipped         int
	FramesDropped         uint64
	UniqueDefects         int
	MeanFramesToConfirm   float64
	StdDevFramesToConfirm float64
}
