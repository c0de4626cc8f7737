package entity

// TrackState состояние трека
type TrackState string

const (
	TrackTentative TrackState = "tentative" // ещё не подтверждён
	TrackConfirmed TrackState = "confirmed" // подтверждён, обратно не сбрасывается
)

// Track один физический дефект, прослеживаемый между кадрами
type Track struct {
	ID          int64 // уникален в пределах прогона, не переиспользуется
	Box         Box   // последняя сопоставленная рамка
	Centroid    Point // центр последней рамки
	FirstSeen   int64 // кадр создания
	LastSeen    int64 // последний кадр с сопоставлением
	Consecutive int   // число подряд идущих кадров с сопоставлением
	Confirmed   bool  // выставляется один раз
}

// State возвращает состояние трека
func (t Track) State() TrackState {
	if t.Confirmed {
		return TrackConfirmed
	}
	return TrackTentative
}

// Shift переводит трек из координат ROI в координаты кадра.
func (t Track) Shift(dy int) Track {
	t.Box = t.Box.Shift(dy)
	t.Centroid.Y += dy
	return t
}

// Confirmation событие подтверждения дефекта
type Confirmation struct {
	TrackID     int64
	FrameIndex  int64
	Consecutive int
	FirstSeen   int64
	Box         Box
}

// FramesToConfirm возвращает, сколько кадров прошло от создания трека до подтверждения.
func (c Confirmation) FramesToConfirm() int64 {
	return c.FrameIndex - c.FirstSeen + 1
}
