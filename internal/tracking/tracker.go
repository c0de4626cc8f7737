// Package tracking связывает покадровых кандидатов в треки, подтверждает
// устойчивые треки и удаляет пропавшие.
//
// Tracker не потокобезопасен: один экземпляр обслуживает один видеопоток,
// кадры подаются строго по очереди.
package tracking

import (
	"sort"

	"road-inspector/internal/domain/entity"
)

// Tracker хранит живые треки одного видеопотока.
type Tracker struct {
	cfg    Config
	assign assignFunc

	tracks    map[int64]*entity.Track
	nextID    int64
	unique    int
	lastFrame int64
}

// New создаёт трекер. Некорректные параметры отклоняются сразу.
func New(cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tracker{
		cfg:    cfg,
		assign: assignerFor(cfg.Association),
	}
	t.Reset()
	return t, nil
}

// Reset начинает новый прогон: треки, счётчик дефектов и выдача ID сбрасываются.
func (t *Tracker) Reset() {
	t.tracks = make(map[int64]*entity.Track)
	t.nextID = 1
	t.unique = 0
	t.lastFrame = 0
}

// Update обрабатывает кандидатов кадра frameIndex и возвращает подтверждения,
// случившиеся на этом кадре, в порядке возрастания ID трека.
//
// frameIndex должен строго возрастать между вызовами; пропущенные кадры
// допускаются и считаются разрывом. Кандидаты должны быть провалидированы.
func (t *Tracker) Update(frameIndex int64, detections []entity.Candidate) []entity.Confirmation {
	t.lastFrame = frameIndex

	live := t.sorted()
	centers := make([]entity.Point, len(detections))
	for i, d := range detections {
		centers[i] = d.Center()
	}

	assigned := t.assign(centers, live, t.cfg.MaxMatchDistance)

	for di, ti := range assigned {
		if ti < 0 {
			continue
		}
		tr := live[ti]
		tr.Box = detections[di].Box()
		tr.Centroid = centers[di]
		if tr.LastSeen == frameIndex-1 {
			tr.Consecutive++
		} else {
			tr.Consecutive = 1
		}
		tr.LastSeen = frameIndex
	}

	for di := range detections {
		if di < len(assigned) && assigned[di] >= 0 {
			continue
		}
		t.spawn(frameIndex, detections[di], centers[di])
	}

	var confirmations []entity.Confirmation
	for _, tr := range t.sorted() {
		if tr.Confirmed || tr.Consecutive < t.cfg.ConfirmFrames {
			continue
		}
		tr.Confirmed = true
		t.unique++
		confirmations = append(confirmations, entity.Confirmation{
			TrackID:     tr.ID,
			FrameIndex:  frameIndex,
			Consecutive: tr.Consecutive,
			FirstSeen:   tr.FirstSeen,
			Box:         tr.Box,
		})
	}

	for id, tr := range t.tracks {
		if frameIndex-tr.LastSeen > int64(t.cfg.MaxLostFrames) {
			delete(t.tracks, id)
		}
	}

	return confirmations
}

func (t *Tracker) spawn(frameIndex int64, d entity.Candidate, center entity.Point) {
	id := t.nextID
	t.nextID++
	t.tracks[id] = &entity.Track{
		ID:          id,
		Box:         d.Box(),
		Centroid:    center,
		FirstSeen:   frameIndex,
		LastSeen:    frameIndex,
		Consecutive: 1,
	}
}

// sorted возвращает живые треки по возрастанию ID.
func (t *Tracker) sorted() []*entity.Track {
	out := make([]*entity.Track, 0, len(t.tracks))
	for _, tr := range t.tracks {
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Snapshot возвращает копии живых треков по возрастанию ID.
func (t *Tracker) Snapshot() []entity.Track {
	live := t.sorted()
	out := make([]entity.Track, len(live))
	for i, tr := range live {
		out[i] = *tr
	}
	return out
}

// UniqueCount возвращает число подтверждённых дефектов за прогон.
func (t *Tracker) UniqueCount() int {
	return t.unique
}

// LastFrame возвращает номер последнего обработанного кадра (0 до первого).
func (t *Tracker) LastFrame() int64 {
	return t.lastFrame
}

// Len возвращает число живых треков.
func (t *Tracker) Len() int {
	return len(t.tracks)
}
