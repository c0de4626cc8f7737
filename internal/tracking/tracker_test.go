package tracking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"road-inspector/internal/domain/entity"
)

// at возвращает кандидата 20×10 с центром в (cx, cy).
func at(cx, cy int) entity.Candidate {
	return entity.Candidate{X: cx - 10, Y: cy - 5, Width: 20, Height: 10, Area: 150, MeanIntensity: 60}
}

func newTracker(t *testing.T, mutate ...func(*Config)) *Tracker {
	t.Helper()
	cfg := Config{ConfirmFrames: 3, MaxLostFrames: 5, MaxMatchDistance: 60, Association: AssociationGreedy}
	for _, m := range mutate {
		m(&cfg)
	}
	tr, err := New(cfg)
	require.NoError(t, err)
	return tr
}

func TestTracker_ConfirmsOnThirdConsecutiveFrame(t *testing.T) {
	tr := newTracker(t)

	require.Empty(t, tr.Update(1, []entity.Candidate{at(100, 100)}))
	require.Empty(t, tr.Update(2, []entity.Candidate{at(100, 100)}))
	events := tr.Update(3, []entity.Candidate{at(100, 100)})

	require.Len(t, events, 1)
	require.Equal(t, int64(1), events[0].TrackID)
	require.Equal(t, int64(3), events[0].FrameIndex)
	require.Equal(t, 3, events[0].Consecutive)
	require.Equal(t, 1, tr.UniqueCount())
	require.Equal(t, 1, tr.Len())
}

func TestTracker_GapResetsConsecutive(t *testing.T) {
	tr := newTracker(t)

	tr.Update(1, []entity.Candidate{at(100, 100)})
	tr.Update(2, nil)
	events := tr.Update(3, []entity.Candidate{at(100, 100)})

	require.Empty(t, events)
	snap := tr.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, 1, snap[0].Consecutive)
	require.False(t, snap[0].Confirmed)
	require.Equal(t, 0, tr.UniqueCount())
}

func TestTracker_SkippedFrameIndexCountsAsGap(t *testing.T) {
	tr := newTracker(t)

	tr.Update(1, []entity.Candidate{at(100, 100)})
	tr.Update(2, []entity.Candidate{at(100, 100)})
	// Кадр 3 не дошёл до трекера.
	require.Empty(t, tr.Update(4, []entity.Candidate{at(100, 100)}))
	require.Equal(t, 1, tr.Snapshot()[0].Consecutive)
}

func TestTracker_FarCandidatesSpawnSeparateTracks(t *testing.T) {
	tr := newTracker(t)

	tr.Update(1, []entity.Candidate{at(100, 100), at(300, 100)})

	snap := tr.Snapshot()
	require.Len(t, snap, 2)
	require.NotEqual(t, snap[0].ID, snap[1].ID)
	require.Equal(t, int64(1), snap[0].ID)
	require.Equal(t, int64(2), snap[1].ID)
}

func TestTracker_ConfirmsExactlyOnce(t *testing.T) {
	tr := newTracker(t)

	var events []entity.Confirmation
	for f := int64(1); f <= 10; f++ {
		events = append(events, tr.Update(f, []entity.Candidate{at(100+int(f), 100)})...)
	}

	require.Len(t, events, 1)
	require.Equal(t, int64(3), events[0].FrameIndex)
	require.Equal(t, 1, tr.UniqueCount())

	snap := tr.Snapshot()
	require.Len(t, snap, 1)
	require.True(t, snap[0].Confirmed)
	require.Equal(t, 10, snap[0].Consecutive)
}

func TestTracker_ConfirmedTrackStaysConfirmedAfterGap(t *testing.T) {
	tr := newTracker(t)
	for f := int64(1); f <= 3; f++ {
		tr.Update(f, []entity.Candidate{at(100, 100)})
	}
	tr.Update(4, nil)
	require.Empty(t, tr.Update(5, []entity.Candidate{at(100, 100)}))
	require.Empty(t, tr.Update(6, []entity.Candidate{at(100, 100)}))
	require.Empty(t, tr.Update(7, []entity.Candidate{at(100, 100)}))

	snap := tr.Snapshot()
	require.True(t, snap[0].Confirmed)
	require.Equal(t, 3, snap[0].Consecutive)
	require.Equal(t, 1, tr.UniqueCount())
}

func TestTracker_Retirement(t *testing.T) {
	tr := newTracker(t)
	tr.Update(1, []entity.Candidate{at(100, 100)})

	// Пять кадров без сопоставления: трек жив.
	for f := int64(2); f <= 6; f++ {
		tr.Update(f, nil)
	}
	require.Equal(t, 1, tr.Len())

	// Шестой подряд: удалён.
	tr.Update(7, nil)
	require.Equal(t, 0, tr.Len())
}

func TestTracker_IDsNeverReused(t *testing.T) {
	tr := newTracker(t, func(c *Config) { c.MaxLostFrames = 0 })

	seen := map[int64]bool{}
	for f := int64(1); f <= 20; f++ {
		var dets []entity.Candidate
		if f%2 == 1 {
			dets = []entity.Candidate{at(100, 100), at(400, 100)}
		}
		tr.Update(f, dets)
		for _, s := range tr.Snapshot() {
			if s.FirstSeen == f {
				require.False(t, seen[s.ID], "id %d reused", s.ID)
				seen[s.ID] = true
			}
		}
	}
	require.Len(t, seen, 20)
}

func TestTracker_ConsecutiveFollowsScript(t *testing.T) {
	tr := newTracker(t, func(c *Config) { c.ConfirmFrames = 100 })

	script := []bool{true, true, false, true, true, true, false, false, true}
	want := []int{1, 2, 2, 1, 2, 3, 3, 3, 1}

	for i, present := range script {
		var dets []entity.Candidate
		if present {
			dets = []entity.Candidate{at(100, 100)}
		}
		tr.Update(int64(i+1), dets)
		snap := tr.Snapshot()
		require.Len(t, snap, 1, "frame %d", i+1)
		require.Equal(t, want[i], snap[0].Consecutive, "frame %d", i+1)
	}
}

func TestTracker_OneDetectionPerTrack(t *testing.T) {
	tr := newTracker(t)
	tr.Update(1, []entity.Candidate{at(100, 100)})
	tr.Update(2, []entity.Candidate{at(100, 100), at(105, 100)})

	snap := tr.Snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, 2, snap[0].Consecutive)
	require.Equal(t, 1, snap[1].Consecutive)
	require.Equal(t, int64(2), snap[1].FirstSeen)
}

func TestTracker_GreedyTieGoesToLowestID(t *testing.T) {
	tr := newTracker(t)
	tr.Update(1, []entity.Candidate{at(100, 100), at(200, 100)})
	tr.Update(2, []entity.Candidate{at(150, 100)})

	snap := tr.Snapshot()
	require.Equal(t, int64(2), snap[0].LastSeen)
	require.Equal(t, int64(1), snap[1].LastSeen)
}

func TestTracker_MatchDistanceGate(t *testing.T) {
	tr := newTracker(t)
	tr.Update(1, []entity.Candidate{at(100, 100)})
	tr.Update(2, []entity.Candidate{at(160, 100)})
	require.Equal(t, 1, tr.Len())

	tr.Update(3, []entity.Candidate{at(221, 100)})
	require.Equal(t, 2, tr.Len())
}

func TestTracker_HungarianResolvesGreedyConflict(t *testing.T) {
	frames := [][]entity.Candidate{
		{at(100, 100), at(200, 100)},
		{at(150, 100), at(90, 100)},
	}

	greedy := newTracker(t)
	hungarian := newTracker(t, func(c *Config) { c.Association = AssociationHungarian })
	for i, dets := range frames {
		greedy.Update(int64(i+1), dets)
		hungarian.Update(int64(i+1), dets)
	}

	require.Equal(t, 3, greedy.Len())
	require.Equal(t, 2, hungarian.Len())
	for _, s := range hungarian.Snapshot() {
		require.Equal(t, 2, s.Consecutive)
	}
}

func TestTracker_SnapshotSortedAndCopied(t *testing.T) {
	tr := newTracker(t)
	tr.Update(1, []entity.Candidate{at(300, 100), at(100, 100)})

	want := []entity.Track{
		{ID: 1, Box: entity.Box{X: 290, Y: 95, Width: 20, Height: 10}, Centroid: entity.Point{X: 300, Y: 100}, FirstSeen: 1, LastSeen: 1, Consecutive: 1},
		{ID: 2, Box: entity.Box{X: 90, Y: 95, Width: 20, Height: 10}, Centroid: entity.Point{X: 100, Y: 100}, FirstSeen: 1, LastSeen: 1, Consecutive: 1},
	}
	got := tr.Snapshot()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	got[0].Consecutive = 99
	require.Equal(t, 1, tr.Snapshot()[0].Consecutive)
}

func TestTracker_ConfirmFramesOne(t *testing.T) {
	tr := newTracker(t, func(c *Config) { c.ConfirmFrames = 1 })
	events := tr.Update(1, []entity.Candidate{at(100, 100), at(400, 100)})
	require.Len(t, events, 2)
	require.Equal(t, int64(1), events[0].TrackID)
	require.Equal(t, int64(2), events[1].TrackID)
}

func TestTracker_Reset(t *testing.T) {
	tr := newTracker(t)
	for f := int64(1); f <= 3; f++ {
		tr.Update(f, []entity.Candidate{at(100, 100)})
	}
	require.Equal(t, 1, tr.UniqueCount())

	tr.Reset()
	require.Equal(t, 0, tr.UniqueCount())
	require.Equal(t, 0, tr.Len())
	require.Equal(t, int64(0), tr.LastFrame())

	tr.Update(1, []entity.Candidate{at(100, 100)})
	require.Equal(t, int64(1), tr.Snapshot()[0].ID)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := []func(*Config){
		func(c *Config) { c.ConfirmFrames = 0 },
		func(c *Config) { c.MaxLostFrames = -1 },
		func(c *Config) { c.MaxMatchDistance = 0 },
		func(c *Config) { c.Association = "nearest" },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		require.Error(t, cfg.Validate(), "case %d", i)

		_, err := New(cfg)
		require.Error(t, err, "case %d", i)
	}
}
