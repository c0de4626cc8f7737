//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"road-inspector/internal/domain/entity"
)

// roadFrame серый кадр 640×480; с blob на нём тёмный эллипс 180×80 с центром (320, 360).
func roadFrame(t *testing.T, index int64, blob bool) *entity.Frame {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(180, 180, 180, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer mat.Close()
	if blob {
		gocv.Ellipse(&mat, image.Pt(320, 360), image.Pt(90, 40), 0, 0, 360, color.RGBA{R: 30, G: 30, B: 30, A: 255}, -1)
	}

	return &entity.Frame{
		Index:    index,
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Data:     mat.ToBytes(),
	}
}

func TestPreprocessor_ROIShape(t *testing.T) {
	p := DefaultParams()
	pre := NewPreprocessor(p)
	defer pre.Close()

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(100, 100, 100, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer mat.Close()

	eq, offset, err := pre.Apply(mat)
	require.NoError(t, err)
	defer eq.Close()

	require.Equal(t, 168, offset)
	require.Equal(t, 480-168, eq.Rows())
	require.Equal(t, 640, eq.Cols())
	require.Equal(t, 1, eq.Channels())
}

func TestGoCVDetector_FindsAppearingBlob(t *testing.T) {
	p := DefaultParams()
	d := NewGoCVDetector(p)
	defer d.Close()
	ctx := context.Background()

	// Модель фона сначала выучивает пустую дорогу.
	for i := int64(1); i <= 10; i++ {
		det, err := d.Detect(ctx, roadFrame(t, i, false))
		require.NoError(t, err)
		require.Empty(t, det.Candidates)
	}

	det, err := d.Detect(ctx, roadFrame(t, 11, true))
	require.NoError(t, err)
	require.Equal(t, 168, det.ROIOffset)
	require.NotEmpty(t, det.Candidates)

	for _, c := range det.Candidates {
		aspect := float64(c.Width) / float64(c.Height)
		require.GreaterOrEqual(t, c.Area, p.Filter.MinArea)
		require.LessOrEqual(t, c.Area, p.Filter.MaxArea)
		require.GreaterOrEqual(t, aspect, p.Filter.AspectMin)
		require.LessOrEqual(t, aspect, p.Filter.AspectMax)
		require.LessOrEqual(t, c.MeanIntensity, p.Filter.MaxMeanIntensity)
		require.LessOrEqual(t, c.Y+c.Height, 480-168)
	}

	largest := det.Candidates[0]
	for _, c := range det.Candidates[1:] {
		if c.Area > largest.Area {
			largest = c
		}
	}
	// Эллипс занимает x 230..410, y 320..400 кадра, то есть y 152..232 в ROI.
	const tol = 12
	require.InDelta(t, 230, largest.X, tol)
	require.InDelta(t, 410, largest.X+largest.Width, tol)
	require.InDelta(t, 152, largest.Y, tol)
	require.InDelta(t, 232, largest.Y+largest.Height, tol)
	require.Less(t, largest.MeanIntensity, 180.0)
}

func TestMaskBuilder_StaticDarkBlobFadesIntoBackground(t *testing.T) {
	p := DefaultParams()
	// Контуры выключены: остаётся только движение И темнота.
	p.CannyLow, p.CannyHigh = 5000, 5000
	m := NewMaskBuilder(p)
	defer m.Close()

	roi := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(180, 0, 0, 0), 312, 640, gocv.MatTypeCV8U)
	defer roi.Close()
	gocv.Ellipse(&roi, image.Pt(320, 192), image.Pt(90, 40), 0, 0, 360, color.RGBA{R: 30, G: 30, B: 30, A: 255}, -1)

	for i := 0; i < 10; i++ {
		mask := m.Build(roi)
		if i == 9 {
			require.Zero(t, gocv.CountNonZero(mask))
		}
		mask.Close()
	}
}

func TestMaskBuilder_MovingDarkBlobPassesWithoutEdges(t *testing.T) {
	p := DefaultParams()
	p.CannyLow, p.CannyHigh = 5000, 5000
	m := NewMaskBuilder(p)
	defer m.Close()

	empty := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(180, 0, 0, 0), 312, 640, gocv.MatTypeCV8U)
	defer empty.Close()
	for i := 0; i < 10; i++ {
		mask := m.Build(empty)
		mask.Close()
	}

	roi := empty.Clone()
	defer roi.Close()
	gocv.Ellipse(&roi, image.Pt(320, 192), image.Pt(90, 40), 0, 0, 360, color.RGBA{R: 30, G: 30, B: 30, A: 255}, -1)

	mask := m.Build(roi)
	defer mask.Close()
	require.Greater(t, gocv.CountNonZero(mask), 6000)
	require.Equal(t, uint8(255), mask.GetUCharAt(192, 320))
	require.Equal(t, uint8(0), mask.GetUCharAt(20, 20))
}

func TestPreprocessor_EmptyFrameIsInputError(t *testing.T) {
	pre := NewPreprocessor(DefaultParams())
	defer pre.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	eq, _, err := pre.Apply(empty)
	defer eq.Close()
	require.True(t, errors.Is(err, entity.ErrInput))
}

func TestGoCVDetector_RejectsMalformedFrame(t *testing.T) {
	d := NewGoCVDetector(DefaultParams())
	defer d.Close()

	_, err := d.Detect(context.Background(), &entity.Frame{Index: 1, Width: 10, Height: 10, Channels: 3, Data: []byte{1}})
	require.Error(t, err)
	require.True(t, errors.Is(err, entity.ErrInput))
}
