//go:build gocv
// +build gocv

package vision

import (
	"gocv.io/x/gocv"

	"road-inspector/internal/domain/entity"
)

// BlobExtractor находит внешние контуры маски и отбирает кандидатов.
type BlobExtractor struct {
	filter FilterConfig
}

// NewBlobExtractor создаёт экстрактор с заданными порогами.
func NewBlobExtractor(f FilterConfig) *BlobExtractor {
	return &BlobExtractor{filter: f}
}

// Extract возвращает кандидатов в координатах ROI в порядке обхода контуров.
// Яркость берётся из выровненного ROI, а не из маски.
func (b *BlobExtractor) Extract(mask, equalized gocv.Mat) []entity.Candidate {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	candidates := make([]entity.Candidate, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		region := Region{
			Rect: gocv.BoundingRect(c),
			Area: gocv.ContourArea(c),
		}
		if !b.filter.AcceptShape(region) {
			continue
		}

		sample := sampleRect(region.Rect, equalized.Cols(), equalized.Rows())
		if !sample.Empty() {
			patch := equalized.Region(sample)
			region.MeanIntensity = patch.Mean().Val1
			region.Sampled = true
			patch.Close()
		}

		if cand, ok := b.filter.Candidate(region); ok {
			candidates = append(candidates, cand)
		}
	}

	return candidates
}
