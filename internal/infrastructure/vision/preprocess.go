//go:build gocv
// +build gocv

package vision

import (
	"image"

	"gocv.io/x/gocv"

	"road-inspector/internal/domain/entity"
)

// Preprocessor вырезает ROI, переводит его в серый, размывает и выравнивает контраст.
type Preprocessor struct {
	params Params
	clahe  gocv.CLAHE
}

// NewPreprocessor создаёт предобработчик. CLAHE живёт до Close.
func NewPreprocessor(p Params) *Preprocessor {
	return &Preprocessor{
		params: p,
		clahe:  gocv.NewCLAHEWithParams(p.CLAHEClipLimit, image.Pt(p.CLAHETileGrid, p.CLAHETileGrid)),
	}
}

// Apply возвращает выровненный ROI и его смещение по вертикали.
// Вызывающий закрывает возвращённую матрицу.
func (p *Preprocessor) Apply(frame gocv.Mat) (gocv.Mat, int, error) {
	if frame.Empty() {
		return gocv.NewMat(), 0, entity.NewInputError("empty frame")
	}
	if frame.Channels() != entity.BGRChannels {
		return gocv.NewMat(), 0, entity.NewInputError("preprocess expects %d channels, got %d", entity.BGRChannels, frame.Channels())
	}

	offset := p.params.ROIOffset(frame.Rows())
	if offset >= frame.Rows() {
		return gocv.NewMat(), 0, entity.NewInputError("roi is empty for frame height %d", frame.Rows())
	}

	roi := frame.Region(image.Rect(0, offset, frame.Cols(), frame.Rows()))
	defer roi.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	k := p.params.BlurKernel
	gocv.GaussianBlur(gray, &blur, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	equalized := gocv.NewMat()
	p.clahe.Apply(blur, &equalized)

	return equalized, offset, nil
}

// Close освобождает CLAHE.
func (p *Preprocessor) Close() error {
	return p.clahe.Close()
}
