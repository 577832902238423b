package camera

import (
	"fmt"
	"image"
	"image/color"

	"github.com/teslashibe/go-drowsy/pkg/drowsiness"
	"gocv.io/x/gocv"
)

// Overlay colors per state.
var (
	ColorNoFace = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	ColorAlert  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	ColorDrowsy = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// StateColor returns the overlay color for s.
func StateColor(s drowsiness.State) color.RGBA {
	switch s {
	case drowsiness.Drowsy:
		return ColorDrowsy
	case drowsiness.Alert:
		return ColorAlert
	default:
		return ColorNoFace
	}
}

// Overlay draws the classification label onto JPEG frames.
type Overlay struct {
	Origin  image.Point
	Scale   float64
	Quality int
}

// NewOverlay returns an overlay drawing at the top-left corner.
func NewOverlay(quality int) *Overlay {
	return &Overlay{Origin: image.Pt(10, 30), Scale: 1, Quality: quality}
}

// Annotate decodes jpeg, draws c.Label() and re-encodes it.
func (o *Overlay) Annotate(jpeg []byte, c drowsiness.Classification) ([]byte, error) {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	gocv.PutTextWithParams(&img, c.Label(), o.Origin, gocv.FontHersheySimplex,
		o.Scale, StateColor(c.State), 2, gocv.LineAA, false)

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img, []int{gocv.IMWriteJpegQuality, o.Quality})
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
