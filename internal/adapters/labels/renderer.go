// internal/adapters/labels/renderer.go
package labels

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/boombuler/barcode/datamatrix"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ammerola/stockscan/internal/core/domain"
)

// Layout of a 58x30mm label at 8 dots per mm
const (
	DefaultWidth  = 464
	DefaultHeight = 240

	margin     = 16
	moduleSize = 7
	textScale  = 2
)

// Renderer draws labels as monochrome PNG images: a DataMatrix of the
// label code on the left, the two name lines and the date on the right.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer for the default label size
func NewRenderer() *Renderer {
	return &Renderer{width: DefaultWidth, height: DefaultHeight}
}

// Render returns the PNG encoding of label
func (r *Renderer) Render(label domain.Label) ([]byte, error) {
	img, err := r.Image(label)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode label png: %w", err)
	}
	return buf.Bytes(), nil
}

// Image draws label onto a new grayscale canvas
func (r *Renderer) Image(label domain.Label) (*image.Gray, error) {
	if label.Code == "" {
		return nil, fmt.Errorf("label code is empty")
	}

	code, err := datamatrix.Encode(label.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to encode datamatrix: %w", err)
	}

	canvas := image.NewGray(image.Rect(0, 0, r.width, r.height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	matrixRect, scale, err := r.matrixLayout(code.Bounds())
	if err != nil {
		return nil, fmt.Errorf("label code %q: %w", label.Code, err)
	}
	drawMatrix(canvas, matrixRect.Min, code, scale)

	textX := matrixRect.Max.X + margin
	lineHeight := basicfont.Face7x13.Height * textScale

	drawText(canvas, label.Line1, textX, margin)
	if label.Line2 != "" {
		drawText(canvas, label.Line2, textX, margin+lineHeight+margin/2)
	}
	drawText(canvas, label.Date, textX, r.height-margin-lineHeight)

	return canvas, nil
}

// matrixLayout places a matrix of src modules left on the label, scaled by
// whole modules so every module stays square, and centred vertically.
func (r *Renderer) matrixLayout(src image.Rectangle) (image.Rectangle, int, error) {
	scale := moduleSize
	if fit := (r.height - 2*margin) / src.Dy(); fit < scale {
		scale = fit
	}
	if scale < 1 {
		return image.Rectangle{}, 0, errors.New("too long for label")
	}

	top := (r.height - src.Dy()*scale) / 2
	return image.Rect(margin, top, margin+src.Dx()*scale, top+src.Dy()*scale), scale, nil
}

// drawMatrix fills one scale x scale black square per dark module of code
func drawMatrix(dst draw.Image, at image.Point, code image.Image, scale int) {
	b := code.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !isDark(code.At(x, y)) {
				continue
			}
			px := at.X + (x-b.Min.X)*scale
			py := at.Y + (y-b.Min.Y)*scale
			draw.Draw(dst, image.Rect(px, py, px+scale, py+scale), image.Black, image.Point{}, draw.Src)
		}
	}
}

func isDark(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 128
}

// drawText renders s with the fixed 7x13 face and scales it up onto dst with
// its top-left corner at (x, y).
func drawText(dst draw.Image, s string, x, y int) {
	if s == "" {
		return
	}

	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Ceil()
	glyphs := image.NewGray(image.Rect(0, 0, width, face.Height))
	draw.Draw(glyphs, glyphs.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	target := image.Rect(x, y, x+width*textScale, y+face.Height*textScale)
	draw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Src, nil)
}
