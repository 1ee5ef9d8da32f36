package zoomlabel

// Rendering of placed boxes onto the original image.

import (
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BoxStyle controls how annotations are drawn.
type BoxStyle struct {
	Color      color.Color
	LineWidth  int
	ShowNumber bool // Draw the 1-based annotation number above each box.
}

// DefaultBoxStyle draws green boxes with a width of 2 pixels.
func DefaultBoxStyle() BoxStyle {
	return BoxStyle{Color: color.NRGBA{0, 255, 0, 255}, LineWidth: 2, ShowNumber: true}
}

// DrawAnnotations returns a copy of img with the bounding boxes of annotations drawn on top. img
// itself is not modified.
func DrawAnnotations(img image.Image, annotations []Annotation, style BoxStyle) *image.NRGBA {
	dst := imaging.Clone(img)
	for i, a := range annotations {
		r := a.Box().Pixels()
		drawRect(dst, r, style.Color, style.LineWidth)
		if style.ShowNumber {
			drawText(dst, strconv.Itoa(i+1), r.Min.X, r.Min.Y-2, style.Color)
		}
	}
	return dst
}

// drawRect draws the outline of r, lineWidth pixels wide, inside of r. Parts outside of img are
// clipped.
func drawRect(img *image.NRGBA, r image.Rectangle, c color.Color, lineWidth int) {
	if lineWidth < 1 {
		lineWidth = 1
	}
	r = r.Canon()

	fill := func(x0, y0, x1, y1 int) {
		rr := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
		for y := rr.Min.Y; y < rr.Max.Y; y++ {
			for x := rr.Min.X; x < rr.Max.X; x++ {
				img.Set(x, y, c)
			}
		}
	}

	// The edges are inclusive, so a zero sized box still shows up as a dot.
	x1, y1, x2, y2 := r.Min.X, r.Min.Y, r.Max.X+1, r.Max.Y+1
	fill(x1, y1, x2, y1+lineWidth) // Top.
	fill(x1, y2-lineWidth, x2, y2) // Bottom.
	fill(x1, y1, x1+lineWidth, y2) // Left.
	fill(x2-lineWidth, y1, x2, y2) // Right.
}

// drawText draws s with its baseline at (x, y), moved inside of img if necessary.
func drawText(img *image.NRGBA, s string, x, y int, c color.Color) {
	face := basicfont.Face7x13
	b := img.Bounds()
	if y-face.Ascent < b.Min.Y {
		y = b.Min.Y + face.Ascent
	}
	if x < b.Min.X {
		x = b.Min.X
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
