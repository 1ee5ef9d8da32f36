package zoomlabel

// Coordinate mapping between the magnified view and the original image.

import (
	"image"
	"math"
)

// Point is a position in original image pixel space with sub-pixel precision.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// MapViewPointToOriginal maps viewPoint, a pixel position in a view magnified by zoomFactor,
// back to the original image. regionMin is the top-left corner of the zoom region in the original
// image. zoomFactor must be positive.
func MapViewPointToOriginal(viewPoint, regionMin image.Point, zoomFactor float64) Point {
	return Point{
		X: float64(viewPoint.X)/zoomFactor + float64(regionMin.X),
		Y: float64(viewPoint.Y)/zoomFactor + float64(regionMin.Y),
	}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Coords [4]float64 // Absolute x1, y1, x2, y2 offsets from the top-left corner.
}

// BoxFromCenterEdge returns the box centered on center that extends to edge both horizontally
// and vertically.
func BoxFromCenterEdge(center, edge Point) Box {
	halfW := math.Abs(edge.X - center.X)
	halfH := math.Abs(edge.Y - center.Y)
	return Box{Coords: [4]float64{center.X - halfW, center.Y - halfH, center.X + halfW, center.Y + halfH}}
}

// Width is the box width from b.Coords.
func (b Box) Width() float64 {
	return b.Coords[2] - b.Coords[0]
}

// Height is the box height from b.Coords.
func (b Box) Height() float64 {
	return b.Coords[3] - b.Coords[1]
}

// Center is the midpoint of b.
func (b Box) Center() Point {
	return Point{X: (b.Coords[0] + b.Coords[2]) / 2, Y: (b.Coords[1] + b.Coords[3]) / 2}
}

// Pixels truncates the box corners to integer pixels for drawing.
func (b Box) Pixels() image.Rectangle {
	return image.Rect(int(b.Coords[0]), int(b.Coords[1]), int(b.Coords[2]), int(b.Coords[3]))
}
