// Package zoomlabel places bounding boxes on images with a zoom-then-click interaction and writes
// them as per-image label files.
package zoomlabel

// The annotation metadata representation shared by the session and the label writers.

// Annotation is a bounding box placed by a center click and an edge click. Both points are in
// original image coordinates.
type Annotation struct {
	Center Point
	Edge   Point
}

// Box is the bounding box described by a.
func (a Annotation) Box() Box {
	return BoxFromCenterEdge(a.Center, a.Edge)
}

// AnnotatedFile is the annotation data for a single image.
type AnnotatedFile struct {
	Annotations []Annotation // The annotations, in the order they were placed.
	FilePath    string       // The annotated image.
	Width       int          // Image width in pixels.
	Height      int          // Image height in pixels.
}
