package zoomlabel

// Label output formats and class id assignment.

import (
	"fmt"
	"strconv"
)

// Format is a label file format.
type Format int

// The supported label formats. Both write one text file per image.
const (
	YOLO  Format = iota // Normalized center, width and height.
	Kitti               // Absolute pixel corner coordinates.
)

// FormatFrom returns the format with the given name.
func FormatFrom(s string) (Format, error) {
	switch s {
	case "yolo", "":
		return YOLO, nil
	case "kitti":
		return Kitti, nil
	}
	return 0, fmt.Errorf("unknown label format %q", s)
}

func (f Format) String() string {
	switch f {
	case YOLO:
		return "yolo"
	case Kitti:
		return "kitti"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ClassIDMode selects how class ids are assigned to the annotations of an image.
type ClassIDMode int

const (
	// SequentialIDs numbers the annotations of each image 0, 1, 2, ... in the order they were
	// placed.
	SequentialIDs ClassIDMode = iota
	// FixedID assigns the same class to every annotation.
	FixedID
)

// ClassPolicy assigns classes to annotations.
type ClassPolicy struct {
	Mode ClassIDMode
	ID   int    // The class id for FixedID.
	Name string // The class name for FixedID in formats with named classes. Defaults to ID.
}

// ClassIDModeFrom returns the mode with the given name.
func ClassIDModeFrom(s string) (ClassIDMode, error) {
	switch s {
	case "sequential", "":
		return SequentialIDs, nil
	case "fixed":
		return FixedID, nil
	}
	return 0, fmt.Errorf("unknown class id mode %q", s)
}

// ClassID returns the class id of the i-th annotation.
func (p ClassPolicy) ClassID(i int) int {
	if p.Mode == FixedID {
		return p.ID
	}
	return i
}

// ClassName returns the class name of the i-th annotation.
func (p ClassPolicy) ClassName(i int) string {
	if p.Mode == FixedID && p.Name != "" {
		return p.Name
	}
	return strconv.Itoa(p.ClassID(i))
}

// LabelWriter writes the labels of one image to a label directory.
type LabelWriter interface {
	// WriteLabels writes the labels for f to dir and returns the path of the label file. Existing
	// files are overwritten.
	WriteLabels(dir string, f AnnotatedFile) (string, error)
}

// NewLabelWriter returns a LabelWriter for the given format.
func NewLabelWriter(format Format, policy ClassPolicy) (LabelWriter, error) {
	switch format {
	case YOLO:
		return yoloWriter{policy: policy}, nil
	case Kitti:
		return kittiWriter{policy: policy}, nil
	}
	return nil, fmt.Errorf("unsupported label format %v", format)
}

type yoloWriter struct {
	policy ClassPolicy
}

func (w yoloWriter) WriteLabels(dir string, f AnnotatedFile) (string, error) {
	path, err := LabelPath(dir, f.FilePath, ".txt")
	if err != nil {
		return "", err
	}
	return path, WriteLabels(path, f, w.policy)
}

type kittiWriter struct {
	policy ClassPolicy
}

func (w kittiWriter) WriteLabels(dir string, f AnnotatedFile) (string, error) {
	path, err := LabelPath(dir, f.FilePath, ".txt")
	if err != nil {
		return "", err
	}
	return path, WriteKittiFile(path, ToKitti(f, w.policy))
}
