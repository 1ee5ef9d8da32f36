package zoomlabel

// KITTI specific functionality.

import (
	"fmt"
	"strconv"
	"strings"
)

// KITTIAnnotation is a single annotation within a KITTI file.
type KITTIAnnotation struct {
	Coords [4]float64 // x1, y1, x2, y2
	Label  string
}

// KITTIAnnotatedFile defines the KITTI annotation structure for a single file.
type KITTIAnnotatedFile struct {
	Annotations []KITTIAnnotation
	FilePath    string
}

// ToKitti converts the annotations of f to KITTI format.
func ToKitti(f AnnotatedFile, policy ClassPolicy) KITTIAnnotatedFile {
	kittiData := KITTIAnnotatedFile{
		Annotations: make([]KITTIAnnotation, len(f.Annotations)),
		FilePath:    f.FilePath,
	}
	for i, a := range f.Annotations {
		kittiData.Annotations[i] = KITTIAnnotation{Coords: a.Box().Coords, Label: policy.ClassName(i)}
	}

	return kittiData
}

// String formats a as a KITTI label line. Only the label and the 2D bounding box are set; the
// truncation, occlusion, 3D and score fields are zero.
func (a KITTIAnnotation) String() string {
	return fmt.Sprintf("%s 0.0 0 0.0 %.2f %.2f %.2f %.2f 0.0 0.0 0.0 0.0 0.0 0.0 0.0",
		a.Label, a.Coords[0], a.Coords[1], a.Coords[2], a.Coords[3])
}

// WriteKittiFile writes the annotations in data to the file at path.
func WriteKittiFile(path string, data KITTIAnnotatedFile) error {
	lines := make([]string, len(data.Annotations))
	for i, a := range data.Annotations {
		lines[i] = a.String()
	}
	return writeLines(path, lines)
}

// parseKittiAnnotation parses the line of values for a single annotation.
func parseKittiAnnotation(line string) (KITTIAnnotation, error) {
	a := KITTIAnnotation{}

	tokens := strings.Split(line, " ")
	if len(tokens) < 8 {
		return a, fmt.Errorf("insufficient tokens in %q", line)
	}

	a.Label = tokens[0]
	var err error
	for i := 4; i < 8 && err == nil; i++ {
		a.Coords[i-4], err = strconv.ParseFloat(tokens[i], 64)
	}
	if err != nil {
		return a, fmt.Errorf("unexpected values in %q: %v", line, err)
	}

	return a, nil
}
