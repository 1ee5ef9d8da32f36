package zoomlabel

// YOLO specific functionality.

import (
	"fmt"
	"strconv"
	"strings"
)

// YOLOLabel is a single line of a YOLO label file. All geometry is normalized to [0, 1] by the
// image width and height.
type YOLOLabel struct {
	ClassID int
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// String formats l as a label file line, without the trailing newline.
func (l YOLOLabel) String() string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f", l.ClassID, l.XCenter, l.YCenter, l.Width, l.Height)
}

// ToYOLO converts the annotations of f into normalized YOLO labels, in order.
func ToYOLO(f AnnotatedFile, policy ClassPolicy) []YOLOLabel {
	w := float64(f.Width)
	h := float64(f.Height)

	labels := make([]YOLOLabel, len(f.Annotations))
	for i, a := range f.Annotations {
		box := a.Box()
		labels[i] = YOLOLabel{
			ClassID: policy.ClassID(i),
			XCenter: a.Center.X / w,
			YCenter: a.Center.Y / h,
			Width:   box.Width() / w,
			Height:  box.Height() / h,
		}
	}

	return labels
}

// WriteLabels writes the annotations of f as YOLO labels to the file at path. The directory must
// exist; an existing file is replaced.
func WriteLabels(path string, f AnnotatedFile, policy ClassPolicy) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d for %q", f.Width, f.Height, f.FilePath)
	}
	return WriteYOLO(path, ToYOLO(f, policy))
}

// WriteYOLO writes labels to the file at path, one per line.
func WriteYOLO(path string, labels []YOLOLabel) error {
	lines := make([]string, len(labels))
	for i, l := range labels {
		lines[i] = l.String()
	}
	return writeLines(path, lines)
}

// ReadYOLO reads and parses the YOLO label file at path. Blank lines are skipped.
func ReadYOLO(path string) ([]YOLOLabel, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	labels := make([]YOLOLabel, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		l, err := ParseYOLOLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		labels = append(labels, l)
	}

	return labels, nil
}

// ParseYOLOLine parses the line of values for a single label.
func ParseYOLOLine(line string) (YOLOLabel, error) {
	l := YOLOLabel{}

	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return l, fmt.Errorf("expected 5 tokens in %q, got %d", line, len(tokens))
	}

	var err error
	if l.ClassID, err = strconv.Atoi(tokens[0]); err != nil {
		return l, fmt.Errorf("unexpected class id in %q: %v", line, err)
	}
	values := []*float64{&l.XCenter, &l.YCenter, &l.Width, &l.Height}
	for i := 0; i < len(values) && err == nil; i++ {
		*values[i], err = strconv.ParseFloat(tokens[i+1], 64)
	}
	if err != nil {
		return l, fmt.Errorf("unexpected values in %q: %v", line, err)
	}

	return l, nil
}
