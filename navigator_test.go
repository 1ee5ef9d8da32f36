package zoomlabel

import (
	"bytes"
	"errors"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeSurface replays scripted events and records what was shown.
type fakeSurface struct {
	events []Event
	shown  []shownImage
	err    error // Returned once the events are exhausted. Defaults to io.EOF.
}

type shownImage struct {
	size  image.Point
	title string
}

func (s *fakeSurface) Show(img image.Image, title string) {
	s.shown = append(s.shown, shownImage{size: img.Bounds().Size(), title: title})
}

func (s *fakeSurface) NextEvent() (Event, error) {
	if len(s.events) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func clicks(points ...image.Point) []Event {
	events := make([]Event, len(points))
	for i, p := range points {
		events[i] = Click{Pos: p}
	}
	return events
}

func keys(ks ...Key) []Event {
	events := make([]Event, len(ks))
	for i, k := range ks {
		events[i] = KeyPress{Key: k}
	}
	return events
}

func script(parts ...[]Event) []Event {
	var all []Event
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

// newTestNavigator creates a.jpg (100x80) and b.png (60x40) in a temporary image directory and
// returns a navigator for them along with the label directory and the log output.
func newTestNavigator(t *testing.T, surface Surface) (*Navigator, string, *bytes.Buffer) {
	t.Helper()

	imageDir := t.TempDir()
	labelDir := t.TempDir()
	writeTestImage(t, imageDir, "a.jpg", 100, 80)
	writeTestImage(t, imageDir, "b.png", 60, 40)

	images, err := ListImages(imageDir, nil)
	if err != nil {
		t.Fatal(err)
	}
	writer, err := NewLabelWriter(YOLO, ClassPolicy{})
	if err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	nav := NewNavigator(images, labelDir, surface, writer, Options{Logger: log.New(&logs, "", 0)})
	return nav, labelDir, &logs
}

func TestNavigatorSavesLabels(t *testing.T) {
	surface := &fakeSurface{events: script(
		clicks(image.Pt(10, 10), image.Pt(50, 50), image.Pt(20, 20), image.Pt(30, 25)),
		keys(KeyEnter),
		keys(KeyN),
	)}
	nav, labelDir, logs := newTestNavigator(t, surface)

	sum, err := nav.Run()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Images != 2 || sum.Saved != 1 || sum.Boxes != 1 || sum.Quit {
		t.Errorf("unexpected summary %+v", sum)
	}

	data, err := os.ReadFile(filepath.Join(labelDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	// Center (14,14), 4x2 box, normalized by 100x80.
	if got, want := string(data), "0 0.140000 0.175000 0.040000 0.025000\n"; got != want {
		t.Errorf("a.txt = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(labelDir, "b.txt")); !os.IsNotExist(err) {
		t.Errorf("b.txt should not exist: %v", err)
	}

	titles := make([]string, len(surface.shown))
	for i, s := range surface.shown {
		titles[i] = s.title
	}
	wantTitles := []string{"a.jpg (1/2)", "a.jpg (1/2)", "a.jpg (1/2)", "b.png (2/2)"}
	if strings.Join(titles, "|") != strings.Join(wantTitles, "|") {
		t.Errorf("titles %v, want %v", titles, wantTitles)
	}
	if surface.shown[1].size != image.Pt(200, 200) {
		t.Errorf("zoom view size %v", surface.shown[1].size)
	}
	if surface.shown[2].size != image.Pt(100, 80) {
		t.Errorf("annotated image size %v", surface.shown[2].size)
	}

	for _, msg := range []string{"Added box #1", "Saved 1 boxes", "No labels to save.", "Done labeling."} {
		if !strings.Contains(logs.String(), msg) {
			t.Errorf("log is missing %q:\n%s", msg, logs.String())
		}
	}
}

func TestNavigatorResetDiscardsBoxes(t *testing.T) {
	surface := &fakeSurface{events: script(
		clicks(image.Pt(10, 10), image.Pt(50, 50), image.Pt(20, 20), image.Pt(30, 25)),
		keys(KeyR, KeyEnter, KeyEnter),
	)}
	nav, labelDir, _ := newTestNavigator(t, surface)

	sum, err := nav.Run()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Saved != 0 || sum.Boxes != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if _, err := os.Stat(filepath.Join(labelDir, "a.txt")); !os.IsNotExist(err) {
		t.Errorf("a.txt should not exist: %v", err)
	}

	// Original, zoom view, annotated original, reloaded original, next image.
	if len(surface.shown) != 5 {
		t.Fatalf("shown %d images, want 5", len(surface.shown))
	}
	if surface.shown[3].title != "a.jpg (1/2)" || surface.shown[3].size != image.Pt(100, 80) {
		t.Errorf("unexpected reload %+v", surface.shown[3])
	}
}

func TestNavigatorResetThenNewBox(t *testing.T) {
	surface := &fakeSurface{events: script(
		clicks(image.Pt(10, 10), image.Pt(50, 50), image.Pt(20, 20), image.Pt(30, 25)),
		keys(KeyR),
		clicks(image.Pt(0, 0), image.Pt(20, 20), image.Pt(50, 50), image.Pt(60, 50)),
		keys(KeyEnter, KeyEscape),
	)}
	nav, labelDir, _ := newTestNavigator(t, surface)

	if _, err := nav.Run(); err != nil {
		t.Fatal(err)
	}

	labels, err := ReadYOLO(filepath.Join(labelDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 1 {
		t.Fatalf("got %d labels, want 1", len(labels))
	}
	// Center (10,10), edge (12,10).
	if labels[0] != (YOLOLabel{ClassID: 0, XCenter: 0.1, YCenter: 0.125, Width: 0.04, Height: 0}) {
		t.Errorf("unexpected label %+v", labels[0])
	}
}

func TestNavigatorEscapeDiscardsCurrentImage(t *testing.T) {
	surface := &fakeSurface{events: script(
		clicks(image.Pt(10, 10), image.Pt(50, 50), image.Pt(20, 20), image.Pt(30, 25)),
		keys(KeyEscape),
		keys(KeyEnter), // Never read.
	)}
	nav, labelDir, logs := newTestNavigator(t, surface)

	sum, err := nav.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Quit || sum.Saved != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
	entries, err := os.ReadDir(labelDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("label directory is not empty: %v", entries)
	}
	if len(surface.events) != 1 {
		t.Errorf("navigator kept reading after Escape")
	}
	if !strings.Contains(logs.String(), "Exiting.") {
		t.Errorf("log is missing the exit message:\n%s", logs.String())
	}
}

func TestNavigatorClosedSurface(t *testing.T) {
	surface := &fakeSurface{}
	nav, _, _ := newTestNavigator(t, surface)

	sum, err := nav.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Quit || sum.Images != 1 {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestNavigatorSurfaceError(t *testing.T) {
	surface := &fakeSurface{err: errors.New("display lost")}
	nav, _, _ := newTestNavigator(t, surface)

	if _, err := nav.Run(); err == nil || !strings.Contains(err.Error(), "display lost") {
		t.Errorf("expected the surface error, got %v", err)
	}
}

func TestNavigatorSkipsBrokenImages(t *testing.T) {
	imageDir := t.TempDir()
	broken := filepath.Join(imageDir, "a.jpg")
	if err := os.WriteFile(broken, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := writeTestImage(t, imageDir, "b.png", 60, 40)

	surface := &fakeSurface{events: keys(KeyEnter)}
	writer, _ := NewLabelWriter(YOLO, ClassPolicy{})
	var logs bytes.Buffer
	nav := NewNavigator([]string{broken, good}, t.TempDir(), surface, writer,
		Options{Logger: log.New(&logs, "", 0)})

	sum, err := nav.Run()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Skipped != 1 || sum.Images != 1 || sum.Quit {
		t.Errorf("unexpected summary %+v", sum)
	}
	if len(surface.shown) != 1 || surface.shown[0].title != "b.png (2/2)" {
		t.Errorf("unexpected shown images %+v", surface.shown)
	}
	if !strings.Contains(logs.String(), "Skipping image") {
		t.Errorf("log is missing the skip message:\n%s", logs.String())
	}
}

func TestNavigatorWriteFailureContinues(t *testing.T) {
	surface := &fakeSurface{events: script(
		clicks(image.Pt(10, 10), image.Pt(50, 50), image.Pt(20, 20), image.Pt(30, 25)),
		keys(KeyEnter),
		clicks(image.Pt(0, 0), image.Pt(10, 10), image.Pt(5, 5), image.Pt(10, 10)),
		keys(KeyEnter),
	)}
	nav, labelDir, logs := newTestNavigator(t, surface)
	nav.labelDir = filepath.Join(labelDir, "missing")

	sum, err := nav.Run()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Failed != 2 || sum.Saved != 0 || sum.Images != 2 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if !strings.Contains(logs.String(), "Failed to save labels") {
		t.Errorf("log is missing the failure message:\n%s", logs.String())
	}
}

func TestNavigatorIgnoresUnknownKeys(t *testing.T) {
	surface := &fakeSurface{events: keys("x", "q", KeyEscape)}
	nav, _, _ := newTestNavigator(t, surface)

	sum, err := nav.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Quit || sum.Images != 1 {
		t.Errorf("unexpected summary %+v", sum)
	}
}
