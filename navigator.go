package zoomlabel

// The image navigation loop.

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
)

// Key identifies a key typed on the display surface.
type Key string

// The keys the Navigator responds to.
const (
	KeyEscape Key = "Escape"
	KeyEnter  Key = "Enter"
	KeyN      Key = "n"
	KeyR      Key = "r"
)

// Surface displays images and delivers user input.
type Surface interface {
	// Show replaces the displayed image and sets the title.
	Show(img image.Image, title string)
	// NextEvent blocks until the next Click or KeyPress. It returns io.EOF once the surface is
	// closed by the user.
	NextEvent() (Event, error)
}

// ImageLoader decodes the image at path.
type ImageLoader func(path string) (image.Image, error)

// Options configures a Navigator. The zero value of each field selects its default.
type Options struct {
	Zoom   ZoomOptions // Defaults to DefaultZoomOptions().
	Style  *BoxStyle   // Defaults to DefaultBoxStyle().
	Load   ImageLoader // Defaults to LoadImage.
	Logger *log.Logger // Defaults to log.Default().
}

// Summary describes a completed Navigator run.
type Summary struct {
	Images  int  // Images that were displayed.
	Skipped int  // Images that could not be loaded.
	Saved   int  // Label files written.
	Failed  int  // Label files that could not be written.
	Boxes   int  // Boxes in the written label files.
	Quit    bool // Whether the user quit before the last image.
}

// Navigator steps through a list of images and lets the user annotate each of them.
type Navigator struct {
	images   []string
	labelDir string
	surface  Surface
	writer   LabelWriter

	zoom   ZoomOptions
	style  BoxStyle
	load   ImageLoader
	logger *log.Logger
}

// NewNavigator returns a Navigator for images, writing labels with writer into labelDir.
func NewNavigator(images []string, labelDir string, surface Surface, writer LabelWriter,
	opts Options) *Navigator {

	n := &Navigator{
		images:   images,
		labelDir: labelDir,
		surface:  surface,
		writer:   writer,
		zoom:     opts.Zoom,
		load:     opts.Load,
		logger:   opts.Logger,
	}
	if n.zoom.Factor <= 0 {
		n.zoom = DefaultZoomOptions()
	}
	if opts.Style != nil {
		n.style = *opts.Style
	} else {
		n.style = DefaultBoxStyle()
	}
	if n.load == nil {
		n.load = LoadImage
	}
	if n.logger == nil {
		n.logger = log.Default()
	}

	return n
}

// command maps a key to the event it triggers, or nil.
func command(k Key) Event {
	switch k {
	case KeyEscape:
		return Quit{}
	case KeyEnter, KeyN:
		return Advance{}
	case KeyR:
		return Reset{}
	}
	return nil
}

// Run shows each image in turn and handles input until the last image is done or the user quits.
// An error is only returned if the surface fails.
func (n *Navigator) Run() (Summary, error) {
	var sum Summary
	for i := range n.images {
		quit, err := n.annotate(i, &sum)
		if err != nil {
			return sum, err
		}
		if quit {
			n.logger.Print("Exiting.")
			sum.Quit = true
			return sum, nil
		}
	}

	n.logger.Print("Done labeling.")
	return sum, nil
}

// title is the window title for the i-th image.
func (n *Navigator) title(i int) string {
	return fmt.Sprintf("%s (%d/%d)", filepath.Base(n.images[i]), i+1, len(n.images))
}

// show loads and displays the i-th image. Returns false if loading failed.
func (n *Navigator) show(i int) (image.Image, bool) {
	img, err := n.load(n.images[i])
	if err != nil {
		n.logger.Print("Skipping image: ", err)
		return nil, false
	}
	n.surface.Show(img, n.title(i))
	return img, true
}

// annotate runs the session for the i-th image until it is saved, skipped or the user quits.
func (n *Navigator) annotate(i int, sum *Summary) (quit bool, err error) {
	img, ok := n.show(i)
	if !ok {
		sum.Skipped++
		return false, nil
	}
	sum.Images++
	title := n.title(i)
	s := NewSession(img, n.zoom)

	for {
		ev, err := n.surface.NextEvent()
		if errors.Is(err, io.EOF) {
			return true, nil
		} else if err != nil {
			return false, fmt.Errorf("failed to wait for input: %w", err)
		}

		if k, ok := ev.(KeyPress); ok {
			if ev = command(k.Key); ev == nil {
				continue
			}
		}

		var effects []Effect
		s, effects = HandleEvent(s, ev)
		for _, e := range effects {
			switch e := e.(type) {
			case ShowView:
				n.surface.Show(e.View.Image, title)
			case ShowOriginal:
				n.surface.Show(DrawAnnotations(img, e.Annotations, n.style), title)
			case Warn:
				n.logger.Print("Invalid zoom area: ", e.Err)
			case AnnotationAdded:
				n.logger.Printf("Added box #%d", e.Index+1)
			case Save:
				n.save(i, img, e.Annotations, sum)
				return false, nil
			case NothingToSave:
				n.logger.Print("No labels to save.")
				return false, nil
			case Reload:
				n.logger.Print("Resetting current image...")
				if img, ok = n.show(i); !ok {
					return false, nil
				}
				s = NewSession(img, n.zoom)
			case Exit:
				return true, nil
			}
		}
	}
}

// save writes the labels of the i-th image. Failures are logged; the annotations are lost.
func (n *Navigator) save(i int, img image.Image, annotations []Annotation, sum *Summary) {
	b := img.Bounds()
	f := AnnotatedFile{
		Annotations: annotations,
		FilePath:    n.images[i],
		Width:       b.Dx(),
		Height:      b.Dy(),
	}

	path, err := n.writer.WriteLabels(n.labelDir, f)
	if err != nil {
		n.logger.Printf("Failed to save labels for %q: %v", n.images[i], err)
		sum.Failed++
		return
	}

	n.logger.Printf("[%d/%d] Saved %d boxes to %s", i+1, len(n.images), len(annotations), path)
	sum.Saved++
	sum.Boxes += len(annotations)
}
