// Package gui provides the fyne window that displays images and collects clicks and key presses
// for the labeling session.
package gui

import (
	"image"
	"io"
	"log"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/sensorable/zoomlabel"
)

// eventBufferSize is the number of input events queued before new input is dropped.
const eventBufferSize = 64

// Window is a zoomlabel.Surface backed by a fyne window.
//
// Show and NextEvent may be called from any goroutine; the fyne event loop must run on the main
// goroutine (see ShowAndRun).
type Window struct {
	window fyne.Window
	view   *imageView
	events chan zoomlabel.Event

	done      chan struct{}
	closeOnce sync.Once
}

// NewWindow creates the labeling window of app a.
func NewWindow(a fyne.App, title string, size fyne.Size) *Window {
	w := &Window{
		window: a.NewWindow(title),
		events: make(chan zoomlabel.Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	w.view = newImageView(func(p image.Point) {
		w.send(zoomlabel.Click{Pos: p})
	})

	w.window.SetContent(w.view)
	w.window.Resize(size)
	w.window.Canvas().SetOnTypedKey(w.typedKey)
	w.window.SetOnClosed(w.markClosed)

	return w
}

// Show displays img and sets the window title.
func (w *Window) Show(img image.Image, title string) {
	fyne.Do(func() {
		w.view.SetImage(img)
		w.window.SetTitle(title)
	})
}

// NextEvent blocks until the next click or key press. It returns io.EOF after the window was
// closed.
func (w *Window) NextEvent() (zoomlabel.Event, error) {
	select {
	case ev := <-w.events:
		return ev, nil
	case <-w.done:
		return nil, io.EOF
	}
}

// ShowAndRun shows the window and runs the fyne event loop until the application quits.
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window, which ends ShowAndRun.
func (w *Window) Close() {
	fyne.Do(w.window.Close)
}

func (w *Window) markClosed() {
	w.closeOnce.Do(func() { close(w.done) })
}

func (w *Window) typedKey(ev *fyne.KeyEvent) {
	if k, ok := keyFor(ev.Name); ok {
		w.send(zoomlabel.KeyPress{Key: k})
	}
}

// send queues ev without blocking the fyne event loop.
func (w *Window) send(ev zoomlabel.Event) {
	select {
	case w.events <- ev:
	default:
		log.Print("Input queue full, dropping event")
	}
}

// keyFor maps fyne key names to keys of the labeling session.
func keyFor(name fyne.KeyName) (zoomlabel.Key, bool) {
	switch name {
	case fyne.KeyEscape:
		return zoomlabel.KeyEscape, true
	case fyne.KeyReturn, fyne.KeyEnter:
		return zoomlabel.KeyEnter, true
	case fyne.KeyN:
		return zoomlabel.KeyN, true
	case fyne.KeyR:
		return zoomlabel.KeyR, true
	}
	return "", false
}

// imageView shows an image scaled to fit and reports taps in image pixel coordinates.
type imageView struct {
	widget.BaseWidget

	img     *canvas.Image
	pixels  image.Point // Size of the displayed image in pixels.
	onClick func(image.Point)
}

func newImageView(onClick func(image.Point)) *imageView {
	v := &imageView{
		img:     &canvas.Image{FillMode: canvas.ImageFillContain, ScaleMode: canvas.ImageScalePixels},
		onClick: onClick,
	}
	v.ExtendBaseWidget(v)
	return v
}

func (v *imageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

// SetImage replaces the displayed image.
func (v *imageView) SetImage(img image.Image) {
	v.img.Image = img
	v.pixels = img.Bounds().Size()
	v.img.Refresh()
}

// Tapped implements fyne.Tappable.
func (v *imageView) Tapped(ev *fyne.PointEvent) {
	if p, ok := viewToPixel(ev.Position, v.Size(), v.pixels); ok && v.onClick != nil {
		v.onClick(p)
	}
}

// viewToPixel maps pos within a widget of the given size to a pixel of an image of size pixels,
// shown centered and scaled to fit while keeping its aspect ratio. Returns false for positions
// outside of the image.
func viewToPixel(pos fyne.Position, size fyne.Size, pixels image.Point) (image.Point, bool) {
	if pixels.X <= 0 || pixels.Y <= 0 || size.Width <= 0 || size.Height <= 0 {
		return image.Point{}, false
	}

	scale := min(size.Width/float32(pixels.X), size.Height/float32(pixels.Y))
	offX := (size.Width - float32(pixels.X)*scale) / 2
	offY := (size.Height - float32(pixels.Y)*scale) / 2

	x := int(math.Floor(float64((pos.X - offX) / scale)))
	y := int(math.Floor(float64((pos.Y - offY) / scale)))
	if x < 0 || y < 0 || x >= pixels.X || y >= pixels.Y {
		return image.Point{}, false
	}

	return image.Pt(x, y), true
}
