package zoomlabel

// The per-image annotation state machine.
//
// A box is placed in two stages. First two clicks on the original image select a zoom region,
// which is then shown magnified. Next two clicks on the magnified view mark the box center and
// one of its edges. The box is recorded in original image coordinates and the original image is
// shown again.

import (
	"image"
)

// Stage is the interaction mode that determines how clicks are interpreted.
type Stage int

// The stages of a Session.
const (
	SelectingRegion Stage = iota // Clicks are zoom region corners on the original image.
	PlacingBox                   // Clicks are box center and edge on the magnified view.
)

func (s Stage) String() string {
	switch s {
	case SelectingRegion:
		return "selecting-region"
	case PlacingBox:
		return "placing-box"
	}
	return "unknown"
}

// Event is an input to a Session or to the Navigator.
type Event interface {
	isEvent()
}

// Click is a mouse button press at Pos, in the pixel coordinates of the displayed image.
type Click struct {
	Pos image.Point
}

// KeyPress is a key typed on the display surface.
type KeyPress struct {
	Key Key
}

// Reset discards all annotations of the current image.
type Reset struct{}

// Advance saves the current image and moves on to the next one.
type Advance struct{}

// Quit ends the labeling session without saving the current image.
type Quit struct{}

func (Click) isEvent()    {}
func (KeyPress) isEvent() {}
func (Reset) isEvent()    {}
func (Advance) isEvent()  {}
func (Quit) isEvent()     {}

// Effect is an action requested by the state machine, carried out by the caller.
type Effect interface {
	isEffect()
}

// ShowView asks for the magnified view to be displayed.
type ShowView struct {
	View ZoomView
}

// ShowOriginal asks for the original image to be displayed with Annotations drawn on top.
type ShowOriginal struct {
	Annotations []Annotation
}

// Warn reports a recoverable problem, e.g. an empty zoom region.
type Warn struct {
	Err error
}

// AnnotationAdded reports that a box was placed. Index is 0-based.
type AnnotationAdded struct {
	Index      int
	Annotation Annotation
}

// Save asks for Annotations to be written to the label file of the current image.
type Save struct {
	Annotations []Annotation
}

// NothingToSave reports an Advance without annotations.
type NothingToSave struct{}

// Reload asks for the original image to be loaded and displayed again.
type Reload struct{}

// Exit asks for the labeling session to end.
type Exit struct{}

func (ShowView) isEffect()        {}
func (ShowOriginal) isEffect()    {}
func (Warn) isEffect()            {}
func (AnnotationAdded) isEffect() {}
func (Save) isEffect()            {}
func (NothingToSave) isEffect()   {}
func (Reload) isEffect()          {}
func (Exit) isEffect()            {}

// Session is the annotation state of one image. A Session is a value: HandleEvent returns a new
// Session and never modifies the one it is given.
type Session struct {
	image image.Image // The original image, never drawn on.
	zoom  ZoomOptions

	stage       Stage
	corners     []image.Point // Pending zoom region corners in original image coordinates.
	view        ZoomView      // The accepted zoom region while in PlacingBox.
	clicks      []image.Point // Pending clicks in view coordinates.
	annotations []Annotation
}

// NewSession returns an empty session for img.
func NewSession(img image.Image, zoom ZoomOptions) Session {
	return Session{image: img, zoom: zoom}
}

// Stage returns the current stage.
func (s Session) Stage() Stage {
	return s.stage
}

// Image returns the original image.
func (s Session) Image() image.Image {
	return s.image
}

// Annotations returns a copy of the annotations placed so far.
func (s Session) Annotations() []Annotation {
	return append([]Annotation(nil), s.annotations...)
}

// HandleEvent applies ev to s and returns the resulting session along with the effects the caller
// must carry out, in order. Events other than Click, Reset, Advance and Quit are ignored.
func HandleEvent(s Session, ev Event) (Session, []Effect) {
	switch ev := ev.(type) {
	case Click:
		if s.stage == PlacingBox {
			return s.placeBox(ev.Pos)
		}
		return s.selectRegion(ev.Pos)

	case Reset:
		return s.cleared(), []Effect{Reload{}}

	case Advance:
		if len(s.annotations) == 0 {
			return s.cleared(), []Effect{NothingToSave{}}
		}
		return s.cleared(), []Effect{Save{Annotations: s.Annotations()}}

	case Quit:
		return s, []Effect{Exit{}}
	}
	return s, nil
}

// cleared returns s without any annotations or pending clicks.
func (s Session) cleared() Session {
	return NewSession(s.image, s.zoom)
}

func (s Session) selectRegion(p image.Point) (Session, []Effect) {
	// Full slice expressions force a copy on append, so s keeps its own backing array.
	s.corners = append(s.corners[:len(s.corners):len(s.corners)], p)
	if len(s.corners) < 2 {
		return s, nil
	}

	view, err := ComputeZoomView(s.image, s.corners[0], s.corners[1], s.zoom)
	s.corners = nil
	if err != nil {
		return s, []Effect{Warn{Err: err}}
	}

	s.stage = PlacingBox
	s.view = view
	s.clicks = nil
	return s, []Effect{ShowView{View: view}}
}

func (s Session) placeBox(p image.Point) (Session, []Effect) {
	s.clicks = append(s.clicks[:len(s.clicks):len(s.clicks)], p)
	if len(s.clicks) < 2 {
		return s, nil
	}

	a := Annotation{
		Center: s.view.ToOriginal(s.clicks[0]),
		Edge:   s.view.ToOriginal(s.clicks[1]),
	}
	s.annotations = append(s.annotations[:len(s.annotations):len(s.annotations)], a)
	s.stage = SelectingRegion
	s.view = ZoomView{}
	s.clicks = nil

	return s, []Effect{
		AnnotationAdded{Index: len(s.annotations) - 1, Annotation: a},
		ShowOriginal{Annotations: s.Annotations()},
	}
}
