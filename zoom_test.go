package zoomlabel

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestComputeZoomView(t *testing.T) {
	img := createTestImage(100, 80)

	tests := []struct {
		name       string
		a, b       image.Point
		factor     float64
		wantRegion image.Rectangle
		wantSize   image.Point
	}{
		{"ordered", image.Pt(10, 10), image.Pt(50, 50), 5, image.Rect(10, 10, 50, 50), image.Pt(200, 200)},
		{"reversed", image.Pt(50, 50), image.Pt(10, 10), 5, image.Rect(10, 10, 50, 50), image.Pt(200, 200)},
		{"mixed corners", image.Pt(50, 10), image.Pt(10, 30), 2, image.Rect(10, 10, 50, 30), image.Pt(80, 40)},
		{"clipped", image.Pt(90, 70), image.Pt(120, 100), 3, image.Rect(90, 70, 100, 80), image.Pt(30, 30)},
		{"fractional factor", image.Pt(0, 0), image.Pt(3, 2), 2.5, image.Rect(0, 0, 3, 2), image.Pt(8, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ZoomOptions{Factor: tt.factor, Filter: imaging.Linear}
			view, err := ComputeZoomView(img, tt.a, tt.b, opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if view.Region != tt.wantRegion {
				t.Errorf("region %v, want %v", view.Region, tt.wantRegion)
			}
			if got := view.Image.Bounds().Size(); got != tt.wantSize {
				t.Errorf("size %v, want %v", got, tt.wantSize)
			}
			if view.Factor != tt.factor {
				t.Errorf("factor %v, want %v", view.Factor, tt.factor)
			}
		})
	}
}

func TestComputeZoomViewEmptyRegion(t *testing.T) {
	img := createTestImage(100, 80)

	tests := []struct {
		name string
		a, b image.Point
	}{
		{"identical points", image.Pt(20, 20), image.Pt(20, 20)},
		{"horizontal line", image.Pt(10, 20), image.Pt(60, 20)},
		{"vertical line", image.Pt(10, 20), image.Pt(10, 60)},
		{"outside right", image.Pt(150, 10), image.Pt(200, 50)},
		{"outside above", image.Pt(10, -50), image.Pt(50, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeZoomView(img, tt.a, tt.b, DefaultZoomOptions())
			if !errors.Is(err, ErrEmptyRegion) {
				t.Errorf("expected ErrEmptyRegion, got %v", err)
			}
		})
	}
}

func TestComputeZoomViewInvalidFactor(t *testing.T) {
	img := createTestImage(10, 10)
	_, err := ComputeZoomView(img, image.Pt(0, 0), image.Pt(5, 5), ZoomOptions{Factor: 0})
	if err == nil {
		t.Error("expected an error for a zero zoom factor")
	}
}

func TestComputeZoomViewContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	red := color.RGBA{255, 0, 0, 255}
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			img.Set(x, y, red)
		}
	}

	view, err := ComputeZoomView(img, image.Pt(10, 10), image.Pt(14, 14),
		ZoomOptions{Factor: 4, Filter: imaging.NearestNeighbor})
	if err != nil {
		t.Fatal(err)
	}

	b := view.Image.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := view.Image.NRGBAAt(x, y); c != (color.NRGBA{255, 0, 0, 255}) {
				t.Fatalf("pixel (%d,%d) = %v, want red", x, y, c)
			}
		}
	}

	if got := view.ToOriginal(image.Pt(8, 2)); got != Pt(12, 10.5) {
		t.Errorf("ToOriginal: got %v, want (12, 10.5)", got)
	}
}

func TestParseFilter(t *testing.T) {
	for _, name := range []string{"nearest", "box", "linear", "gaussian", "lanczos", ""} {
		if _, err := ParseFilter(name); err != nil {
			t.Errorf("ParseFilter(%q): %v", name, err)
		}
	}
	if _, err := ParseFilter("bicubic"); err == nil {
		t.Error("expected an error for an unknown filter")
	}
}
