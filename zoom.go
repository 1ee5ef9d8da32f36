package zoomlabel

// Magnified views of image regions.

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ErrEmptyRegion is returned when a zoom region covers no pixels of the image.
var ErrEmptyRegion = errors.New("empty zoom region")

// DefaultZoomFactor is the magnification used when none is configured.
const DefaultZoomFactor = 5

// ZoomOptions controls how zoom regions are magnified.
type ZoomOptions struct {
	Factor float64               // Magnification, must be > 0.
	Filter imaging.ResampleFilter // Resampling filter.
}

// DefaultZoomOptions returns a 5x magnification with linear interpolation.
func DefaultZoomOptions() ZoomOptions {
	return ZoomOptions{Factor: DefaultZoomFactor, Filter: imaging.Linear}
}

// ZoomView is a magnified crop of an image.
type ZoomView struct {
	Image  *image.NRGBA
	Region image.Rectangle // The cropped area in original image coordinates.
	Factor float64
}

// ToOriginal maps a pixel position in v.Image back to the original image.
func (v ZoomView) ToOriginal(p image.Point) Point {
	return MapViewPointToOriginal(p, v.Region.Min, v.Factor)
}

// ComputeZoomView crops the rectangle spanned by the corner points a and b from img and magnifies
// it by opts.Factor. The points may be given in any order. Parts of the rectangle outside of the
// image bounds are clipped; ErrEmptyRegion is returned if nothing remains.
func ComputeZoomView(img image.Image, a, b image.Point, opts ZoomOptions) (ZoomView, error) {
	r := image.Rect(a.X, a.Y, b.X, b.Y).Intersect(img.Bounds())
	if r.Empty() {
		return ZoomView{}, fmt.Errorf("%w: (%d,%d)(%d,%d)", ErrEmptyRegion, a.X, a.Y, b.X, b.Y)
	}
	if opts.Factor <= 0 {
		return ZoomView{}, fmt.Errorf("invalid zoom factor %v", opts.Factor)
	}

	w := scaledLength(r.Dx(), opts.Factor)
	h := scaledLength(r.Dy(), opts.Factor)
	crop := imaging.Crop(img, r)

	return ZoomView{
		Image:  imaging.Resize(crop, w, h, opts.Filter),
		Region: r,
		Factor: opts.Factor,
	}, nil
}

// scaledLength returns n*factor rounded to the nearest pixel, but at least 1.
func scaledLength(n int, factor float64) int {
	l := int(math.Round(float64(n) * factor))
	if l < 1 {
		return 1
	}
	return l
}

// ParseFilter returns the resampling filter with the given name.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	switch name {
	case "nearest":
		return imaging.NearestNeighbor, nil
	case "box":
		return imaging.Box, nil
	case "linear", "":
		return imaging.Linear, nil
	case "gaussian":
		return imaging.Gaussian, nil
	case "lanczos":
		return imaging.Lanczos, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown resampling filter %q", name)
}
