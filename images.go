package zoomlabel

// Image enumeration and decoding.

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register the WebP decoder.
)

// DefaultImageExtensions are the image file extensions that are labeled by default.
var DefaultImageExtensions = []string{".jpg", ".png", ".jpeg"}

// ErrNoImages is returned by ListImages when the directory contains no matching files.
var ErrNoImages = errors.New("no images found")

// LoadError is returned when an image cannot be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ListImages returns the paths of all files directly in dir with one of the extensions exts
// (case-insensitive), sorted by file name.
func ListImages(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultImageExtensions
	}
	files, err := filesByExtInDir(dir, exts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoImages, dir)
	}

	// All paths share the directory prefix, so this orders by file name.
	sort.Strings(files)
	return files, nil
}

// LoadImage reads and decodes the image at path, applying the EXIF orientation if present.
// Errors are of type *LoadError.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return img, nil
}
