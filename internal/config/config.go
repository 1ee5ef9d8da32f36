// Package config holds the labeling tool configuration, read from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sensorable/zoomlabel"
)

// Config holds the application configuration.
type Config struct {
	ImageDir   string       `yaml:"images"`     // The input directory with the images to label.
	LabelDir   string       `yaml:"labels_out"` // The output directory for label files.
	Extensions []string     `yaml:"extensions"` // Image file extensions to label.
	Zoom       float64      `yaml:"zoom"`       // The magnification of zoom regions.
	Filter     string       `yaml:"filter"`     // The resampling filter for zoom regions.
	Labels     LabelConfig  `yaml:"labels"`
	Window     WindowConfig `yaml:"window"`
}

// LabelConfig holds the label output settings.
type LabelConfig struct {
	Format    string `yaml:"format"`     // "yolo" or "kitti".
	ClassIDs  string `yaml:"class_ids"`  // "sequential" or "fixed".
	ClassID   int    `yaml:"class_id"`   // The class id in "fixed" mode.
	ClassName string `yaml:"class_name"` // The KITTI label in "fixed" mode.
}

// WindowConfig holds the initial window size.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns a configuration with default values.
func Default() Config {
	return Config{
		Extensions: append([]string(nil), zoomlabel.DefaultImageExtensions...),
		Zoom:       zoomlabel.DefaultZoomFactor,
		Filter:     "linear",
		Labels: LabelConfig{
			Format:   "yolo",
			ClassIDs: "sequential",
		},
		Window: WindowConfig{Width: 1000, Height: 700},
	}
}

// LoadFromFile reads the YAML file at path. Settings missing from the file keep their defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.ImageDir == "" {
		return fmt.Errorf("missing image directory")
	}
	if c.LabelDir == "" {
		return fmt.Errorf("missing label output directory")
	}
	if c.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %v", c.Zoom)
	}
	if _, err := zoomlabel.ParseFilter(c.Filter); err != nil {
		return err
	}
	if _, err := zoomlabel.FormatFrom(c.Labels.Format); err != nil {
		return err
	}
	if _, err := zoomlabel.ClassIDModeFrom(c.Labels.ClassIDs); err != nil {
		return err
	}
	if c.Labels.ClassID < 0 {
		return fmt.Errorf("class_id must not be negative")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}

	return nil
}

// ZoomOptions returns the zoom settings. c must be valid.
func (c Config) ZoomOptions() zoomlabel.ZoomOptions {
	filter, _ := zoomlabel.ParseFilter(c.Filter)
	return zoomlabel.ZoomOptions{Factor: c.Zoom, Filter: filter}
}

// LabelWriter returns the writer for the configured label format.
func (c Config) LabelWriter() (zoomlabel.LabelWriter, error) {
	format, err := zoomlabel.FormatFrom(c.Labels.Format)
	if err != nil {
		return nil, err
	}
	mode, err := zoomlabel.ClassIDModeFrom(c.Labels.ClassIDs)
	if err != nil {
		return nil, err
	}

	policy := zoomlabel.ClassPolicy{Mode: mode, ID: c.Labels.ClassID, Name: c.Labels.ClassName}
	return zoomlabel.NewLabelWriter(format, policy)
}
