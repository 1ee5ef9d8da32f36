// Labels images with bounding boxes. Each box is placed by first selecting a zoom region, then
// clicking the box center and one of its edges in the magnified view. Labels are written as one
// YOLO (or KITTI) text file per image.
//
// Keys: Enter or n saves the current image and moves to the next one, r discards the boxes of
// the current image, Escape quits without saving the current image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/sensorable/zoomlabel"
	"github.com/sensorable/zoomlabel/gui"
	"github.com/sensorable/zoomlabel/internal/config"
)

var cfg config.Config // The resolved configuration.

func init() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", filepath.Base(os.Args[0]))
		_, _ = fmt.Fprintln(os.Stderr, "  -images <dir> -labels-out <dir> [-config <file>] [-zoom <factor>]")
		_, _ = fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}

	printUsageAndExit := func(msg ...interface{}) {
		log.Print(msg...)
		flag.Usage()
		os.Exit(1)
	}

	configPath := flag.String("config", "", "The YAML configuration file `path`; flags override its values")

	// Values given on the command line are applied on top of the configuration file.
	defaults := config.Default()
	imageDir := flag.String("images", "", "The `path` to the image input directory")
	labelDir := flag.String("labels-out", "", "The `path` to the label output directory (created if absent)")
	zoom := flag.Float64("zoom", defaults.Zoom, "The magnification `factor` for zoom regions")
	filter := flag.String("filter", defaults.Filter,
		"The resampling filter for zoom regions {nearest, box, linear, gaussian, lanczos}")
	format := flag.String("format", defaults.Labels.Format, "The label `format` {yolo, kitti}")
	classIDs := flag.String("class-ids", defaults.Labels.ClassIDs,
		"How class ids are assigned {sequential, fixed}; sequential numbers the boxes of each image")
	classID := flag.Int("class-id", defaults.Labels.ClassID, "The class `id` for -class-ids fixed")
	className := flag.String("class-name", defaults.Labels.ClassName,
		"The KITTI class `name` for -class-ids fixed (defaults to the class id)")

	flag.Parse()

	cfg = defaults
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(*configPath); err != nil {
			printUsageAndExit(err)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "images":
			cfg.ImageDir = *imageDir
		case "labels-out":
			cfg.LabelDir = *labelDir
		case "zoom":
			cfg.Zoom = *zoom
		case "filter":
			cfg.Filter = *filter
		case "format":
			cfg.Labels.Format = *format
		case "class-ids":
			cfg.Labels.ClassIDs = *classIDs
		case "class-id":
			cfg.Labels.ClassID = *classID
		case "class-name":
			cfg.Labels.ClassName = *className
		}
	})

	if err := cfg.Validate(); err != nil {
		printUsageAndExit("Invalid configuration: ", err)
	}

	cfg.ImageDir = filepath.Clean(cfg.ImageDir)
	cfg.LabelDir = filepath.Clean(cfg.LabelDir)
}

func main() {
	if err := os.MkdirAll(cfg.LabelDir, 0o755); err != nil {
		log.Fatal("Failed to create the label output directory: ", err)
	}

	images, err := zoomlabel.ListImages(cfg.ImageDir, cfg.Extensions)
	if errors.Is(err, zoomlabel.ErrNoImages) {
		log.Fatal("No images found in ", cfg.ImageDir)
	} else if err != nil {
		log.Fatal(err)
	}
	log.Printf("Labeling %d images from %s", len(images), cfg.ImageDir)

	writer, err := cfg.LabelWriter()
	if err != nil {
		log.Fatal(err)
	}

	a := app.New()
	win := gui.NewWindow(a, "Labeling", fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	nav := zoomlabel.NewNavigator(images, cfg.LabelDir, win, writer, zoomlabel.Options{
		Zoom: cfg.ZoomOptions(),
	})

	go func() {
		sum, err := nav.Run()
		if err != nil {
			log.Print(err)
		}
		log.Printf("Wrote %d boxes to %d label files (%d failed, %d images skipped)",
			sum.Boxes, sum.Saved, sum.Failed, sum.Skipped)
		win.Close()
	}()

	win.ShowAndRun()
}
