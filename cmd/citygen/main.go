// Command citygen grows a road network and writes it as a PNG map.
package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"os"

	"github.com/urbangen/citygrow"
	"github.com/urbangen/citygrow/density"
	"github.com/urbangen/citygrow/render"
)

func main() {
	var (
		name     = flag.String("name", "citygrow", "city name")
		size     = flag.Float64("size", 4000, "city side length in world units")
		segments = flag.Int("segments", 600, "maximum road segments")
		seed     = flag.Uint64("seed", 1, "random seed")
		field    = flag.String("density", "radial", "density field: flat, radial, noise, or an image path")
		shade    = flag.Bool("shade", false, "underlay the density field on the map")
		output   = flag.String("output", "city.png", "output file")
		pixels   = flag.Int("pixels", 1024, "output image size")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		citygrow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	} else {
		citygrow.SetLogger(slog.Default())
	}

	cfg := citygrow.DefaultConfig()
	cfg.Name = *name
	cfg.Bounds = citygrow.NewRect(
		citygrow.Pt(-*size/2, -*size/2),
		citygrow.Pt(*size/2, *size/2),
	)
	cfg.MaxSegments = *segments
	cfg.Seed = *seed

	gen, err := citygrow.New(cfg, densityField(*field, cfg))
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	city := gen.Generate()

	opts := render.DefaultOptions()
	opts.Width = *pixels
	opts.Height = *pixels
	opts.ShadeDensity = *shade
	if err := render.WritePNG(*output, city, opts); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("%s: %d segments saved to %s (%dx%d)",
		city.Name, len(city.Segments), *output, *pixels, *pixels)
}

// densityField builds the field selected by the -density flag. Any
// value that is not a known field name is treated as an image path.
func densityField(kind string, cfg citygrow.Config) citygrow.DensityField {
	switch kind {
	case "flat":
		return density.Flat(1)
	case "radial":
		return density.NewRadial(cfg.Bounds.Center(), 1, cfg.Bounds.Width()/2)
	case "noise":
		return density.NewNoise(cfg.Seed, cfg.Bounds.Width()/4)
	default:
		f, err := os.Open(kind)
		if err != nil {
			log.Fatalf("Failed to open density image: %v", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			log.Fatalf("Failed to decode density image: %v", err)
		}
		return density.FromImage(img, cfg.Bounds, 256, 256)
	}
}
