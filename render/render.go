// Package render draws generated road networks to images. It is a
// view-building collaborator of citygrow: it consumes a finished City
// and never mutates it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/vector"

	"github.com/urbangen/citygrow"
)

// Options configures map rendering.
type Options struct {
	// Width and Height are the output image size in pixels.
	Width, Height int

	// Background fills the image before roads are drawn.
	Background color.RGBA

	// HighwayColor and StreetColor style the two road types.
	HighwayColor color.RGBA
	StreetColor  color.RGBA

	// ShadeDensity underlays the city's density field as a grayscale
	// gradient over the background.
	ShadeDensity bool
}

// DefaultOptions returns a dark map style at 1024x1024.
func DefaultOptions() Options {
	return Options{
		Width:        1024,
		Height:       1024,
		Background:   color.RGBA{R: 24, G: 26, B: 30, A: 255},
		HighwayColor: color.RGBA{R: 235, G: 200, B: 90, A: 255},
		StreetColor:  color.RGBA{R: 200, G: 200, B: 205, A: 255},
	}
}

// Map renders the city's road network to an RGBA image. Streets are
// drawn first so highways stay visible at junctions.
func Map(city *citygrow.City, opts Options) *image.RGBA {
	if opts.Width < 1 || opts.Height < 1 {
		opts = DefaultOptions()
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	if opts.ShadeDensity && city.Density != nil {
		shadeDensity(img, city, opts)
	}

	m := newMapper(city.Bounds, opts.Width, opts.Height)
	drawRoads(img, city, m, citygrow.Street, opts.StreetColor)
	drawRoads(img, city, m, citygrow.Highway, opts.HighwayColor)
	return img
}

// WritePNG renders the city with the given options and writes it to
// path as a PNG file.
func WritePNG(path string, city *citygrow.City, opts Options) error {
	img := Map(city, opts)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return nil
}

// mapper converts world coordinates to pixel coordinates, y flipped so
// north is up.
type mapper struct {
	bounds citygrow.Rect
	sx, sy float64
}

func newMapper(bounds citygrow.Rect, w, h int) mapper {
	return mapper{
		bounds: bounds,
		sx:     float64(w) / bounds.Width(),
		sy:     float64(h) / bounds.Height(),
	}
}

func (m mapper) toPixel(p citygrow.Point) (float32, float32) {
	x := (p.X - m.bounds.Min.X) * m.sx
	y := (m.bounds.Max.Y - p.Y) * m.sy
	return float32(x), float32(y)
}

// drawRoads rasterizes every segment of one road type as an
// anti-aliased quad.
func drawRoads(img *image.RGBA, city *citygrow.City, m mapper, t citygrow.RoadType, col color.RGBA) {
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	painted := false
	for _, seg := range city.Segments {
		if seg.Type != t {
			continue
		}
		appendQuad(r, m, seg)
		painted = true
	}
	if painted {
		r.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
	}
}

// appendQuad adds the segment's stroked outline to the rasterizer.
func appendQuad(r *vector.Rasterizer, m mapper, seg *citygrow.Segment) {
	dir := seg.Dir()
	if dir == (citygrow.Point{}) {
		return
	}
	// Perpendicular half-width offset in world units, at least one
	// pixel wide after scaling.
	half := seg.Width / 2
	if half*m.sx < 0.5 {
		half = 0.5 / m.sx
	}
	n := citygrow.Pt(-dir.Y, dir.X).Mul(half)

	x0, y0 := m.toPixel(seg.A.Add(n))
	x1, y1 := m.toPixel(seg.B.Add(n))
	x2, y2 := m.toPixel(seg.B.Sub(n))
	x3, y3 := m.toPixel(seg.A.Sub(n))

	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.LineTo(x2, y2)
	r.LineTo(x3, y3)
	r.ClosePath()
}

// shadeDensity blends the density field over the background as a dim
// grayscale layer.
func shadeDensity(img *image.RGBA, city *citygrow.City, opts Options) {
	m := newMapper(city.Bounds, opts.Width, opts.Height)
	for py := 0; py < opts.Height; py++ {
		wy := city.Bounds.Max.Y - (float64(py)+0.5)/m.sy
		for px := 0; px < opts.Width; px++ {
			wx := city.Bounds.Min.X + (float64(px)+0.5)/m.sx
			w := city.Density.WeightAt(citygrow.Pt(wx, wy))
			if w <= 0 {
				continue
			}
			if w > 1 {
				w = 1
			}
			base := img.RGBAAt(px, py)
			shade := uint8(60 * w)
			img.SetRGBA(px, py, color.RGBA{
				R: satAdd(base.R, shade),
				G: satAdd(base.G, shade),
				B: satAdd(base.B, shade),
				A: 255,
			})
		}
	}
}

func satAdd(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}
