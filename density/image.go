package density

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/urbangen/citygrow"
)

// Grid is a density field backed by a raster of weights stretched over
// a city rectangle. Lookups outside the rectangle are zero.
type Grid struct {
	bounds citygrow.Rect
	w, h   int
	vals   []float64
}

// FromImage resamples an image down to a w-by-h grid with Catmull-Rom
// filtering and uses its luminance, normalized to [0, 1], as the
// density over bounds. Bright pixels mean dense population.
func FromImage(img image.Image, bounds citygrow.Rect, w, h int) *Grid {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	g := &Grid{bounds: bounds, w: w, h: h, vals: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.GrayModel.Convert(dst.At(x, y)).(color.Gray)
			g.vals[y*w+x] = float64(c.Y) / 255
		}
	}
	return g
}

// NewGrid wraps a precomputed row-major weight raster stretched over
// bounds. len(vals) must equal w*h.
func NewGrid(bounds citygrow.Rect, w, h int, vals []float64) *Grid {
	return &Grid{bounds: bounds, w: w, h: h, vals: vals}
}

// WeightAt bilinearly samples the grid at p.
func (g *Grid) WeightAt(p citygrow.Point) float64 {
	if !g.bounds.Contains(p) || g.bounds.Width() <= 0 || g.bounds.Height() <= 0 {
		return 0
	}
	fx := (p.X - g.bounds.Min.X) / g.bounds.Width() * float64(g.w-1)
	fy := (p.Y - g.bounds.Min.Y) / g.bounds.Height() * float64(g.h-1)

	x0, y0 := int(fx), int(fy)
	x1, y1 := x0+1, y0+1
	if x1 >= g.w {
		x1 = g.w - 1
	}
	if y1 >= g.h {
		y1 = g.h - 1
	}
	tx, ty := fx-float64(x0), fy-float64(y0)

	top := g.at(x0, y0) + (g.at(x1, y0)-g.at(x0, y0))*tx
	bot := g.at(x0, y1) + (g.at(x1, y1)-g.at(x0, y1))*tx
	return top + (bot-top)*ty
}

func (g *Grid) at(x, y int) float64 {
	return g.vals[y*g.w+x]
}
