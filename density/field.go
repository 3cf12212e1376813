// Package density provides ready-made population-density fields for
// citygrow: uniform, radial falloff, seeded value noise, and rasters
// resampled from images. All types implement citygrow.DensityField.
package density

import "github.com/urbangen/citygrow"

// Flat is a uniform density field: every point has the same weight.
type Flat float64

// WeightAt returns the uniform weight.
func (f Flat) WeightAt(citygrow.Point) float64 { return float64(f) }

// Radial peaks at a center point and falls off linearly to zero at the
// given radius. A single downtown, roughly.
type Radial struct {
	center citygrow.Point
	peak   float64
	radius float64
}

// NewRadial creates a radial field peaking at center with the given
// peak weight, reaching zero at radius.
func NewRadial(center citygrow.Point, peak, radius float64) *Radial {
	return &Radial{center: center, peak: peak, radius: radius}
}

// WeightAt returns the linearly interpolated weight at p.
func (r *Radial) WeightAt(p citygrow.Point) float64 {
	if r.radius <= 0 {
		return 0
	}
	d := p.Distance(r.center)
	if d >= r.radius {
		return 0
	}
	return r.peak * (1 - d/r.radius)
}

// Noise is seeded fractal value noise in [0, 1]. Equal seeds produce
// identical fields, so growth runs over a Noise field stay
// reproducible.
type Noise struct {
	seed    uint64
	scale   float64
	octaves int
}

// NewNoise creates a noise field. scale is the wavelength of the
// lowest octave in world units.
func NewNoise(seed uint64, scale float64) *Noise {
	return &Noise{seed: seed, scale: scale, octaves: 3}
}

// WeightAt returns the fractal noise value at p, in [0, 1].
func (n *Noise) WeightAt(p citygrow.Point) float64 {
	if n.scale <= 0 {
		return 0
	}
	sum, amp, norm := 0.0, 1.0, 0.0
	freq := 1 / n.scale
	for o := 0; o < n.octaves; o++ {
		sum += amp * n.sample(p.X*freq, p.Y*freq, uint64(o))
		norm += amp
		amp /= 2
		freq *= 2
	}
	return sum / norm
}

// sample evaluates one octave of smoothly interpolated lattice noise.
func (n *Noise) sample(x, y float64, octave uint64) float64 {
	ix, iy := floorInt(x), floorInt(y)
	fx, fy := x-float64(ix), y-float64(iy)
	sx, sy := smooth(fx), smooth(fy)

	v00 := n.lattice(ix, iy, octave)
	v10 := n.lattice(ix+1, iy, octave)
	v01 := n.lattice(ix, iy+1, octave)
	v11 := n.lattice(ix+1, iy+1, octave)

	top := v00 + (v10-v00)*sx
	bot := v01 + (v11-v01)*sx
	return top + (bot-top)*sy
}

// lattice hashes an integer lattice point to a value in [0, 1).
func (n *Noise) lattice(ix, iy int64, octave uint64) float64 {
	h := n.seed ^ (octave * 0xd6e8feb86659fd93)
	h ^= uint64(ix) * 0x9e3779b97f4a7c15
	h ^= uint64(iy) * 0xbf58476d1ce4e5b9
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return float64(h>>11) / (1 << 53)
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func floorInt(x float64) int64 {
	i := int64(x)
	if x < float64(i) {
		i--
	}
	return i
}
