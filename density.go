package citygrow

// DensityField approximates population density over the plane. The
// generator samples it to bias growth toward populated areas. Sampling
// must be a pure function of position; how the field is produced
// (procedural noise, an image, a precomputed grid) is up to the caller.
// See the density subpackage for ready-made implementations.
type DensityField interface {
	// WeightAt returns a non-negative density weight at p.
	WeightAt(p Point) float64
}

// zeroField is the density used when the caller passes a nil field.
type zeroField struct{}

func (zeroField) WeightAt(Point) float64 { return 0 }

// segmentWeight aggregates the field under a candidate's footprint by
// sampling the endpoints and midpoint.
func segmentWeight(f DensityField, a, b Point) float64 {
	return (f.WeightAt(a) + 2*f.WeightAt(a.Lerp(b, 0.5)) + f.WeightAt(b)) / 4
}
