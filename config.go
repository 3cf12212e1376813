package citygrow

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig reports a configuration rejected by Config.Validate.
var ErrInvalidConfig = errors.New("citygrow: invalid configuration")

// RoadRule holds the per-road-type segment template.
type RoadRule struct {
	// Length is the default length of a newly proposed segment.
	Length float64
	// Width is rendering metadata carried on each segment.
	Width float64
	// Elevation is the vertical offset carried on each segment.
	Elevation float64
}

// Config is the immutable rule set for one growth run. The generator
// treats it as read-only input; validate it with Validate before use
// (New does this for you).
type Config struct {
	// Name labels the generated city.
	Name string

	// Bounds is the city rectangle. Candidates escaping it are
	// rejected.
	Bounds Rect

	// Highway and Street are the segment templates per road type.
	Highway RoadRule
	Street  RoadRule

	// MaxSegments caps the accepted-segment count; growth stops at
	// the cap even with a nonempty worklist.
	MaxSegments int

	// MinIntersectionDeg rejects crossings whose minimum angle
	// difference is below this value, in degrees.
	MinIntersectionDeg float64

	// SnapRadius merges endpoints and near misses closer than this
	// distance into a single junction.
	SnapRadius float64

	// HighwayBranchThreshold is the sampled density a highway
	// continuation must exceed before a branch may spawn.
	HighwayBranchThreshold float64
	// StreetThreshold gates street continuations and branches.
	StreetThreshold float64

	// HighwayBranchChance and StreetBranchChance are the per-proposal
	// branch probabilities in [0, 1].
	HighwayBranchChance float64
	StreetBranchChance  float64

	// HighwayBranchPriority is added to the priority of streets
	// branching off a highway, delaying them relative to the
	// arterial growth front.
	HighwayBranchPriority int

	// MaxStraightDeviationDeg bounds the random angle offset of a
	// highway's deviated continuation; MaxBranchDeviationDeg bounds
	// the jitter added to the ±90° branch direction.
	MaxStraightDeviationDeg float64
	MaxBranchDeviationDeg   float64

	// QuadtreeCapacity and QuadtreeDepth configure the spatial index.
	QuadtreeCapacity int
	QuadtreeDepth    int

	// Seed initializes the run's random source. Equal seeds with
	// equal configuration and density field reproduce the network
	// exactly.
	Seed uint64
}

// DefaultConfig returns a configuration that grows a medium-sized city
// on a 4000x4000 plane centered at the origin.
func DefaultConfig() Config {
	return Config{
		Name:                    "citygrow",
		Bounds:                  NewRect(Pt(-2000, -2000), Pt(2000, 2000)),
		Highway:                 RoadRule{Length: 120, Width: 16, Elevation: 0.02},
		Street:                  RoadRule{Length: 90, Width: 8, Elevation: 0.01},
		MaxSegments:             600,
		MinIntersectionDeg:      30,
		SnapRadius:              18,
		HighwayBranchThreshold:  0.12,
		StreetThreshold:         0.06,
		HighwayBranchChance:     0.35,
		StreetBranchChance:      0.4,
		HighwayBranchPriority:   5,
		MaxStraightDeviationDeg: 15,
		MaxBranchDeviationDeg:   3,
		QuadtreeCapacity:        8,
		QuadtreeDepth:           8,
	}
}

// Validate checks the configuration and returns a wrapped
// ErrInvalidConfig describing the first problem found.
func (c Config) Validate() error {
	if c.MaxSegments <= 0 {
		return fmt.Errorf("%w: max segments must be positive, got %d", ErrInvalidConfig, c.MaxSegments)
	}
	if c.Bounds.Width() <= 0 || c.Bounds.Height() <= 0 {
		return fmt.Errorf("%w: degenerate city bounds %+v", ErrInvalidConfig, c.Bounds)
	}
	if c.Highway.Length <= 0 || c.Street.Length <= 0 {
		return fmt.Errorf("%w: road lengths must be positive (highway %g, street %g)",
			ErrInvalidConfig, c.Highway.Length, c.Street.Length)
	}
	if c.SnapRadius < 0 {
		return fmt.Errorf("%w: snap radius must not be negative, got %g", ErrInvalidConfig, c.SnapRadius)
	}
	if c.MinIntersectionDeg < 0 || c.MinIntersectionDeg > 90 {
		return fmt.Errorf("%w: minimum intersection angle must be in [0, 90], got %g",
			ErrInvalidConfig, c.MinIntersectionDeg)
	}
	if c.HighwayBranchChance < 0 || c.HighwayBranchChance > 1 {
		return fmt.Errorf("%w: highway branch chance must be in [0, 1], got %g",
			ErrInvalidConfig, c.HighwayBranchChance)
	}
	if c.StreetBranchChance < 0 || c.StreetBranchChance > 1 {
		return fmt.Errorf("%w: street branch chance must be in [0, 1], got %g",
			ErrInvalidConfig, c.StreetBranchChance)
	}
	if c.MaxStraightDeviationDeg < 0 || c.MaxBranchDeviationDeg < 0 {
		return fmt.Errorf("%w: deviation angles must not be negative", ErrInvalidConfig)
	}
	if c.QuadtreeCapacity <= 0 {
		return fmt.Errorf("%w: quadtree capacity must be positive, got %d",
			ErrInvalidConfig, c.QuadtreeCapacity)
	}
	if c.QuadtreeDepth <= 0 {
		return fmt.Errorf("%w: quadtree depth must be positive, got %d",
			ErrInvalidConfig, c.QuadtreeDepth)
	}
	return nil
}

// rule returns the template for the given road type.
func (c Config) rule(t RoadType) RoadRule {
	if t == Highway {
		return c.Highway
	}
	return c.Street
}
