package citygrow

import (
	"math"
	"math/rand/v2"
)

// proposer implements the global goals: from an accepted segment it
// derives successor candidates using the configured road templates plus
// randomized deviation, sampling the density field to decide which
// continuations are worth growing.
type proposer struct {
	cfg   Config
	field DensityField
	rng   *rand.Rand
}

// propose returns the candidates growing out of parent, each already
// tentatively linked to parent and parent's forward links. A split
// parent's growth front has been absorbed into the surrounding topology
// and proposes nothing.
func (g *proposer) propose(parent *Segment) []*Segment {
	if parent.Split {
		return nil
	}

	dirAngle := parent.B.Sub(parent.A).Angle()
	straight := g.template(parent.B, dirAngle, parent.Type, 0)
	straightW := segmentWeight(g.field, straight.A, straight.B)

	var out []*Segment
	if parent.Type == Highway {
		// Duel the straight continuation against a randomly deviated
		// one and keep whichever covers more population.
		devAngle := dirAngle + g.jitter(g.cfg.MaxStraightDeviationDeg)
		deviated := g.template(parent.B, devAngle, Highway, 0)
		deviatedW := segmentWeight(g.field, deviated.A, deviated.B)

		chosen, chosenW := straight, straightW
		if deviatedW > straightW {
			chosen, chosenW = deviated, deviatedW
		}
		out = append(out, chosen)

		if chosenW > g.cfg.HighwayBranchThreshold &&
			g.rng.Float64() < g.cfg.HighwayBranchChance {
			out = append(out, g.branch(parent, dirAngle, g.cfg.HighwayBranchPriority))
		}
	} else {
		if straightW > g.cfg.StreetThreshold {
			out = append(out, straight)
			if g.rng.Float64() < g.cfg.StreetBranchChance {
				out = append(out, g.branch(parent, dirAngle, 0))
			}
		}
	}

	for _, c := range out {
		c.Priority += parent.Priority + 1
		g.attach(parent, c)
	}
	return out
}

// branch builds a street candidate leaving parent.B roughly
// perpendicular to the parent, side chosen by coin flip.
func (g *proposer) branch(parent *Segment, dirAngle float64, priority int) *Segment {
	side := math.Pi / 2
	if g.rng.Float64() < 0.5 {
		side = -side
	}
	angle := dirAngle + side + g.jitter(g.cfg.MaxBranchDeviationDeg)
	return g.template(parent.B, angle, Street, priority)
}

// template builds a candidate from the configured rule for t, starting
// at from and heading along angle (radians).
func (g *proposer) template(from Point, angle float64, t RoadType, priority int) *Segment {
	rule := g.cfg.rule(t)
	return &Segment{
		A:         from,
		B:         from.Add(Polar(angle, rule.Length)),
		Type:      t,
		Width:     rule.Width,
		Elevation: rule.Elevation,
		Priority:  priority,
	}
}

// jitter returns a uniform random angle in ±maxDeg, in radians.
func (g *proposer) jitter(maxDeg float64) float64 {
	return (g.rng.Float64()*2 - 1) * maxDeg * math.Pi / 180
}

// attach records the tentative links between a fresh candidate and the
// junction it grows from. The links become permanent if the candidate
// is accepted; rejection detaches them.
func (g *proposer) attach(parent, c *Segment) {
	for _, f := range parent.Forward {
		linkAt(c, f, c.A)
	}
	linkAt(c, parent, c.A)
}
