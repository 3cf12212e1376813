package citygrow

// validator applies the local constraints: a candidate segment is
// checked against the accepted network and either rejected, accepted
// as-is, or accepted after being snapped or shortened in place.
type validator struct {
	cfg   Config
	index *Quadtree
}

// validate runs the local constraints on c, mutating c and possibly
// neighboring segments. It returns whether c was accepted, plus any
// far portions created by splitting neighbors; those are already fully
// linked and must be accepted into the network alongside c.
//
// Every neighbor is examined even after an earlier one has mutated the
// candidate: a shortened candidate may still cross or snap to a later
// neighbor.
func (v *validator) validate(c *Segment) (ok bool, splits []*Segment) {
	log := Logger()

	if c.Length() < epsilon {
		log.Debug("rejecting degenerate candidate", "at", c.A)
		return false, nil
	}
	if !v.cfg.Bounds.ContainsRect(c.Bounds()) {
		log.Debug("rejecting candidate outside city bounds", "a", c.A, "b", c.B)
		return false, nil
	}

	// The query rectangle is grown by the snap radius so endpoint and
	// near-miss snapping see neighbors whose bounds do not strictly
	// overlap the candidate's.
	neighbors := v.index.Retrieve(c.Bounds().Expand(v.cfg.SnapRadius))

	for _, n := range neighbors {
		ix := SegmentIntersection(c.A, c.B, n.A, n.B)

		switch {
		case ix.Kind == IntersectOverlap:
			log.Debug("rejecting overlapping candidate", "a", c.A, "b", c.B)
			return false, nil

		case ix.Kind == IntersectPoint && v.interiorToCandidate(ix.P, c):
			if MinAngleDeg(c.Dir(), n.Dir()) < v.cfg.MinIntersectionDeg {
				log.Debug("rejecting shallow crossing", "at", ix.P)
				return false, nil
			}
			unfuseForward(c)
			c.B = ix.P
			c.Split = true
			if far := v.splitNeighbor(n, ix.P, c); far != nil {
				splits = append(splits, far)
			}
			log.Debug("split neighbor at crossing", "at", ix.P)

		case c.B.Distance(n.B) <= v.cfg.SnapRadius:
			if rejected := v.snapToEndpoint(c, n); rejected {
				log.Debug("rejecting duplicate link", "at", n.B)
				return false, nil
			}
			log.Debug("snapped candidate to junction", "at", c.B)

		default:
			rejected, far := v.snapToProjection(c, n)
			if rejected {
				log.Debug("rejecting shallow near-miss", "near", n.A)
				return false, nil
			}
			if far != nil {
				splits = append(splits, far)
			}
		}
	}
	return true, splits
}

// unfuseForward undoes any junction previously recorded at c.B. When a
// later neighbor moves the candidate's end again (last write wins), the
// links made at the earlier position would otherwise go stale.
func unfuseForward(c *Segment) {
	for _, l := range c.Forward {
		l.removeLink(c)
	}
	c.Forward = nil
}

// interiorToCandidate reports whether p lies strictly between the
// candidate's endpoints.
func (v *validator) interiorToCandidate(p Point, c *Segment) bool {
	return !samePoint(p, c.A) && !samePoint(p, c.B)
}

// snapToEndpoint redirects the candidate's far endpoint onto the
// neighbor's far endpoint and merges the candidate into that junction.
// It reports true if the junction already carries a link duplicating
// the candidate's endpoint pair, in which case the candidate must be
// rejected.
func (v *validator) snapToEndpoint(c, n *Segment) (rejected bool) {
	unfuseForward(c)
	c.B = n.B
	c.Split = true

	// n itself runs from the junction to n.A; an existing link with
	// the same endpoint pair in either order makes c a duplicate.
	if samePoint(n.A, c.A) {
		return true
	}
	// A later neighbor at the same junction sees the candidate's own
	// earlier links, so skip c itself here.
	for _, l := range n.Forward {
		if l == c {
			continue
		}
		if (samePoint(l.A, c.A) && samePoint(l.B, c.B)) ||
			(samePoint(l.B, c.A) && samePoint(l.A, c.B)) {
			return true
		}
	}

	// Cross-link with everything already meeting at the junction.
	for _, l := range n.Forward {
		if l == c {
			continue
		}
		linkAt(c, l, c.B)
	}
	linkAt(c, n, c.B)
	return false
}

// snapToProjection handles the near-miss case: a candidate endpoint
// passing close to the neighbor's interior is pulled onto the neighbor,
// which is then split at the projected point. Reports rejected when the
// resulting crossing would be too shallow.
func (v *validator) snapToProjection(c, n *Segment) (rejected bool, far *Segment) {
	// The start endpoint is only eligible to move while it carries no
	// links; a candidate's A is normally fused to its parent junction
	// and must stay put. Of the eligible endpoints, the closer wins.
	dist, foot, along := ProjectToLine(c.B, n.A, n.B)
	moveA := false
	if len(c.Backward) == 0 {
		if dA, fA, aA := ProjectToLine(c.A, n.A, n.B); dA < dist {
			dist, foot, along = dA, fA, aA
			moveA = true
		}
	}

	if dist > v.cfg.SnapRadius {
		return false, nil
	}
	// The foot must fall strictly inside the neighbor's extent;
	// projections at or beyond an endpoint are junction cases, not
	// splits.
	if along < epsilon || along > n.Length()-epsilon {
		return false, nil
	}

	if moveA {
		c.A = foot
	} else {
		unfuseForward(c)
		c.B = foot
	}
	c.Split = true

	if MinAngleDeg(c.Dir(), n.Dir()) < v.cfg.MinIntersectionDeg {
		return true, nil
	}
	return false, v.splitNeighbor(n, foot, c)
}

// splitNeighbor splits n at p: n is shortened to end at p and a new
// segment covering the far portion inherits n's former forward links.
// The candidate endpoint already moved onto p is cross-linked into the
// junction. Returns the far portion, or nil when p coincides with one
// of n's endpoints (no split needed, only linking).
func (v *validator) splitNeighbor(n *Segment, p Point, c *Segment) *Segment {
	if samePoint(p, n.A) || samePoint(p, n.B) {
		linkAt(c, n, p)
		return nil
	}

	far := &Segment{
		A:         p,
		B:         n.B,
		Type:      n.Type,
		Width:     n.Width,
		Elevation: n.Elevation,
		Priority:  n.Priority,
		Split:     true,
	}
	far.Forward = append([]*Segment(nil), n.Forward...)
	for _, f := range far.Forward {
		f.replaceLink(n, far)
	}

	n.B = p
	n.Forward = nil
	n.Split = true

	linkAt(n, far, p)
	linkAt(c, n, p)
	linkAt(c, far, p)
	return far
}
