package citygrow

import "testing"

// newTestValidator builds a validator over an empty index covering the
// configured bounds, plus a helper that accepts segments into it.
func newTestValidator(cfg Config) (*validator, func(...*Segment)) {
	index := NewQuadtree(cfg.Bounds, cfg.QuadtreeCapacity, cfg.QuadtreeDepth)
	v := &validator{cfg: cfg, index: index}
	accept := func(segs ...*Segment) {
		for _, s := range segs {
			index.Insert(s)
		}
	}
	return v, accept
}

func TestValidateRejectsOutOfBounds(t *testing.T) {
	cfg := DefaultConfig()
	v, _ := newTestValidator(cfg)

	c := &Segment{A: Pt(1990, 0), B: Pt(2100, 0), Type: Highway}
	if ok, _ := v.validate(c); ok {
		t.Error("validate(escaping candidate) = true, want false")
	}
}

func TestValidateRejectsDegenerate(t *testing.T) {
	cfg := DefaultConfig()
	v, _ := newTestValidator(cfg)

	c := &Segment{A: Pt(5, 5), B: Pt(5, 5), Type: Street}
	if ok, _ := v.validate(c); ok {
		t.Error("validate(zero-length candidate) = true, want false")
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	accept(&Segment{A: Pt(0, 0), B: Pt(100, 0), Type: Street})
	c := &Segment{A: Pt(50, 0), B: Pt(150, 0), Type: Street}
	if ok, _ := v.validate(c); ok {
		t.Error("validate(collinear overlapping candidate) = true, want false")
	}
}

func TestValidateAcceptsClearCandidate(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	accept(&Segment{A: Pt(0, 0), B: Pt(100, 0), Type: Street})
	c := &Segment{A: Pt(0, 500), B: Pt(100, 500), Type: Street}
	ok, splits := v.validate(c)
	if !ok {
		t.Fatal("validate(clear candidate) = false, want true")
	}
	if len(splits) != 0 {
		t.Errorf("splits = %d, want 0", len(splits))
	}
	if c.Split {
		t.Error("clear candidate marked Split")
	}
}

func TestValidateSplitsCrossedNeighbor(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	n := &Segment{A: Pt(0, -50), B: Pt(0, 50), Type: Street}
	accept(n)

	// Perpendicular crossing close to the neighbor's midpoint.
	c := &Segment{A: Pt(-40, 0), B: Pt(40, 0), Type: Street}
	ok, splits := v.validate(c)
	if !ok {
		t.Fatal("validate(perpendicular crossing) = false, want true")
	}
	if len(splits) != 1 {
		t.Fatalf("splits = %d, want 1", len(splits))
	}
	far := splits[0]

	if !samePoint(c.B, Pt(0, 0)) {
		t.Errorf("candidate end = %v, want shortened to (0, 0)", c.B)
	}
	if !c.Split {
		t.Error("candidate not marked Split")
	}
	if !n.Split || !far.Split {
		t.Errorf("split halves not marked Split: neighbor %v, far %v", n.Split, far.Split)
	}
	if !samePoint(n.A, Pt(0, -50)) || !samePoint(n.B, Pt(0, 0)) {
		t.Errorf("neighbor = %v -> %v, want (0,-50) -> (0,0)", n.A, n.B)
	}
	if !samePoint(far.A, Pt(0, 0)) || !samePoint(far.B, Pt(0, 50)) {
		t.Errorf("far portion = %v -> %v, want (0,0) -> (0,50)", far.A, far.B)
	}

	// All three meet at the split point and must know each other.
	if !hasLink(n.Forward, far) || !hasLink(far.Backward, n) {
		t.Error("split halves not linked to each other")
	}
	if !hasLink(c.Forward, n) || !hasLink(c.Forward, far) {
		t.Error("candidate not linked into the junction")
	}
}

func TestValidateSplitRelinksFarNeighbors(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	n := &Segment{A: Pt(0, -50), B: Pt(0, 50), Type: Street}
	beyond := &Segment{A: Pt(0, 50), B: Pt(0, 120), Type: Street}
	linkAt(n, beyond, Pt(0, 50))
	accept(n, beyond)

	c := &Segment{A: Pt(-40, 0), B: Pt(40, 0), Type: Street}
	ok, splits := v.validate(c)
	if !ok || len(splits) != 1 {
		t.Fatalf("validate = %v with %d splits, want true with 1", ok, len(splits))
	}
	far := splits[0]

	// The far portion takes over the link to the segment beyond the
	// old endpoint; the shortened neighbor gives it up.
	if !hasLink(far.Forward, beyond) || !hasLink(beyond.Backward, far) {
		t.Error("far portion did not inherit the forward link")
	}
	if hasLink(beyond.Backward, n) || hasLink(beyond.Forward, n) {
		t.Error("shortened neighbor still referenced beyond the split point")
	}
}

func TestValidateRejectsShallowCrossing(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	// Roughly 6 degrees off the candidate's direction, below the
	// default 30 degree minimum.
	accept(&Segment{A: Pt(-50, -5), B: Pt(50, 5), Type: Street})
	c := &Segment{A: Pt(-40, 0), B: Pt(40, 0), Type: Street}
	if ok, _ := v.validate(c); ok {
		t.Error("validate(shallow crossing) = true, want false")
	}
}

func TestValidateSnapsToEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	n := &Segment{A: Pt(0, 0), B: Pt(100, 0), Type: Street}
	accept(n)

	c := &Segment{A: Pt(100, 80), B: Pt(105, 5), Type: Street}
	ok, splits := v.validate(c)
	if !ok {
		t.Fatal("validate(snappable candidate) = false, want true")
	}
	if len(splits) != 0 {
		t.Errorf("splits = %d, want 0", len(splits))
	}
	if c.B != n.B {
		t.Errorf("candidate end = %v, want exactly %v", c.B, n.B)
	}
	if !c.Split {
		t.Error("snapped candidate not marked Split")
	}
	if !hasLink(c.Forward, n) || !hasLink(n.Forward, c) {
		t.Error("junction adjacency not symmetric after snap")
	}
}

func TestValidateSnapCrossLinksJunction(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	junction := Pt(100, 0)
	n := &Segment{A: Pt(0, 0), B: junction, Type: Street}
	other := &Segment{A: Pt(100, -90), B: junction, Type: Street}
	linkAt(n, other, junction)
	accept(n, other)

	c := &Segment{A: Pt(180, 60), B: Pt(104, 4), Type: Street}
	ok, _ := v.validate(c)
	if !ok {
		t.Fatal("validate = false, want true")
	}
	if !hasLink(c.Forward, other) || !hasLink(other.Forward, c) {
		t.Error("candidate not cross-linked with existing junction member")
	}
	if !hasLink(c.Forward, n) || !hasLink(n.Forward, c) {
		t.Error("candidate not linked with snap target")
	}
}

func TestValidateRejectsDuplicateLink(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	junction := Pt(100, 0)
	n := &Segment{A: Pt(0, 0), B: junction, Type: Street}
	existing := &Segment{A: Pt(50, 60), B: junction, Type: Street}
	linkAt(n, existing, junction)
	accept(n, existing)

	// Snapping would duplicate existing's endpoint pair.
	c := &Segment{A: Pt(50, 60), B: Pt(102, 3), Type: Street}
	if ok, _ := v.validate(c); ok {
		t.Error("validate(duplicate link candidate) = true, want false")
	}
}

func TestValidateNearMissSplits(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	n := &Segment{A: Pt(0, -100), B: Pt(0, 100), Type: Street}
	accept(n)

	// The candidate stops 10 units short of the neighbor, inside the
	// default snap radius of 18.
	c := &Segment{A: Pt(-80, 0), B: Pt(-10, 0), Type: Street}
	ok, splits := v.validate(c)
	if !ok {
		t.Fatal("validate(near miss) = false, want true")
	}
	if len(splits) != 1 {
		t.Fatalf("splits = %d, want 1", len(splits))
	}
	if !samePoint(c.B, Pt(0, 0)) {
		t.Errorf("candidate end = %v, want projected (0, 0)", c.B)
	}
	if !c.Split || !n.Split {
		t.Errorf("Split flags: candidate %v, neighbor %v, want both true", c.Split, n.Split)
	}
	if !hasLink(c.Forward, n) || !hasLink(c.Forward, splits[0]) {
		t.Error("candidate not linked into the projected junction")
	}
}

func TestValidateRejectsShallowNearMiss(t *testing.T) {
	cfg := DefaultConfig()
	v, accept := newTestValidator(cfg)

	accept(&Segment{A: Pt(-200, 0), B: Pt(200, 0), Type: Street})

	// Nearly parallel, ending 5 units above the neighbor.
	c := &Segment{A: Pt(-80, 5), B: Pt(-10, 5), Type: Street}
	if ok, _ := v.validate(c); ok {
		t.Error("validate(shallow near miss) = true, want false")
	}
}

func hasLink(list []*Segment, target *Segment) bool {
	for _, l := range list {
		if l == target {
			return true
		}
	}
	return false
}
