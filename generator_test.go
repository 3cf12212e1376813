package citygrow

import (
	"testing"
)

func TestTwoOpposingRoots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSegments = 2
	cfg.HighwayBranchChance = 0
	cfg.StreetBranchChance = 0

	gen, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	city := gen.Generate()

	if len(city.Segments) != 2 {
		t.Fatalf("got %d segments, want exactly 2", len(city.Segments))
	}
	east, west := city.Segments[0], city.Segments[1]
	center := cfg.Bounds.Center()

	for _, s := range city.Segments {
		if s.Type != Highway {
			t.Errorf("root type = %v, want Highway", s.Type)
		}
		if s.Split {
			t.Error("root marked Split, want unsplit")
		}
		if s.A != center {
			t.Errorf("root start = %v, want city center %v", s.A, center)
		}
		if len(s.Forward) != 0 {
			t.Errorf("root Forward = %d links, want 0 after queue drain", len(s.Forward))
		}
	}
	if !hasLink(east.Backward, west) || !hasLink(west.Backward, east) {
		t.Error("roots do not cross-reference each other at the origin")
	}
	if got := east.B.Sub(center); !samePoint(got, Pt(cfg.Highway.Length, 0)) {
		t.Errorf("east root extent = %v, want +x by %v", got, cfg.Highway.Length)
	}
	if got := west.B.Sub(center); !samePoint(got, Pt(-cfg.Highway.Length, 0)) {
		t.Errorf("west root extent = %v, want -x by %v", got, cfg.Highway.Length)
	}
}

func TestBudgetStopsGrowth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSegments = 10
	cfg.HighwayBranchChance = 0
	cfg.StreetBranchChance = 0

	gen, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	city := gen.Generate()

	// Highways continue unconditionally, so only the budget stops
	// this run.
	if len(city.Segments) != cfg.MaxSegments {
		t.Errorf("got %d segments, want budget of %d", len(city.Segments), cfg.MaxSegments)
	}
	if got := len(city.Index.Retrieve(cfg.Bounds)); got != cfg.MaxSegments {
		t.Errorf("index holds %d segments, want %d", got, cfg.MaxSegments)
	}
}

func TestBoundsRejectionCleansLinks(t *testing.T) {
	cfg := DefaultConfig()
	// Room for the two roots and nothing more: every continuation
	// escapes the city bounds and is rejected.
	cfg.Bounds = NewRect(
		Pt(-cfg.Highway.Length-1, -50),
		Pt(cfg.Highway.Length+1, 50),
	)
	cfg.MaxSegments = 100
	cfg.HighwayBranchChance = 0

	gen, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	city := gen.Generate()

	if len(city.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(city.Segments))
	}
	accepted := make(map[*Segment]struct{}, len(city.Segments))
	for _, s := range city.Segments {
		accepted[s] = struct{}{}
	}
	for _, s := range city.Segments {
		for _, l := range append(s.Forward, s.Backward...) {
			if _, ok := accepted[l]; !ok {
				t.Errorf("segment at %v links rejected segment at %v", s.A, l.A)
			}
		}
	}
}

func TestGeneratorLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSegments = 5
	gen, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if gen.State() != StateIdle {
		t.Errorf("State() = %v before run, want idle", gen.State())
	}
	if gen.Generate() == nil {
		t.Fatal("Generate() = nil on first run")
	}
	if gen.State() != StateDone {
		t.Errorf("State() = %v after run, want done", gen.State())
	}
	if gen.Iterations() == 0 {
		t.Error("Iterations() = 0 after run")
	}
	if gen.Generate() != nil {
		t.Error("Generate() on spent generator = city, want nil")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() *City {
		cfg := DefaultConfig()
		cfg.MaxSegments = 150
		cfg.Seed = 99
		gen, err := New(cfg, radialTestField{center: cfg.Bounds.Center(), radius: 2000})
		if err != nil {
			t.Fatal(err)
		}
		return gen.Generate()
	}

	a, b := run(), run()
	if len(a.Segments) != len(b.Segments) {
		t.Fatalf("runs produced %d and %d segments", len(a.Segments), len(b.Segments))
	}
	for i := range a.Segments {
		sa, sb := a.Segments[i], b.Segments[i]
		if sa.A != sb.A || sa.B != sb.B || sa.Type != sb.Type || sa.Priority != sb.Priority {
			t.Fatalf("segment %d differs: %+v vs %+v", i, *sa, *sb)
		}
	}
}

func TestNetworkInvariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSegments = 250
	cfg.Seed = 7
	gen, err := New(cfg, radialTestField{center: cfg.Bounds.Center(), radius: 2000})
	if err != nil {
		t.Fatal(err)
	}
	city := gen.Generate()
	if len(city.Segments) < 50 {
		t.Fatalf("run too small to be meaningful: %d segments", len(city.Segments))
	}

	accepted := make(map[*Segment]struct{}, len(city.Segments))
	for _, s := range city.Segments {
		accepted[s] = struct{}{}
	}

	for i, s := range city.Segments {
		if !cfg.Bounds.ContainsRect(s.Bounds()) {
			t.Errorf("segment %d escapes city bounds: %v -> %v", i, s.A, s.B)
		}

		// No two accepted interiors may overlap.
		for _, o := range city.Segments[i+1:] {
			if ix := SegmentIntersection(s.A, s.B, o.A, o.B); ix.Kind == IntersectOverlap {
				t.Errorf("overlapping segments: %v->%v and %v->%v", s.A, s.B, o.A, o.B)
			}
		}

		// Adjacency must be symmetric, reference only accepted
		// segments, and meet at bit-identical coordinates.
		for _, l := range s.Forward {
			checkAdjacent(t, accepted, s, l, s.B)
		}
		for _, l := range s.Backward {
			checkAdjacent(t, accepted, s, l, s.A)
		}
	}

	// The index and the accepted list must agree exactly.
	indexed := city.Index.Retrieve(cfg.Bounds)
	if len(indexed) != len(city.Segments) {
		t.Errorf("index holds %d segments, accepted list %d", len(indexed), len(city.Segments))
	}
	for _, s := range indexed {
		if _, ok := accepted[s]; !ok {
			t.Error("index holds a segment missing from the accepted list")
		}
	}
}

func checkAdjacent(t *testing.T, accepted map[*Segment]struct{}, s, l *Segment, junction Point) {
	t.Helper()
	if _, ok := accepted[l]; !ok {
		t.Errorf("link from %v references non-accepted segment", s.A)
		return
	}
	if l.A != junction && l.B != junction {
		t.Errorf("junction %v not bit-identical on linked segment %v -> %v", junction, l.A, l.B)
	}
	if !hasLink(l.Forward, s) && !hasLink(l.Backward, s) {
		t.Errorf("asymmetric adjacency at %v", junction)
	}
}

// radialTestField is a local radial falloff so core tests stay free of
// the density subpackage.
type radialTestField struct {
	center Point
	radius float64
}

func (f radialTestField) WeightAt(p Point) float64 {
	d := p.Distance(f.center)
	if d >= f.radius {
		return 0
	}
	return 1 - d/f.radius
}
