package citygrow

import (
	"container/heap"
	"math/rand/v2"

	"github.com/google/uuid"
)

// State tracks a Generator through its lifecycle.
type State int

const (
	// StateIdle means Generate has not run yet.
	StateIdle State = iota
	// StateRunning means the growth loop is draining the worklist.
	StateRunning
	// StateDone means the run finished; the Generator is spent.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// City is the result of one growth run: the accepted road graph plus
// the spatial index built alongside it. Rendering and view-building
// collaborators consume it unchanged.
type City struct {
	ID       uuid.UUID
	Name     string
	Bounds   Rect
	Segments []*Segment
	Index    *Quadtree
	Density  DensityField
}

// Generator grows one road network. It exclusively owns its worklist,
// quadtree and accepted-segment list for the duration of the run; a
// Generator is single-use and not safe for concurrent use.
type Generator struct {
	cfg        Config
	field      DensityField
	rng        *rand.Rand
	state      State
	iterations int
}

// New creates a Generator for the given configuration and density
// field. The configuration is validated up front; a nil field is
// treated as zero density everywhere.
func New(cfg Config, field DensityField) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if field == nil {
		field = zeroField{}
	}
	return &Generator{
		cfg:   cfg,
		field: field,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
	}, nil
}

// State returns the generator's lifecycle state.
func (g *Generator) State() State {
	return g.state
}

// Iterations returns how many worklist entries the growth loop has
// evaluated, accepted or not. Host wrappers can poll it to impose an
// external deadline between runs.
func (g *Generator) Iterations() int {
	return g.iterations
}

// Generate runs the growth loop to completion and returns the city.
// It seeds two opposing highway roots at the center of the city
// bounds, then repeatedly pops the lowest-priority candidate, validates
// it against the network, and on acceptance inserts it and enqueues its
// proposed successors. The loop stops when the worklist empties or the
// segment budget is reached.
//
// A Generator is single-use: calling Generate again returns nil.
func (g *Generator) Generate() *City {
	log := Logger()
	if g.state != StateIdle {
		log.Warn("generator reused after completed run", "state", g.state.String())
		return nil
	}
	g.state = StateRunning

	city := &City{
		ID:      uuid.New(),
		Name:    g.cfg.Name,
		Bounds:  g.cfg.Bounds,
		Index:   NewQuadtree(g.cfg.Bounds, g.cfg.QuadtreeCapacity, g.cfg.QuadtreeDepth),
		Density: g.field,
	}
	v := &validator{cfg: g.cfg, index: city.Index}
	p := &proposer{cfg: g.cfg, field: g.field, rng: g.rng}

	queue := &workQueue{}
	for _, root := range g.seedRoots() {
		heap.Push(queue, root)
	}

	log.Info("growth started", "city", city.Name, "budget", g.cfg.MaxSegments)

	// The accepted-count bound already guarantees termination; the
	// iteration cap guards against pathological rule configurations.
	maxIterations := 16*g.cfg.MaxSegments + 1024
	for queue.Len() > 0 && len(city.Segments) < g.cfg.MaxSegments && g.iterations < maxIterations {
		g.iterations++
		c := heap.Pop(queue).(*Segment)

		ok, splits := v.validate(c)
		if !ok {
			c.detach()
			continue
		}

		g.accept(city, c)
		for _, s := range splits {
			g.accept(city, s)
		}
		for _, next := range p.propose(c) {
			heap.Push(queue, next)
		}
	}

	// Candidates still queued at the budget cutoff keep tentative
	// links into the accepted graph; strip them so the result only
	// references accepted segments.
	for queue.Len() > 0 {
		heap.Pop(queue).(*Segment).detach()
	}

	g.state = StateDone
	log.Info("growth finished",
		"city", city.Name,
		"segments", len(city.Segments),
		"iterations", g.iterations)
	return city
}

// accept makes a segment permanent: it joins the accepted list and the
// spatial index together, keeping the two in lockstep.
func (g *Generator) accept(city *City, s *Segment) {
	city.Segments = append(city.Segments, s)
	city.Index.Insert(s)
}

// seedRoots builds the two opposing highway roots growing east and
// west from the city center, pre-linked at their shared start point.
func (g *Generator) seedRoots() []*Segment {
	center := g.cfg.Bounds.Center()
	rule := g.cfg.Highway
	east := &Segment{
		A:         center,
		B:         center.Add(Pt(rule.Length, 0)),
		Type:      Highway,
		Width:     rule.Width,
		Elevation: rule.Elevation,
	}
	west := &Segment{
		A:         center,
		B:         center.Add(Pt(-rule.Length, 0)),
		Type:      Highway,
		Width:     rule.Width,
		Elevation: rule.Elevation,
	}
	linkAt(east, west, center)
	return []*Segment{east, west}
}

// workQueue is a binary heap ordering candidates by ascending priority.
// Ties break on insertion order so runs with equal seeds replay the
// exact same pop sequence.
type workQueue struct {
	items   []workItem
	nextSeq int
}

type workItem struct {
	seg *Segment
	seq int
}

func (q *workQueue) Len() int { return len(q.items) }

func (q *workQueue) Less(i, j int) bool {
	if q.items[i].seg.Priority != q.items[j].seg.Priority {
		return q.items[i].seg.Priority < q.items[j].seg.Priority
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *workQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

func (q *workQueue) Push(x any) {
	q.items = append(q.items, workItem{seg: x.(*Segment), seq: q.nextSeq})
	q.nextSeq++
}

func (q *workQueue) Pop() any {
	last := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return last.seg
}
