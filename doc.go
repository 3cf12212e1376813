// Package citygrow procedurally grows road networks for synthetic cities.
//
// # Overview
//
// citygrow implements priority-driven road-network growth: starting from a
// seed intersection, the generator expands outward along a worklist of
// candidate segments, guided by a population-density field. Each candidate
// is checked against the existing network (illegal crossings are rejected,
// near misses are snapped, interior crossings split the crossed road), and
// accepted segments propose their own successors. The result is a connected
// planar graph of road segments with proper intersections.
//
// # Quick Start
//
//	import (
//	    "github.com/urbangen/citygrow"
//	    "github.com/urbangen/citygrow/density"
//	)
//
//	cfg := citygrow.DefaultConfig()
//	cfg.Seed = 42
//
//	field := density.NewRadial(citygrow.Pt(0, 0), 1.0, 2000)
//
//	gen, err := citygrow.New(cfg, field)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	city := gen.Generate()
//
//	for _, seg := range city.Segments {
//	    fmt.Println(seg.A, "->", seg.B)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Generator, City, Segment, Config, DensityField
//   - Geometry: Point, Rect, segment intersection and projection helpers
//   - Spatial index: Quadtree, queried and mutated during growth
//   - Subpackages: density (field implementations), render (PNG map output)
//
// Growth is a one-shot batch computation: a Generator owns its worklist,
// quadtree and accepted-segment list for the duration of a single run, and
// a fixed seed yields an identical network every time.
package citygrow
