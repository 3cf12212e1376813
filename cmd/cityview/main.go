// Command cityview grows a road network and displays it in an
// interactive window. Drag with the right mouse button to pan, scroll
// to zoom. The network itself is fixed once grown.
package main

import (
	"flag"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/urbangen/citygrow"
	"github.com/urbangen/citygrow/density"
)

const (
	windowWidth  = 1280
	windowHeight = 900
)

func main() {
	var (
		size     = flag.Float64("size", 4000, "city side length in world units")
		segments = flag.Int("segments", 600, "maximum road segments")
		seed     = flag.Uint64("seed", 1, "random seed")
	)
	flag.Parse()

	cfg := citygrow.DefaultConfig()
	cfg.Bounds = citygrow.NewRect(
		citygrow.Pt(-*size/2, -*size/2),
		citygrow.Pt(*size/2, *size/2),
	)
	cfg.MaxSegments = *segments
	cfg.Seed = *seed

	field := density.NewRadial(cfg.Bounds.Center(), 1, cfg.Bounds.Width()/2)
	gen, err := citygrow.New(cfg, field)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	city := gen.Generate()
	log.Printf("%s: %d segments", city.Name, len(city.Segments))

	rl.InitWindow(windowWidth, windowHeight, "cityview - "+city.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := rl.Camera2D{
		Offset: rl.NewVector2(windowWidth/2, windowHeight/2),
		Zoom:   float32(windowHeight / cfg.Bounds.Height() * 0.9),
	}

	for !rl.WindowShouldClose() {
		updateCamera(&camera)

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))
		rl.BeginMode2D(camera)
		drawCity(city)
		rl.EndMode2D()
		rl.DrawFPS(10, 10)
		rl.EndDrawing()
	}
}

func updateCamera(camera *rl.Camera2D) {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		camera.Zoom *= 1 + wheel*0.1
		if camera.Zoom < 0.01 {
			camera.Zoom = 0.01
		}
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		camera.Target.X -= delta.X / camera.Zoom
		camera.Target.Y -= delta.Y / camera.Zoom
	}
}

func drawCity(city *citygrow.City) {
	streetColor := rl.NewColor(200, 200, 205, 255)
	highwayColor := rl.NewColor(235, 200, 90, 255)

	// Streets first so highways stay visible at junctions.
	for _, seg := range city.Segments {
		if seg.Type == citygrow.Street {
			drawSegment(seg, streetColor)
		}
	}
	for _, seg := range city.Segments {
		if seg.Type == citygrow.Highway {
			drawSegment(seg, highwayColor)
		}
	}
}

func drawSegment(seg *citygrow.Segment, col rl.Color) {
	a := rl.NewVector2(float32(seg.A.X), float32(-seg.A.Y))
	b := rl.NewVector2(float32(seg.B.X), float32(-seg.B.Y))
	rl.DrawLineEx(a, b, float32(seg.Width), col)
}
