package world_test

import (
	"fmt"

	"github.com/plus3/hexview/config"
	"github.com/plus3/hexview/render"
	"github.com/plus3/hexview/world"
)

func ExampleWorld() {
	cfg := config.Default()
	cfg.Grid.Radius = 3

	renderer := &render.CountingRenderer{Projector: render.Projector{Width: 640, Height: 480}}
	w, err := world.New(cfg, renderer, nil)
	if err != nil {
		panic(err)
	}

	for range 3 {
		if err := w.Step(1.0 / 60); err != nil {
			panic(err)
		}
	}

	fmt.Println("tiles:", w.GridMesh().Instances.Count())
	fmt.Println("frames drawn:", renderer.Frames)
	fmt.Println("edges per frame:", renderer.Segments/renderer.Frames)
	// Output:
	// tiles: 37
	// frames drawn: 3
	// edges per frame: 444
}
