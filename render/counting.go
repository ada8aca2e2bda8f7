package render

import "github.com/plus3/hexview/camera"

// CountingRenderer projects the scene without drawing it and counts the
// work. Headless runs and tests use it in place of a real backend.
type CountingRenderer struct {
	Projector

	Frames    int
	Segments  int
	Triangles int

	// Err, when set, is returned from every Render call
	Err error
}

func (r *CountingRenderer) Render(scene *Scene, cam *camera.Orthographic) error {
	if r.Err != nil {
		return r.Err
	}

	r.Frames++
	for range r.Projector.Segments(scene, cam) {
		r.Segments++
	}
	for range r.Projector.Triangles(scene, cam) {
		r.Triangles++
	}
	return nil
}
