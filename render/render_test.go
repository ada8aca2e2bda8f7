package render_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/camera"
	"github.com/plus3/hexview/geometry"
	"github.com/plus3/hexview/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in       string
		expected render.Color
	}{
		{"#ff0000", render.Color{R: 255, A: 255}},
		{"00ff7f", render.Color{G: 255, B: 127, A: 255}},
		{"#abc", render.Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 255}},
		{"  #FFFFFF ", render.Color{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := render.ParseHexColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}

	for _, bad := range []string{"", "#12", "#ggg", "#1234567", "red"} {
		_, err := render.ParseHexColor(bad)
		assert.ErrorIs(t, err, render.ErrInvalidColor, bad)
	}

	assert.Equal(t, "#00ff7f", render.HexString(render.MustParseHexColor("#00FF7F")))
	assert.Panics(t, func() { render.MustParseHexColor("nope") })
}

func TestInstancedMesh(t *testing.T) {
	base := render.Color{R: 255, A: 255}
	mesh := render.NewInstancedMesh(geometry.HexPlane(1), 3, base)

	assert.Equal(t, 3, mesh.Count())
	assert.Equal(t, mgl64.Ident4(), mesh.MatrixAt(2))
	assert.Equal(t, base, mesh.ColorAt(0))

	m := mgl64.Translate3D(1, 2, 3)
	mesh.SetMatrixAt(1, m)
	assert.Equal(t, m, mesh.MatrixAt(1))

	mesh.SetColorAt(2, render.Color{B: 1})
	assert.Equal(t, render.Color{B: 1}, mesh.ColorAt(2))

	assert.Panics(t, func() { mesh.SetMatrixAt(3, m) })
	assert.Panics(t, func() { mesh.SetMatrixAt(-1, m) })
	assert.Panics(t, func() { mesh.SetColorAt(3, base) })

	mesh.Dispose()
	assert.True(t, mesh.Disposed())
	assert.Equal(t, 0, mesh.Count())
}

func TestScene(t *testing.T) {
	scene := render.NewScene(render.Color{A: 255})
	a := render.NewInstancedMesh(geometry.HexPlane(1), 1, render.Color{})
	b := render.NewInstancedMesh(geometry.HexPlane(1), 1, render.Color{})

	scene.Add(a)
	scene.Add(a)
	scene.Add(b)
	assert.Equal(t, []*render.InstancedMesh{a, b}, scene.Meshes())

	assert.True(t, scene.Remove(a))
	assert.False(t, scene.Remove(a))
	assert.Equal(t, []*render.InstancedMesh{b}, scene.Meshes())

	surface := render.NewSurface(geometry.NewBuilder(1, 1, mgl64.Vec3{}, render.Color{}), 0.5)
	scene.AddSurface(surface)
	scene.AddSurface(surface)
	assert.Len(t, scene.Surfaces(), 1)
	assert.True(t, scene.RemoveSurface(surface))
	assert.Empty(t, scene.Surfaces())
}

func topDownCamera() *camera.Orthographic {
	cam := camera.NewOrthographic(10, 1, 0.1, 100)
	cam.SetPosition(mgl64.Vec3{0, 0, 10})
	cam.LookAt(mgl64.Vec3{})
	cam.UpdateProjectionMatrix()
	return cam
}

func TestProjectorSegments(t *testing.T) {
	scene := render.NewScene(render.Color{})
	mesh := render.NewInstancedMesh(geometry.HexPlane(1), 2, render.Color{R: 1})
	mesh.SetMatrixAt(1, mgl64.Translate3D(2.5, 0, 0))
	scene.Add(mesh)

	disposed := render.NewInstancedMesh(geometry.HexPlane(1), 5, render.Color{})
	disposed.Dispose()
	scene.Add(disposed)

	projector := render.Projector{Width: 100, Height: 100}
	var segments []render.Segment
	for s := range projector.Segments(scene, topDownCamera()) {
		segments = append(segments, s)
	}
	require.Len(t, segments, 24)

	// the first spoke of the first instance starts at the screen center
	assert.InDelta(t, 50, segments[0].From.X(), 1e-9)
	assert.InDelta(t, 50, segments[0].From.Y(), 1e-9)
	// the second instance is shifted a quarter of the view to the right
	assert.InDelta(t, 75, segments[12].From.X(), 1e-9)
	assert.Equal(t, render.Color{R: 1}, segments[12].Color)
}

func TestCountingRenderer(t *testing.T) {
	scene := render.NewScene(render.Color{})
	scene.Add(render.NewInstancedMesh(geometry.HexPlane(1), 3, render.Color{}))
	scene.AddSurface(render.NewSurface(geometry.NewBuilder(1, 1, mgl64.Vec3{}, render.Color{}), 1))

	r := &render.CountingRenderer{Projector: render.Projector{Width: 64, Height: 64}}
	var renderer render.Renderer = r
	require.NoError(t, renderer.Render(scene, topDownCamera()))
	assert.Equal(t, 1, r.Frames)
	assert.Equal(t, 36, r.Segments)
	assert.Equal(t, 7*geometry.HexTriangleCount, r.Triangles)

	r.Err = errors.New("device lost")
	assert.Error(t, renderer.Render(scene, topDownCamera()))
	assert.Equal(t, 1, r.Frames)
}

func TestRendererFunc(t *testing.T) {
	called := false
	var r render.Renderer = render.RendererFunc(func(*render.Scene, *camera.Orthographic) error {
		called = true
		return nil
	})
	require.NoError(t, r.Render(nil, nil))
	assert.True(t, called)
}
