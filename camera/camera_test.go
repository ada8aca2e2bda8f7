package camera_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/hexview/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFrustumFollowsAspect(t *testing.T) {
	viewSize, a1, a2 := 20.0, 4.0/3.0, 16.0/9.0
	c := camera.NewOrthographic(viewSize, a1, 0.1, 2000)
	assert.Equal(t, viewSize*a1, c.Right-c.Left)

	c.SetFrustum(viewSize, a2)
	assert.Equal(t, viewSize*a2, c.Right-c.Left)
	assert.Equal(t, viewSize*a2, c.Width())
	assert.Equal(t, viewSize, c.Top-c.Bottom)
	assert.Equal(t, viewSize, c.Height())
	assert.Equal(t, -c.Left, c.Right)
	assert.Equal(t, -c.Bottom, c.Top)
}

func TestProjectionMapsFrustumToClipCube(t *testing.T) {
	c := camera.NewOrthographic(10, 2, 1, 101)
	c.SetPosition(mgl64.Vec3{0, 0, 51})
	c.LookAt(mgl64.Vec3{})

	// the camera looks straight down, so +Y is screen up
	right := c.Project(mgl64.Vec3{10, 0, 0})
	assert.InDelta(t, 1, right.X(), 1e-9)
	top := c.Project(mgl64.Vec3{0, 5, 0})
	assert.InDelta(t, 1, top.Y(), 1e-9)
	center := c.Project(mgl64.Vec3{})
	assert.InDelta(t, 0, center.X(), 1e-9)
	assert.InDelta(t, 0, center.Y(), 1e-9)
	assert.InDelta(t, 0, center.Z(), 1e-9)
}

func TestZoomShrinksVisibleArea(t *testing.T) {
	c := camera.NewOrthographic(10, 1, 0.1, 100)
	c.SetPosition(mgl64.Vec3{0, 0, 10})
	c.LookAt(mgl64.Vec3{})

	c.SetZoom(2)
	c.UpdateProjectionMatrix()
	p := c.Project(mgl64.Vec3{2.5, 0, 0})
	assert.InDelta(t, 1, p.X(), 1e-9)

	// zoom does not alter the derived frustum
	assert.Equal(t, 10.0, c.Width())

	c.SetZoom(0)
	assert.Equal(t, 2.0, c.Zoom)
}

func TestRayThroughCenterHitsTarget(t *testing.T) {
	tests := []struct {
		name     string
		position mgl64.Vec3
		target   mgl64.Vec3
	}{
		{"straight down", mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}},
		{"oblique", mgl64.Vec3{5, 5, 10}, mgl64.Vec3{}},
		{"offset target", mgl64.Vec3{8, 2, 6}, mgl64.Vec3{3, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := camera.NewOrthographic(20, 1.5, 0.1, 2000)
			c.SetPosition(tt.position)
			c.LookAt(tt.target)
			c.UpdateProjectionMatrix()

			ray := c.Ray(mgl64.Vec2{0, 0})
			hit, ok := ray.IntersectPlane(camera.GroundPlane)
			require.True(t, ok)
			assert.InDelta(t, tt.target.X(), hit.X(), 1e-6)
			assert.InDelta(t, tt.target.Y(), hit.Y(), 1e-6)
			assert.InDelta(t, 0, hit.Z(), 1e-9)

			viewDir := tt.target.Sub(tt.position).Normalize()
			assert.InDelta(t, 1, ray.Direction.Dot(viewDir), 1e-9)
		})
	}
}

func TestRayCornersSpanFrustum(t *testing.T) {
	c := camera.NewOrthographic(10, 2, 0.1, 100)
	c.SetPosition(mgl64.Vec3{0, 0, 10})
	c.LookAt(mgl64.Vec3{})

	hit, ok := c.Ray(mgl64.Vec2{1, 1}).IntersectPlane(camera.GroundPlane)
	require.True(t, ok)
	assert.InDelta(t, 10, hit.X(), 1e-6)
	assert.InDelta(t, 5, hit.Y(), 1e-6)
}

func TestIntersectPlane(t *testing.T) {
	t.Run("parallel", func(t *testing.T) {
		ray := camera.Ray{Origin: mgl64.Vec3{0, 0, 1}, Direction: mgl64.Vec3{1, 0, 0}}
		_, ok := ray.IntersectPlane(camera.GroundPlane)
		assert.False(t, ok)
	})

	t.Run("behind", func(t *testing.T) {
		ray := camera.Ray{Origin: mgl64.Vec3{0, 0, 1}, Direction: mgl64.Vec3{0, 0, 1}}
		_, ok := ray.IntersectPlane(camera.GroundPlane)
		assert.False(t, ok)
	})

	t.Run("offset plane", func(t *testing.T) {
		plane := camera.Plane{Normal: mgl64.Vec3{0, 0, 1}, Constant: -2}
		ray := camera.Ray{Origin: mgl64.Vec3{1, 1, 5}, Direction: mgl64.Vec3{0, 0, -1}}
		hit, ok := ray.IntersectPlane(plane)
		require.True(t, ok)
		assert.InDelta(t, 2, hit.Z(), 1e-12)
	})
}

func TestZoomViewSize(t *testing.T) {
	assert.InDelta(t, 21, camera.ZoomViewSize(20, 100, 0.01, 20, 25), 1e-12)

	size := 20.0
	for range 10 {
		size = camera.ZoomViewSize(size, 100, 0.01, 20, 25)
	}
	assert.Equal(t, 25.0, size)

	assert.Equal(t, 20.0, camera.ZoomViewSize(22, -1000, 0.01, 20, 25))
}

func TestClampAngle(t *testing.T) {
	min, max := mgl64.DegToRad(30), mgl64.DegToRad(60)
	assert.Equal(t, min, camera.ClampAngle(0, min, max))
	assert.Equal(t, max, camera.ClampAngle(2, min, max))
	assert.Equal(t, 0.7, camera.ClampAngle(0.7, min, max))
}
