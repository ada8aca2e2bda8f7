package config

import (
	"github.com/pkg/errors"
	"github.com/plus3/hexview/render"
	"go.uber.org/zap/zapcore"
)

// Validate checks ranges and colour strings
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive"},
		{c.Window.TPS > 0, "window.tps must be positive"},
		{c.Grid.Radius >= 0, "grid.radius must not be negative"},
		{c.Grid.Radius <= c.Grid.MaxRadius, "grid.radius must not exceed grid.max_radius"},
		{c.Grid.HexSize > 0, "grid.hex_size must be positive"},
		{c.Grid.TileSize > 0, "grid.tile_size must be positive"},
		{c.Grid.FillOpacity >= 0 && c.Grid.FillOpacity <= 1, "grid.fill_opacity must be within [0,1]"},
		{c.Camera.ViewSize > 0, "camera.view_size must be positive"},
		{c.Camera.Near < c.Camera.Far, "camera.near must be less than camera.far"},
		{c.Camera.Zoom > 0, "camera.zoom must be positive"},
		{c.Camera.ZoomMin > 0 && c.Camera.ZoomMin <= c.Camera.ZoomMax, "camera zoom bounds must satisfy 0 < min <= max"},
		{c.Camera.ViewSize >= c.Camera.ZoomMin && c.Camera.ViewSize <= c.Camera.ZoomMax, "camera.view_size must be within [zoom_min, zoom_max]"},
		{c.Camera.OrbitMinDegrees <= c.Camera.OrbitMaxDegrees, "camera orbit bounds must satisfy min <= max"},
		{c.Camera.OrbitSensitivity >= 0, "camera.orbit_sensitivity must not be negative"},
		{c.Camera.PanSpeed >= 0, "camera.pan_speed must not be negative"},
	}
	for _, check := range checks {
		if !check.ok {
			return errors.Wrap(ErrInvalid, check.msg)
		}
	}

	colors := [][2]string{
		{"grid.color", c.Grid.Color},
		{"grid.hover_color", c.Grid.HoverColor},
		{"grid.fill_color", c.Grid.FillColor},
		{"grid.background", c.Grid.Background},
	}
	for _, field := range colors {
		if _, err := render.ParseHexColor(field[1]); err != nil {
			return errors.Wrapf(ErrInvalid, "%s: %v", field[0], err)
		}
	}

	switch c.Input.OrbitButton {
	case "left", "middle", "right":
	default:
		return errors.Wrapf(ErrInvalid, "input.orbit_button %q", c.Input.OrbitButton)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "log.level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.Wrapf(ErrInvalid, "log.format %q", c.Log.Format)
	}

	return nil
}
