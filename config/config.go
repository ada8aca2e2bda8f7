// Package config loads the viewer configuration. Every field has an
// explicit default from Default; YAML files only override what they name.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window Window `yaml:"window"`
	Grid   Grid   `yaml:"grid"`
	Camera Camera `yaml:"camera"`
	Input  Input  `yaml:"input"`
	Log    Log    `yaml:"log"`
	Debug  Debug  `yaml:"debug"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

type Grid struct {
	Radius int `yaml:"radius"`
	// MaxRadius bounds radius changes made at runtime
	MaxRadius int `yaml:"max_radius"`
	// HexSize is the distance between a hex center and its corners in world units
	HexSize float64 `yaml:"hex_size"`
	// TileSize is the drawn template size; slightly under HexSize leaves gaps
	TileSize    float64 `yaml:"tile_size"`
	Color       string  `yaml:"color"`
	HoverColor  string  `yaml:"hover_color"`
	FillColor   string  `yaml:"fill_color"`
	FillOpacity float64 `yaml:"fill_opacity"`
	Background  string  `yaml:"background"`
}

type Camera struct {
	ViewSize float64    `yaml:"view_size"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Zoom     float64    `yaml:"zoom"`
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`

	ZoomStep float64 `yaml:"zoom_step"`
	ZoomMin  float64 `yaml:"zoom_min"`
	ZoomMax  float64 `yaml:"zoom_max"`

	OrbitMinDegrees  float64 `yaml:"orbit_min_degrees"`
	OrbitMaxDegrees  float64 `yaml:"orbit_max_degrees"`
	OrbitSensitivity float64 `yaml:"orbit_sensitivity"`

	// PanSpeed is in world units per second
	PanSpeed float64 `yaml:"pan_speed"`
}

type Input struct {
	// OrbitButton is one of "left", "middle" or "right"
	OrbitButton string `yaml:"orbit_button"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Debug struct {
	Overlay bool `yaml:"overlay"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Window: Window{
			Title:  "hexview",
			Width:  1280,
			Height: 720,
			TPS:    60,
		},
		Grid: Grid{
			Radius:      5,
			MaxRadius:   64,
			HexSize:     1,
			TileSize:    0.98,
			Color:       "#ff0000",
			HoverColor:  "#ffff00",
			FillColor:   "#202020",
			FillOpacity: 0.6,
			Background:  "#000000",
		},
		Camera: Camera{
			ViewSize:         20,
			Near:             0.1,
			Far:              2000,
			Zoom:             1,
			Position:         [3]float64{5, 5, 10},
			Target:           [3]float64{0, 0, 0},
			ZoomStep:         0.01,
			ZoomMin:          20,
			ZoomMax:          25,
			OrbitMinDegrees:  30,
			OrbitMaxDegrees:  60,
			OrbitSensitivity: 0.0075,
			PanSpeed:         10,
		},
		Input: Input{
			OrbitButton: "middle",
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults and validates the result.
// An empty document yields the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
