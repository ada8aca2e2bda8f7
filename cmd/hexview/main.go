// Command hexview opens an interactive window showing a hexagonal grid.
// Scroll to zoom, drag with the orbit button to orbit, arrows or WASD to pan,
// F3 toggles the debug overlay, Escape quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plus3/hexview/backend/ebitenview"
	"github.com/plus3/hexview/config"
	"github.com/plus3/hexview/debugui"
	debugui_ebiten "github.com/plus3/hexview/debugui/ebiten"
	"github.com/plus3/hexview/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file.")
	radius := flag.Int("radius", -1, "Grid radius; overrides the configuration when >= 0.")
	logLevel := flag.String("log-level", "", "Log level; overrides the configuration when set.")
	debug := flag.Bool("debug", false, "Show the debug overlay at startup.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexview:", err)
		os.Exit(1)
	}
	if *radius >= 0 {
		cfg.Grid.Radius = *radius
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *debug {
		cfg.Debug.Overlay = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "hexview:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexview:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	game, err := ebitenview.NewGame(cfg, logger)
	if err != nil {
		logger.Error("setup failed", zap.Error(err))
		os.Exit(1)
	}

	ui := debugui.New(game.World, debugui.DefaultHistoryFrames)
	overlay := debugui_ebiten.NewOverlay(ui, cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, logger)
	game.Overlay = overlay

	if err := ebitenview.Run(game, cfg.Window); err != nil {
		logger.Error("viewer stopped", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed", zap.Uint64("frames", game.World.Scheduler.Frame()))
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
