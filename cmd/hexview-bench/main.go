// Command hexview-bench drives the frame pipeline headless with synthetic
// input and prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/hexview/config"
	"github.com/plus3/hexview/hex"
	"github.com/plus3/hexview/input"
	"github.com/plus3/hexview/logging"
	"github.com/plus3/hexview/render"
	"github.com/plus3/hexview/world"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	radius := flag.Int("radius", 30, "The grid radius.")
	resizeEvery := flag.Int("resize-every", 0, "Alternate the radius between its value and half of it every N frames; 0 disables.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hexview-bench:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.Grid.Radius = *radius
	cfg.Grid.MaxRadius = max(cfg.Grid.MaxRadius, *radius)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexview-bench:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	viewport := input.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height}
	renderer := &render.CountingRenderer{Projector: render.Projector{Width: viewport.Width, Height: viewport.Height}}
	source := newSweepSource(viewport)

	w, err := world.New(cfg, renderer, source, world.WithLogger(logger.Named("world")))
	if err != nil {
		logger.Error("setup failed", zap.Error(err))
		os.Exit(1)
	}

	report := &Report{
		Duration:       *duration,
		Radius:         *radius,
		Tiles:          hex.Count(max(*radius, 0)),
		ResizeEvery:    *resizeEvery,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running frame pipeline", zap.Duration("duration", *duration), zap.Int("radius", *radius))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if *resizeEvery > 0 && report.TotalUpdates > 0 && report.TotalUpdates%int64(*resizeEvery) == 0 {
				if w.Grid().Radius == *radius {
					w.SetRadius(*radius / 2)
				} else {
					w.SetRadius(*radius)
				}
				report.Resizes++
			}

			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := w.Step(deltaTime.Seconds()); err != nil {
				logger.Error("frame failed", zap.Error(err))
				os.Exit(1)
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Stages = w.Scheduler.GetStats().Stages
	report.Storage = w.Storage.CollectStats()
	report.FramesDrawn = renderer.Frames
	report.Segments = renderer.Segments
	report.Triangles = renderer.Triangles
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("frame pipeline finished", zap.Int64("frames", report.TotalUpdates))

	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to generate report", zap.Error(err))
		os.Exit(1)
	}
}
