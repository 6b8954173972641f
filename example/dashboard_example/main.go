package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joeydtaylor/electrode/pkg/builder"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, err := os.MkdirTemp("", "electrode-dashboard-")
	if err != nil {
		fmt.Printf("Error creating workspace: %v\n", err)
		return
	}
	defer os.RemoveAll(root)

	raw := filepath.Join(root, "raw")
	if err := os.MkdirAll(raw, 0o755); err != nil {
		fmt.Printf("Error creating raw dir: %v\n", err)
		return
	}
	for ch := 0; ch < 12; ch++ {
		data := make([]int, 8000)
		for i := range data {
			data[i] = int(3000 * math.Sin(float64(i)*float64(1+ch%4)/200))
		}
		if err := builder.WriteWAV(filepath.Join(raw, fmt.Sprintf("ch%02d.wav", ch)), 8000, 1, data); err != nil {
			fmt.Printf("Error writing channel %d: %v\n", ch, err)
			return
		}
	}

	cfg := builder.DefaultConfig()
	cfg.Data.RawDir = raw
	cfg.Data.MaxSamples = 0
	cfg.Data.SampleRate = 0
	cfg.Storage.Dir = filepath.Join(root, "artifacts")
	cfg.Preprocess.Progress = false
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		return
	}

	logger, err := builder.NewLoggerFromConfig(cfg)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		return
	}
	defer logger.Flush()

	meter := builder.NewMeter(builder.MeterWithOutput(nil))
	store, err := builder.OpenStore(ctx, cfg, logger, meter)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		return
	}
	pipeline, err := builder.NewPipelineFromConfig(cfg, store, logger, meter)
	if err != nil {
		fmt.Printf("Error building pipeline: %v\n", err)
		return
	}
	if _, err := pipeline.Run(ctx); err != nil {
		fmt.Printf("Pipeline failed: %v\n", err)
		return
	}

	bundle, err := builder.LoadBundle(ctx, store, 0)
	if err != nil {
		fmt.Printf("Error loading artifacts: %v\n", err)
		return
	}
	vc, err := builder.NewViewContext(bundle)
	if err != nil {
		fmt.Printf("Error preparing views: %v\n", err)
		return
	}

	server := builder.NewDashboard(vc,
		builder.DashboardWithLogger(logger),
		builder.DashboardWithAddress(cfg.Dashboard.Address),
		builder.DashboardWithTitle("Synthetic Probe"),
	)
	fmt.Printf("Dashboard on http://%s (Ctrl-C to stop)\n", server.Address())
	if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
		fmt.Printf("Server error: %v\n", err)
	}
}
