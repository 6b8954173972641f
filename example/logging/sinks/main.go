package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeydtaylor/electrode/pkg/builder"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithDevelopment(true), builder.LoggerWithLevel("debug"))
	defer logger.Flush()

	// Add a file sink
	fileSinkConfig := builder.SinkConfig{
		Type: string(builder.FileSink),
		Config: map[string]interface{}{
			"path": "logs/output.log",
		},
	}
	if err := logger.AddSink("fileSink", fileSinkConfig); err != nil {
		fmt.Printf("Failed to add file sink: %v\n", err)
		return
	}

	// Human readable copy on stderr
	consoleSinkConfig := builder.SinkConfig{
		Type:   string(builder.StderrSink),
		Config: map[string]interface{}{"format": "console"},
	}
	if err := logger.AddSink("consoleSink", consoleSinkConfig); err != nil {
		fmt.Printf("Failed to add console sink: %v\n", err)
		return
	}

	raw, err := os.MkdirTemp("", "electrode-logging-")
	if err != nil {
		fmt.Printf("Failed to create raw dir: %v\n", err)
		return
	}
	defer os.RemoveAll(raw)

	for ch, n := range []int{400, 380, 410} {
		data := make([]int, n)
		for i := range data {
			data[i] = (i * (ch + 1)) % 512
		}
		if err := builder.WriteWAV(filepath.Join(raw, fmt.Sprintf("ch%d.wav", ch)), 1000, 1, data); err != nil {
			fmt.Printf("Failed to write channel %d: %v\n", ch, err)
			return
		}
	}

	// Shorter files are padded; the loader logs each one at debug level.
	loader := builder.NewLoader(
		builder.LoaderWithLogger(logger),
		builder.LoaderWithDirectory(raw),
		builder.LoaderWithMaxSamples(0),
		builder.LoaderWithSampleRate(1000),
	)
	signals, err := loader.Load(ctx)
	if err != nil {
		fmt.Printf("Load failed: %v\n", err)
		return
	}
	fmt.Printf("loaded %d channels x %d samples\n", signals.Channels, signals.Samples)

	sinks, _ := logger.ListSinks()
	fmt.Printf("active sinks: %v\n", sinks)
}
