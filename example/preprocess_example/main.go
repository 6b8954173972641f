package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/joeydtaylor/electrode/pkg/builder"
)

const (
	channels   = 24
	samples    = 20000
	sampleRate = 20000
)

// writeRecording fakes a probe: three groups of channels share a carrier so the
// clustering has something to find.
func writeRecording(dir string) error {
	rng := rand.New(rand.NewSource(7))
	for ch := 0; ch < channels; ch++ {
		freq := float64(5 + 20*(ch%3))
		data := make([]int, samples-rng.Intn(500))
		for i := range data {
			t := float64(i) / sampleRate
			v := 4000*math.Sin(2*math.Pi*freq*t) + 800*rng.NormFloat64()
			data[i] = int(v)
		}
		if err := builder.WriteWAV(filepath.Join(dir, fmt.Sprintf("probe_%02d.wav", ch)), sampleRate, 1, data); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	root, err := os.MkdirTemp("", "electrode-example-")
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
	if err := writeRecording(raw); err != nil {
		fmt.Printf("Error writing recording: %v\n", err)
		return
	}

	logger := builder.NewLogger(builder.LoggerWithLevel("info"))
	defer logger.Flush()

	meter := builder.NewMeter(
		builder.MeterWithLogger(logger),
		builder.MeterWithUpdateInterval(250*time.Millisecond),
	)

	store, err := builder.NewFileStore(filepath.Join(root, "artifacts"),
		builder.FileStoreWithLogger(logger),
		builder.FileStoreWithMeter(meter),
	)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		return
	}

	pipeline := builder.NewPipeline(
		builder.PipelineWithLogger(logger),
		builder.PipelineWithStore(store),
		builder.PipelineWithMeter(meter),
		builder.PipelineWithLoader(builder.NewLoader(
			builder.LoaderWithDirectory(raw),
			builder.LoaderWithMaxSamples(0),
			builder.LoaderWithSampleRate(sampleRate),
		)),
		builder.PipelineWithEngine(builder.NewCorrelationEngine(
			builder.CorrelationWithWorkers(4),
		)),
		builder.PipelineWithOrderer(builder.NewOrderer(
			builder.OrdererWithDissimilarity(builder.DissimilarityCorrelation),
		)),
		builder.PipelineWithExporter(builder.NewParquetExporter(
			builder.ExporterWithCompression("zstd"),
		)),
	)

	go meter.Monitor(ctx)

	res, err := pipeline.Run(ctx)
	if err != nil {
		fmt.Printf("\nPipeline failed: %v\n", err)
		return
	}

	fmt.Println()
	meter.Report(os.Stdout)

	names, err := store.List(ctx)
	if err != nil {
		fmt.Printf("Error listing artifacts: %v\n", err)
		return
	}
	fmt.Printf("%d channels, %d samples, %d orders, %d artifacts\n", res.Channels, res.Samples, res.Orders, len(names))

	bundle, err := builder.LoadBundle(ctx, store, sampleRate)
	if err != nil {
		fmt.Printf("Error loading bundle: %v\n", err)
		return
	}
	order := bundle.Orders[builder.OrderKey{Formula: builder.FormulaPearson, Method: builder.MethodWard}]
	fmt.Printf("pearson/ward order: %v\n", order)
}
