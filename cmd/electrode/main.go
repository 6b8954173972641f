// Command electrode preprocesses a directory of per-channel WAV recordings into
// reusable artifacts and serves them on a loopback dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeydtaylor/electrode/pkg/builder"
)

const usage = `usage: electrode <command> [flags]

commands:
  preprocess   load WAVs, compute correlations and orders, write artifacts
  serve        serve the dashboard over stored artifacts
  export       write Parquet tables from stored artifacts
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "preprocess":
		err = runPreprocess(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "export":
		err = runExport(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "electrode %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

// common holds the flags every command accepts.
type common struct {
	config    string
	out       string
	logLevel  string
	logFormat string
	show      bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "path to a YAML config file")
	fs.StringVar(&c.out, "out", "", "artifact directory (file backend)")
	fs.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&c.logFormat, "log-format", "", "json or console")
	fs.BoolVar(&c.show, "print-config", false, "print the effective configuration before running")
}

func (c *common) load() (*builder.Config, error) {
	cfg, err := builder.LoadConfig(c.config)
	if err != nil {
		return nil, err
	}
	if c.out != "" {
		cfg.Storage.Backend = "file"
		cfg.Storage.Dir = c.out
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Logging.Format = c.logFormat
	}
	return cfg, nil
}

func (c *common) finish(cfg *builder.Config) (builder.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c.show {
		cfg.Print(os.Stderr)
	}
	return builder.NewLoggerFromConfig(cfg)
}

func runPreprocess(ctx context.Context, args []string) error {
	var (
		c                common
		raw              string
		workers          int
		maxSamples       int
		sampleRate       int
		reuseSignals     bool
		reuseCorrelation bool
		export           bool
	)
	fs := flag.NewFlagSet("preprocess", flag.ExitOnError)
	c.register(fs)
	fs.StringVar(&raw, "raw", "", "directory of per-channel WAV files")
	fs.IntVar(&workers, "workers", 0, "correlation worker count")
	fs.IntVar(&maxSamples, "max-samples", -1, "padded length; 0 pads to the longest file")
	fs.IntVar(&sampleRate, "sample-rate", -1, "expected sample rate; 0 accepts the first file's")
	fs.BoolVar(&reuseSignals, "reuse-signals", false, "load signals from the store instead of WAVs")
	fs.BoolVar(&reuseCorrelation, "reuse-correlation", false, "load correlation matrices from the store")
	fs.BoolVar(&export, "export", false, "also write Parquet tables")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if raw != "" {
		cfg.Data.RawDir = raw
	}
	if workers > 0 {
		cfg.Preprocess.Workers = workers
	}
	if maxSamples >= 0 {
		cfg.Data.MaxSamples = maxSamples
	}
	if sampleRate >= 0 {
		cfg.Data.SampleRate = sampleRate
	}
	cfg.Preprocess.ReuseSignals = cfg.Preprocess.ReuseSignals || reuseSignals
	cfg.Preprocess.ReuseCorrelation = cfg.Preprocess.ReuseCorrelation || reuseCorrelation
	cfg.Preprocess.Export = cfg.Preprocess.Export || export

	logger, err := c.finish(cfg)
	if err != nil {
		return err
	}
	defer logger.Flush()

	var progress io.Writer = os.Stderr
	if !cfg.Preprocess.Progress {
		progress = nil
	}
	m := builder.NewMeter(builder.MeterWithLogger(logger), builder.MeterWithOutput(progress))

	s, err := builder.OpenStore(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	p, err := builder.NewPipelineFromConfig(cfg, s, logger, m)
	if err != nil {
		return err
	}

	monitorCtx, cancelMonitor := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Monitor(monitorCtx)
	}()
	res, err := p.Run(ctx)
	cancelMonitor()
	<-done
	if err != nil {
		return err
	}

	m.Report(os.Stderr)
	fmt.Fprintf(os.Stderr, "%d channels x %d samples @ %d Hz, %d orders\n",
		res.Channels, res.Samples, res.SampleRate, res.Orders)
	return nil
}

func runServe(ctx context.Context, args []string) error {
	var (
		c       common
		addr    string
		title   string
		timeout time.Duration
	)
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	c.register(fs)
	fs.StringVar(&addr, "addr", "", "loopback listen address")
	fs.StringVar(&title, "title", "", "page title")
	fs.DurationVar(&timeout, "timeout", 0, "per-request write timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Dashboard.Address = addr
	}
	if title != "" {
		cfg.Dashboard.Title = title
	}
	if timeout > 0 {
		cfg.Dashboard.TimeoutSeconds = int(timeout / time.Second)
	}

	logger, err := c.finish(cfg)
	if err != nil {
		return err
	}
	defer logger.Flush()

	s, err := builder.OpenStore(ctx, cfg, logger, builder.NewMeter(builder.MeterWithOutput(nil)))
	if err != nil {
		return err
	}
	bundle, err := builder.LoadBundle(ctx, s, cfg.Data.SampleRate)
	if err != nil {
		return fmt.Errorf("load artifacts (run preprocess first): %w", err)
	}
	vc, err := builder.NewViewContext(bundle)
	if err != nil {
		return err
	}

	srv := builder.NewDashboard(vc,
		builder.DashboardWithLogger(logger),
		builder.DashboardWithAddress(cfg.Dashboard.Address),
		builder.DashboardWithTimeout(cfg.DashboardTimeout()),
		builder.DashboardWithTitle(cfg.Dashboard.Title),
	)
	fmt.Fprintf(os.Stderr, "dashboard on http://%s\n", srv.Address())
	return srv.Serve(ctx)
}

func runExport(ctx context.Context, args []string) error {
	var (
		c           common
		compression string
	)
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c.register(fs)
	fs.StringVar(&compression, "compression", "", "snappy, zstd, gzip, lz4, brotli or none")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if compression != "" {
		cfg.Preprocess.Compression = compression
	}

	logger, err := c.finish(cfg)
	if err != nil {
		return err
	}
	defer logger.Flush()

	s, err := builder.OpenStore(ctx, cfg, logger, builder.NewMeter(builder.MeterWithOutput(nil)))
	if err != nil {
		return err
	}
	bundle, err := builder.LoadBundle(ctx, s, cfg.Data.SampleRate)
	if err != nil {
		return fmt.Errorf("load artifacts (run preprocess first): %w", err)
	}
	exporter := builder.NewParquetExporter(
		builder.ExporterWithLogger(logger),
		builder.ExporterWithCompression(cfg.Preprocess.Compression),
	)
	sum, err := exporter.Export(ctx, s, bundle.Correlations, bundle.Orders)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d correlation rows and %d order rows\n", sum.CorrelationRows, sum.OrderRows)
	return nil
}
