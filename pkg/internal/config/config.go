// Package config loads the YAML run configuration shared by every electrode
// subcommand. Values are layered as defaults, then the file, then ELECTRODE_*
// environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/export"
	"github.com/joeydtaylor/electrode/pkg/internal/internallogger"
	"github.com/joeydtaylor/electrode/pkg/internal/loader"
	"github.com/joeydtaylor/electrode/pkg/internal/store"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Storage backends.
const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// Config is the complete run configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Storage    StorageConfig    `yaml:"storage"`
	Dashboard  DashboardConfig  `yaml:"dashboard"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DataConfig describes the raw recording directory.
type DataConfig struct {
	RawDir     string `yaml:"raw_dir"`
	Extension  string `yaml:"extension"`
	MaxSamples int    `yaml:"max_samples"` // 0 pads to the longest file
	SampleRate int    `yaml:"sample_rate"` // 0 accepts the first file's rate
}

// PreprocessConfig tunes the offline stages.
type PreprocessConfig struct {
	Workers          int      `yaml:"workers"`
	Formulas         []string `yaml:"formulas"`
	Methods          []string `yaml:"methods"`
	Dissimilarity    string   `yaml:"dissimilarity"`
	ReuseSignals     bool     `yaml:"reuse_signals"`
	ReuseCorrelation bool     `yaml:"reuse_correlation"`
	Export           bool     `yaml:"export"`
	Compression      string   `yaml:"compression"`
	Progress         bool     `yaml:"progress"`
}

// StorageConfig selects where artifacts live.
type StorageConfig struct {
	Backend string   `yaml:"backend"`
	Dir     string   `yaml:"dir"`
	S3      S3Config `yaml:"s3"`
}

// S3Config mirrors store.S3Config in YAML form.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKey       string `yaml:"access_key"`
	SecretKey       string `yaml:"secret_key"`
	SessionToken    string `yaml:"session_token"`
	RoleARN         string `yaml:"role_arn"`
	SessionName     string `yaml:"session_name"`
	DurationSeconds int    `yaml:"duration_seconds"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

// DashboardConfig configures the viewer.
type DashboardConfig struct {
	Address        string `yaml:"address"`
	Title          string `yaml:"title"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	Format      string `yaml:"format"`
	File        string `yaml:"file"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			RawDir:     "data/raw",
			Extension:  loader.DefaultExtension,
			MaxSamples: loader.DefaultMaxSamples,
			SampleRate: loader.DefaultSampleRate,
		},
		Preprocess: PreprocessConfig{
			Workers:       1,
			Dissimilarity: string(types.DissimilarityProfile),
			Compression:   "snappy",
			Progress:      true,
		},
		Storage: StorageConfig{
			Backend: BackendFile,
			Dir:     "data",
		},
		Dashboard: DashboardConfig{
			Address:        "127.0.0.1:8050",
			Title:          "Neural Recording Viewer",
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ELECTRODE_* environment variables.
func (c *Config) ApplyEnv() {
	c.Data.RawDir = utils.EnvOr("ELECTRODE_RAW_DIR", c.Data.RawDir)
	c.Data.MaxSamples = utils.EnvIntOr("ELECTRODE_MAX_SAMPLES", c.Data.MaxSamples)
	c.Data.SampleRate = utils.EnvIntOr("ELECTRODE_SAMPLE_RATE", c.Data.SampleRate)
	c.Storage.Dir = utils.EnvOr("ELECTRODE_ARTIFACT_DIR", c.Storage.Dir)
	c.Dashboard.Address = utils.EnvOr("ELECTRODE_ADDR", c.Dashboard.Address)
	c.Logging.Level = utils.EnvOr("ELECTRODE_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = utils.EnvOr("ELECTRODE_LOG_FORMAT", c.Logging.Format)
	c.Preprocess.Workers = utils.EnvIntOr("ELECTRODE_WORKERS", c.Preprocess.Workers)
	c.Preprocess.Progress = utils.EnvBoolOr("ELECTRODE_PROGRESS", c.Preprocess.Progress)

	if bucket := utils.EnvOr("ELECTRODE_S3_BUCKET", ""); bucket != "" {
		c.Storage.Backend = BackendS3
		c.Storage.S3.Bucket = bucket
	}
	c.Storage.S3.Prefix = utils.EnvOr("ELECTRODE_S3_PREFIX", c.Storage.S3.Prefix)
	c.Storage.S3.Region = utils.EnvOr("ELECTRODE_S3_REGION", c.Storage.S3.Region)
	c.Storage.S3.Endpoint = utils.EnvOr("ELECTRODE_S3_ENDPOINT", c.Storage.S3.Endpoint)
	c.Storage.S3.RoleARN = utils.EnvOr("ELECTRODE_S3_ROLE_ARN", c.Storage.S3.RoleARN)
}

// FormulaList parses the configured formulas; empty means all three.
func (c *Config) FormulaList() ([]types.Formula, error) {
	if len(c.Preprocess.Formulas) == 0 {
		return types.Formulas(), nil
	}
	out := make([]types.Formula, 0, len(c.Preprocess.Formulas))
	for _, s := range c.Preprocess.Formulas {
		f, err := types.ParseFormula(s)
		if err != nil {
			return nil, err
		}
		if !utils.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// MethodList parses the configured linkage methods; empty means all four.
func (c *Config) MethodList() ([]types.LinkageMethod, error) {
	if len(c.Preprocess.Methods) == 0 {
		return types.Methods(), nil
	}
	out := make([]types.LinkageMethod, 0, len(c.Preprocess.Methods))
	for _, s := range c.Preprocess.Methods {
		m, err := types.ParseMethod(s)
		if err != nil {
			return nil, err
		}
		if !utils.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// DissimilarityMode parses the configured dissimilarity.
func (c *Config) DissimilarityMode() (types.Dissimilarity, error) {
	return types.ParseDissimilarity(c.Preprocess.Dissimilarity)
}

// DashboardTimeout returns the request timeout.
func (c *Config) DashboardTimeout() time.Duration {
	return time.Duration(c.Dashboard.TimeoutSeconds) * time.Second
}

// StoreS3Config converts the S3 section for store.OpenS3.
func (c *Config) StoreS3Config() store.S3Config {
	s := c.Storage.S3
	return store.S3Config{
		Bucket:         s.Bucket,
		Prefix:         s.Prefix,
		Region:         s.Region,
		Endpoint:       s.Endpoint,
		AccessKey:      s.AccessKey,
		SecretKey:      s.SecretKey,
		SessionToken:   s.SessionToken,
		RoleARN:        s.RoleARN,
		SessionName:    s.SessionName,
		Duration:       time.Duration(s.DurationSeconds) * time.Second,
		ForcePathStyle: s.ForcePathStyle,
	}
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...))
	}

	if c.Data.MaxSamples < 0 {
		bad("data.max_samples must be >= 0, got %d", c.Data.MaxSamples)
	}
	if c.Data.SampleRate < 0 {
		bad("data.sample_rate must be >= 0, got %d", c.Data.SampleRate)
	}
	if c.Preprocess.Workers < 1 {
		bad("preprocess.workers must be >= 1, got %d", c.Preprocess.Workers)
	}
	if _, err := c.FormulaList(); err != nil {
		bad("preprocess.formulas: %v", err)
	}
	if _, err := c.MethodList(); err != nil {
		bad("preprocess.methods: %v", err)
	}
	if _, err := c.DissimilarityMode(); err != nil {
		bad("preprocess.dissimilarity: %v", err)
	}
	if comp := strings.ToLower(c.Preprocess.Compression); comp != "" && !utils.Contains(export.Compressions, comp) {
		bad("preprocess.compression %q is not one of %s", c.Preprocess.Compression, strings.Join(export.Compressions, ", "))
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Dir == "" {
			bad("storage.dir is required for the file backend")
		}
	case BackendS3:
		if c.Storage.S3.Bucket == "" {
			bad("storage.s3.bucket is required for the s3 backend")
		}
	default:
		bad("storage.backend %q is not file or s3", c.Storage.Backend)
	}

	host, _, err := net.SplitHostPort(c.Dashboard.Address)
	if err != nil {
		bad("dashboard.address %q: %v", c.Dashboard.Address, err)
	} else if ip := net.ParseIP(host); host != "localhost" && (ip == nil || !ip.IsLoopback()) {
		bad("dashboard.address %q must be a loopback address", c.Dashboard.Address)
	}
	if c.Dashboard.TimeoutSeconds < 1 {
		bad("dashboard.timeout_seconds must be >= 1, got %d", c.Dashboard.TimeoutSeconds)
	}

	if _, ok := internallogger.ParseLevel(c.Logging.Level); !ok {
		bad("logging.level %q is unknown", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		bad("logging.format %q must be json or console", c.Logging.Format)
	}
	return errors.Join(errs...)
}

// Print writes a human readable summary of the configuration to w.
func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, "Data: %s (*%s, max %d samples @ %d Hz)\n", c.Data.RawDir, c.Data.Extension, c.Data.MaxSamples, c.Data.SampleRate)
	formulas, methods := c.Preprocess.Formulas, c.Preprocess.Methods
	if len(formulas) == 0 {
		formulas = []string{"all"}
	}
	if len(methods) == 0 {
		methods = []string{"all"}
	}
	fmt.Fprintf(w, "Preprocess: workers=%d formulas=%s methods=%s dissimilarity=%s\n",
		c.Preprocess.Workers, strings.Join(formulas, ","), strings.Join(methods, ","), c.Preprocess.Dissimilarity)
	if c.Preprocess.ReuseSignals || c.Preprocess.ReuseCorrelation {
		fmt.Fprintf(w, "Reuse: signals=%t correlation=%t\n", c.Preprocess.ReuseSignals, c.Preprocess.ReuseCorrelation)
	}
	if c.Preprocess.Export {
		fmt.Fprintf(w, "Export: parquet (%s)\n", c.Preprocess.Compression)
	}
	switch c.Storage.Backend {
	case BackendS3:
		fmt.Fprintf(w, "Storage: s3://%s/%s\n", c.Storage.S3.Bucket, c.Storage.S3.Prefix)
	default:
		fmt.Fprintf(w, "Storage: %s\n", c.Storage.Dir)
	}
	fmt.Fprintf(w, "Dashboard: http://%s/ (timeout %ds)\n", c.Dashboard.Address, c.Dashboard.TimeoutSeconds)
	fmt.Fprintf(w, "Logging: level=%s development=%t", c.Logging.Level, c.Logging.Development)
	if c.Logging.Format != "" {
		fmt.Fprintf(w, " format=%s", c.Logging.Format)
	}
	if c.Logging.File != "" {
		fmt.Fprintf(w, " file=%s", c.Logging.File)
	}
	fmt.Fprintln(w)
}
