package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/stdlinks/internal/config"
	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/logfields"
	"git.home.luguber.info/inful/stdlinks/internal/metrics"
	"git.home.luguber.info/inful/stdlinks/internal/rustdoc"
	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
)

// Name is the preprocessor name, the key of its table in book.toml.
const Name = "stdlinks"

// Global carries the process streams so commands can be run against buffers.
type Global struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdGlobal returns a Global bound to the process streams.
func StdGlobal() *Global {
	return &Global{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" type:"path" env:"STDLINKS_CONFIG" help:"Optional YAML configuration file"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsFile string           `name:"metrics-file" help:"Write run metrics in Prometheus text format to this file"`

	Preprocess PreprocessCmd `cmd:"" default:"1" help:"Run as an mdbook preprocessor (reads [context, book] JSON on stdin)"`
	Supports   SupportsCmd   `cmd:"" help:"Report whether a renderer is supported (exit 0) or not (exit 1)"`
	Rewrite    RewriteCmd    `cmd:"" help:"Rewrite std links in standalone markdown files"`
	Check      CheckCmd      `cmd:"" help:"Report pending std links and definitions that hide them"`
	Watch      WatchCmd      `cmd:"" help:"Rewrite a source tree into an output tree and repeat on change"`
}

// AfterApply runs after flag parsing; setup logging once. Logs go to stderr
// since stdout carries the book.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig layers the config file, the book.toml table and the environment
// (.env files in envDir, then SPEC_RELATIVE) and validates the result.
func (c *CLI) loadConfig(table map[string]any, envDir string) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyPreprocessorTable(table); err != nil {
		return nil, err
	}
	if err := config.LoadEnvFiles(envDir); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
			Fatal().
			WithContext("dir", envDir).
			Build()
	}
	cfg.ApplyEnv(nil)
	if c.MetricsFile != "" {
		cfg.MetricsFile = c.MetricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Effective configuration", slog.String("config", cfg.String()))
	return cfg, nil
}

// pipeline is the processor built from one configuration, plus the metrics
// registry it reports to when a metrics file is configured.
type pipeline struct {
	processor   *stdlinks.Processor
	registry    *prometheus.Registry
	metricsFile string
}

func newPipeline(cfg *config.Config, stderr io.Writer) *pipeline {
	p := &pipeline{metricsFile: cfg.MetricsFile}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.MetricsFile != "" {
		p.registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(p.registry)
	}

	resolver := rustdoc.NewResolver(rustdoc.Options{
		Binary:      cfg.Rustdoc,
		Edition:     cfg.Edition,
		DocURL:      cfg.DocURL,
		ScratchDir:  cfg.ScratchDir,
		KeepScratch: cfg.KeepScratch,
		Stderr:      stderr,
	})
	relativizer := stdlinks.NewRelativizer(cfg.Relative, cfg.DocURL)
	p.processor = stdlinks.NewProcessor(resolver,
		stdlinks.WithRelativizer(relativizer),
		stdlinks.WithRecorder(recorder),
	)
	slog.Debug("Pipeline ready",
		slog.String("rustdoc", cfg.Rustdoc),
		slog.Bool("relative", relativizer.Enabled()),
		slog.Bool("metrics", p.registry != nil))
	return p
}

// flush writes the metrics file, if any. Failures are logged only; metrics
// never change the outcome of a run.
func (p *pipeline) flush() {
	if p == nil || p.registry == nil {
		return
	}
	if err := metrics.WriteTextfile(p.metricsFile, p.registry); err != nil {
		slog.Warn("Failed to write metrics file", logfields.File(p.metricsFile), logfields.Error(err))
	}
}
