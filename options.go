package eqn2vec

import (
	"io"
	"time"
)

// Option configures a Converter or a standalone pipeline stage.
type Option func(*converterConfig)

// converterConfig holds settings shared by the converter and the stage functions.
type converterConfig struct {
	workDir   string
	prefix    string
	engine    Engine
	timeout   time.Duration // 0 means no overall deadline
	runner    CommandRunner
	logger    io.Writer
	verbose   bool
	tools     Tools
	assetPath string

	// Test seams.
	compiler    Compiler
	findBrowser func() (string, bool)
}

// defaultBrowserTimeout bounds each browser step when no timeout is configured.
const defaultBrowserTimeout = 30 * time.Second

func newConfig(opts []Option) *converterConfig {
	cfg := &converterConfig{
		workDir:     ".",
		prefix:      DefaultPrefix,
		engine:      DefaultEngine,
		runner:      &ExecRunner{},
		logger:      io.Discard,
		tools:       DefaultTools(),
		findBrowser: findBrowser,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.tools = cfg.tools.withDefaults()
	return cfg
}

// browserTimeout returns the per-step browser timeout.
func (c *converterConfig) browserTimeout() time.Duration {
	if c.timeout > 0 {
		return c.timeout
	}
	return defaultBrowserTimeout
}

// WithWorkDir sets the directory holding intermediates and outputs.
func WithWorkDir(dir string) Option {
	return func(c *converterConfig) {
		if dir != "" {
			c.workDir = dir
		}
	}
}

// WithPrefix sets the output file name prefix (default "eqn").
func WithPrefix(prefix string) Option {
	return func(c *converterConfig) {
		c.prefix = prefix
	}
}

// WithEngine selects the compilation engine.
func WithEngine(e Engine) Option {
	return func(c *converterConfig) {
		c.engine = e
	}
}

// WithTimeout bounds a whole conversion. Without it a run has no deadline.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("eqn2vec: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithRunner replaces the subprocess runner.
func WithRunner(r CommandRunner) Option {
	return func(c *converterConfig) {
		if r != nil {
			c.runner = r
		}
	}
}

// WithLogger sets the writer receiving progress lines.
func WithLogger(w io.Writer) Option {
	return func(c *converterConfig) {
		if w != nil {
			c.logger = w
		}
	}
}

// WithVerbose also logs each equation as it is written.
func WithVerbose(v bool) Option {
	return func(c *converterConfig) {
		c.verbose = v
	}
}

// WithTools overrides the external executable names or paths.
func WithTools(t Tools) Option {
	return func(c *converterConfig) {
		c.tools = t
	}
}

// WithAssetPath loads templates and styles from dir, falling back to the
// built-in ones for anything missing.
func WithAssetPath(dir string) Option {
	return func(c *converterConfig) {
		c.assetPath = dir
	}
}
