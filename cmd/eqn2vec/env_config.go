package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-eqn2vec/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // EQN2VEC_CONFIG: config file name or path
	Format     string        // EQN2VEC_FORMAT: svg or pdf
	Engine     string        // EQN2VEC_ENGINE: pdflatex or mathml
	Style      string        // EQN2VEC_STYLE: inline or display
	OutputDir  string        // EQN2VEC_OUTPUT_DIR: work and output directory
	Prefix     string        // EQN2VEC_PREFIX: output name prefix
	Timeout    time.Duration // EQN2VEC_TIMEOUT: whole-run timeout
	Keep       bool          // EQN2VEC_KEEP: retain intermediates
}

// knownEnvVars lists valid EQN2VEC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"EQN2VEC_CONFIG":     true,
	"EQN2VEC_FORMAT":     true,
	"EQN2VEC_ENGINE":     true,
	"EQN2VEC_STYLE":      true,
	"EQN2VEC_OUTPUT_DIR": true,
	"EQN2VEC_PREFIX":     true,
	"EQN2VEC_TIMEOUT":    true,
	"EQN2VEC_KEEP":       true,
	"EQN2VEC_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable timeout and keep values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("EQN2VEC_CONFIG"),
		Format:     os.Getenv("EQN2VEC_FORMAT"),
		Engine:     os.Getenv("EQN2VEC_ENGINE"),
		Style:      os.Getenv("EQN2VEC_STYLE"),
		OutputDir:  os.Getenv("EQN2VEC_OUTPUT_DIR"),
		Prefix:     os.Getenv("EQN2VEC_PREFIX"),
	}

	if timeout := os.Getenv("EQN2VEC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if keep := os.Getenv("EQN2VEC_KEEP"); keep != "" {
		if b, err := strconv.ParseBool(keep); err == nil {
			cfg.Keep = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized EQN2VEC_* variables.
// Helps catch typos like EQN2VEC_FROMAT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "EQN2VEC_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" && cfg.Output.Format == "" {
		cfg.Output.Format = env.Format
	}
	if env.Engine != "" && cfg.Engine == "" {
		cfg.Engine = env.Engine
	}
	if env.Style != "" && cfg.Render.Style == "" {
		cfg.Render.Style = env.Style
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Prefix != "" && cfg.Output.Prefix == "" {
		cfg.Output.Prefix = env.Prefix
	}
	if env.Timeout > 0 && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout.String()
	}
	if env.Keep {
		cfg.Keep = true
	}
}
