package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-eqn2vec/internal/fileutil"
	"github.com/alnah/go-eqn2vec/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength   = 4096
	MaxPrefixLength = 64
	MaxToolLength   = 4096
)

// configDirName is the directory under os.UserConfigDir searched for named configs.
const configDirName = "go-eqn2vec"

// Config holds all configuration for an equation conversion run.
type Config struct {
	Output  OutputConfig `yaml:"output"`
	Render  RenderConfig `yaml:"render"`
	Engine  string       `yaml:"engine"`  // "pdflatex" or "mathml" (default: "pdflatex")
	Timeout string       `yaml:"timeout"` // Go duration, empty = no timeout
	Keep    bool         `yaml:"keep"`    // Retain intermediate files
	Tools   ToolsConfig  `yaml:"tools"`
	Assets  AssetsConfig `yaml:"assets"`
}

// OutputConfig defines where and how results are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`    // Work and output directory (empty = current directory)
	Prefix string `yaml:"prefix"` // Output name prefix (default: "eqn")
	Format string `yaml:"format"` // "svg" or "pdf" (default: "svg")
}

// RenderConfig defines how equations are typeset.
type RenderConfig struct {
	Style string `yaml:"style"` // "inline" or "display" (default: "inline")
}

// ToolsConfig overrides the external executables. Empty = look up on PATH.
type ToolsConfig struct {
	PDFLaTeX    string `yaml:"pdflatex"`
	PDFSeparate string `yaml:"pdfseparate"`
	PDF2SVG     string `yaml:"pdf2svg"`
}

// AssetsConfig defines template loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded templates
}

// Validate checks enum values and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.prefix", c.Output.Prefix, MaxPrefixLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Output.Prefix, "/\\\x00") {
		return fmt.Errorf("%w: output.prefix %q must not contain path separators", ErrInvalidValue, c.Output.Prefix)
	}
	if err := validateEnum("output.format", c.Output.Format, "svg", "pdf"); err != nil {
		return err
	}
	if err := validateEnum("render.style", c.Render.Style, "inline", "display"); err != nil {
		return err
	}
	if err := validateEnum("engine", c.Engine, "pdflatex", "mathml"); err != nil {
		return err
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
		}
	}

	tools := []struct{ field, value string }{
		{"tools.pdflatex", c.Tools.PDFLaTeX},
		{"tools.pdfseparate", c.Tools.PDFSeparate},
		{"tools.pdf2svg", c.Tools.PDF2SVG},
	}
	for _, tool := range tools {
		if err := validateFieldLength(tool.field, tool.value, MaxToolLength); err != nil {
			return err
		}
	}

	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// validateEnum accepts an empty value (use default) or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, " or "))
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration. Empty enum fields mean the
// library defaults apply.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Dir: "", Prefix: "", Format: ""},
		Render: RenderConfig{Style: ""},
		Keep:   false,
	}
}

// TimeoutDuration returns the parsed timeout, zero when unset.
// Assumes Validate has passed.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFile(configPath, &cfg, yamlutil.Strict()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
