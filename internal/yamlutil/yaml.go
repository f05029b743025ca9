// Package yamlutil wraps YAML decoding to isolate the external dependency.
// Config loading goes through Decode so the parser can be swapped in one place.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeOption adjusts how Decode parses its input.
type DecodeOption func(*decodeSettings)

type decodeSettings struct {
	strict bool
}

// Strict rejects keys that do not map to a field of the destination.
func Strict() DecodeOption {
	return func(s *decodeSettings) { s.strict = true }
}

// Decode parses data into v. Parse errors carry the offending source line
// so users can locate typos in hand-written config files.
func Decode(data []byte, v any, opts ...DecodeOption) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	var s decodeSettings
	for _, opt := range opts {
		opt(&s)
	}

	var yopts []yaml.DecodeOption
	if s.strict {
		yopts = append(yopts, yaml.Strict())
	}

	if err := yaml.UnmarshalWithOptions(data, v, yopts...); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, true))
	}
	return nil
}

// DecodeFile reads at most MaxInputSize+1 bytes from path and decodes them.
// Errors from opening the file are returned unwrapped-compatible (errors.Is
// works against fs.ErrNotExist).
func DecodeFile(path string, v any, opts ...DecodeOption) error {
	f, err := os.Open(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading %s: %w", path, err)
	}
	return Decode(data, v, opts...)
}
