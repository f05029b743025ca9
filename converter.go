package eqn2vec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-eqn2vec/internal/assets"
)

// dirPermissions is used when the work directory has to be created.
const dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute

// Converter orchestrates the equation-to-vector pipeline.
// Create with NewConverter(), use Convert() for each batch, and Close() when done.
// A Converter is not safe for concurrent use; runs in the same work
// directory are serialized by a lock file.
type Converter struct {
	cfg      *converterConfig
	assets   assets.AssetLoader
	compiler Compiler
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithWorkDir, WithEngine, WithPrefix).
// Returns error if an option value is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := newConfig(opts)

	if err := cfg.engine.Validate(); err != nil {
		return nil, err
	}
	if err := ValidatePrefix(cfg.prefix); err != nil {
		return nil, err
	}

	loader, err := newAssetLoader(cfg.assetPath)
	if err != nil {
		return nil, err
	}

	c := &Converter{cfg: cfg, assets: loader, compiler: cfg.compiler}

	// Create compiler if not injected (e.g., by tests)
	if c.compiler == nil {
		c.compiler, err = newCompiler(cfg, loader)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Workspace returns the workspace used by Convert.
func (c *Converter) Workspace() Workspace {
	return NewWorkspace(c.cfg.workDir, c.cfg.prefix)
}

// Convert runs the full pipeline for one batch.
//
// All input is validated before anything is written. Stages then run in
// order with no retries; a failing stage stops the run and leaves whatever
// files exist for inspection. On success, intermediates are removed unless
// input.Keep is set, in which case they are listed in Result.Intermediates.
// If only cleanup fails, the Result is still returned alongside the error.
//
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	input = input.withDefaults()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	ws := c.Workspace()
	if err := os.MkdirAll(ws.Dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}

	unlock, err := ws.Lock()
	if err != nil {
		return nil, err
	}
	defer func() {
		if uerr := unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("releasing lock: %w", uerr)
		}
	}()

	// Assemble
	if err := assemble(ws.TeXPath(), input.Equations, input.Style, c.assets, c.cfg); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Compile
	pdfPath, err := c.compiler.Compile(ctx, Document{
		Workspace: ws,
		Equations: input.Equations,
		Style:     input.Style,
	})
	if err != nil {
		return nil, err
	}

	// Verify one page per equation before splitting
	if err := verifyPageCount(c.cfg, pdfPath, len(input.Equations)); err != nil {
		return nil, err
	}

	// Split and convert
	outputs, splitPDFs, err := split(ctx, c.cfg, pdfPath, len(input.Equations), input.Format)
	if err != nil {
		return nil, err
	}

	res := &Result{Outputs: outputs}
	imagesProduced := input.Format != FormatPDF

	if input.Keep {
		res.Intermediates = retainedPaths(ws, splitPDFs, imagesProduced)
		return res, nil
	}

	if err := Cleanup(ws, splitPDFs, imagesProduced); err != nil {
		return res, fmt.Errorf("cleaning up: %w", err)
	}
	return res, nil
}

// Close releases resources (headless Chrome for the mathml engine).
func (c *Converter) Close() error {
	if c.compiler != nil {
		return c.compiler.Close()
	}
	return nil
}

// OutputDir returns the absolute work directory, or the configured one if it
// cannot be resolved.
func (c *Converter) OutputDir() string {
	abs, err := filepath.Abs(c.cfg.workDir)
	if err != nil {
		return c.cfg.workDir
	}
	return abs
}
