package eqn2vec

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-eqn2vec/internal/assets"
	"github.com/alnah/go-eqn2vec/internal/fileutil"
)

// Document is the compiler input: the workspace holding the assembled
// document plus the batch it was assembled from.
type Document struct {
	Workspace Workspace
	Equations []string
	Style     Style
}

// Compiler turns an assembled document into a multi-page PDF, one page per
// equation, written to Workspace.PDFPath.
type Compiler interface {
	Compile(ctx context.Context, doc Document) (pdfPath string, err error)
	Close() error
}

// Compile-time interface checks.
var (
	_ Compiler = (*latexCompiler)(nil)
	_ Compiler = (*mathmlCompiler)(nil)
)

// newCompiler builds the compiler for cfg.engine.
func newCompiler(cfg *converterConfig, loader assets.AssetLoader) (Compiler, error) {
	switch cfg.engine {
	case EnginePDFLaTeX:
		return &latexCompiler{runner: cfg.runner, bin: cfg.tools.PDFLaTeX, logger: cfg.logger}, nil
	case EngineMathML:
		return newMathMLCompiler(loader, cfg.logger, cfg.browserTimeout()), nil
	}
	return nil, cfg.engine.Validate()
}

// latexCompiler runs pdflatex on the assembled .tex file.
type latexCompiler struct {
	runner CommandRunner
	bin    string
	logger io.Writer
}

// Compile runs pdflatex in batch mode inside the workspace directory.
// Stdout is discarded; on failure the first LaTeX error from the log is
// included in the returned ErrCompile.
func (c *latexCompiler) Compile(ctx context.Context, doc Document) (string, error) {
	ws := doc.Workspace
	texName := filepath.Base(ws.TeXPath())
	pdfPath := ws.PDFPath()

	logf(c.logger, "Compiling %s to %s", texName, filepath.Base(pdfPath))

	_, stderr, err := c.runner.Run(ctx, ws.Dir, c.bin,
		"-interaction=nonstopmode", "-halt-on-error", texName)
	if err != nil {
		if ctx.Err() == nil && !isNotFound(err) {
			if msg := latexLogError(ws.LogPath()); msg != "" {
				return "", fmt.Errorf("%w: %s: %s", ErrCompile, c.bin, msg)
			}
		}
		return "", runError(ctx, ErrCompile, c.bin, stderr, err)
	}

	if !fileutil.FileExists(pdfPath) {
		return "", fmt.Errorf("%w: %s produced no %s", ErrCompile, c.bin, filepath.Base(pdfPath))
	}
	return pdfPath, nil
}

// Close is a no-op; pdflatex holds no resources between runs.
func (c *latexCompiler) Close() error { return nil }

// latexLogError extracts the first "! ..." error and its "l.N" context line
// from a pdflatex log. Returns "" if the log is missing or has no error.
func latexLogError(logPath string) string {
	f, err := os.Open(logPath) // #nosec G304 -- fixed name inside the work dir
	if err != nil {
		return ""
	}
	defer f.Close()

	var msg string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if msg == "" {
			if strings.HasPrefix(line, "! ") {
				msg = strings.TrimPrefix(line, "! ")
			}
			continue
		}
		if strings.HasPrefix(line, "l.") {
			return msg + " (" + line + ")"
		}
	}
	return msg
}
