package eqn2vec

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-eqn2vec/internal/fileutil"
)

// SplitDocument splits the multi-page PDF at pdfPath into count single-page
// PDFs named <prefix>1.pdf .. <prefix>N.pdf next to it and, for FormatSVG,
// converts each to <prefix>i.svg. It returns the final files in page order.
//
// The format is validated before any tool runs.
// Options honored: WithPrefix, WithRunner, WithTools, WithLogger.
func SplitDocument(ctx context.Context, pdfPath string, count int, format Format, opts ...Option) ([]string, error) {
	cfg := newConfig(opts)
	if err := ValidatePrefix(cfg.prefix); err != nil {
		return nil, err
	}
	outputs, _, err := split(ctx, cfg, pdfPath, count, format)
	return outputs, err
}

// split runs pdfseparate and, for SVG, pdf2svg. It returns the final outputs
// and the split PDFs.
func split(ctx context.Context, cfg *converterConfig, pdfPath string, count int, format Format) (outputs, splitPDFs []string, err error) {
	if err := format.Validate(); err != nil {
		return nil, nil, err
	}
	if count < 1 {
		return nil, nil, fmt.Errorf("%w: nothing to split", ErrNoEquations)
	}

	ws := NewWorkspace(filepath.Dir(pdfPath), cfg.prefix)
	pdfName := filepath.Base(pdfPath)

	logf(cfg.logger, "Splitting %s into separate pages", pdfName)

	_, stderr, err := cfg.runner.Run(ctx, ws.Dir, cfg.tools.PDFSeparate, pdfName, ws.SplitPattern())
	if err != nil {
		return nil, nil, runError(ctx, ErrSplit, cfg.tools.PDFSeparate, stderr, err)
	}

	splitPDFs = make([]string, count)
	for i := range splitPDFs {
		p := ws.SplitPath(i + 1)
		if !fileutil.FileExists(p) {
			return nil, nil, fmt.Errorf("%w: expected %s was not produced", ErrSplit, filepath.Base(p))
		}
		splitPDFs[i] = p
	}

	if format == FormatPDF {
		return splitPDFs, splitPDFs, nil
	}

	outputs = make([]string, count)
	for i, p := range splitPDFs {
		svgPath, err := fileutil.ReplaceExt(p, format.Ext())
		if err != nil {
			return nil, splitPDFs, err
		}

		logf(cfg.logger, "Creating %s", filepath.Base(svgPath))

		_, stderr, err := cfg.runner.Run(ctx, ws.Dir, cfg.tools.PDF2SVG, filepath.Base(p), filepath.Base(svgPath))
		if err != nil {
			return nil, splitPDFs, runError(ctx, ErrConvert, cfg.tools.PDF2SVG, stderr, err)
		}
		if !fileutil.FileExists(svgPath) {
			return nil, splitPDFs, fmt.Errorf("%w: expected %s was not produced", ErrConvert, filepath.Base(svgPath))
		}
		outputs[i] = svgPath
	}
	return outputs, splitPDFs, nil
}
