package eqn2vec

import (
	"errors"

	"github.com/alnah/go-eqn2vec/internal/fileutil"
)

// intermediatePaths lists every file a run may leave besides its outputs.
// Split PDFs are only intermediates when images were produced from them.
func intermediatePaths(ws Workspace, splitPDFs []string, imagesProduced bool) []string {
	paths := []string{ws.TeXPath()}
	paths = append(paths, ws.auxiliaryPaths()...)
	paths = append(paths, ws.HTMLPath(), ws.PDFPath())
	if imagesProduced {
		paths = append(paths, splitPDFs...)
	}
	return paths
}

// Cleanup deletes the intermediate files of a run: the document source,
// pdflatex by-products, the compiled PDF and, when imagesProduced is true,
// the split PDFs. Missing files are skipped, so Cleanup is idempotent.
// Every removal is attempted; failures are joined.
func Cleanup(ws Workspace, splitPDFs []string, imagesProduced bool) error {
	var errs []error
	for _, p := range intermediatePaths(ws, splitPDFs, imagesProduced) {
		if _, err := fileutil.RemoveIfExists(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// retainedPaths returns the intermediates that exist on disk.
func retainedPaths(ws Workspace, splitPDFs []string, imagesProduced bool) []string {
	var kept []string
	for _, p := range intermediatePaths(ws, splitPDFs, imagesProduced) {
		if fileutil.FileExists(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
