package eqn2vec

import (
	"fmt"
	"os"

	"rsc.io/pdf"
)

// countPages returns the number of pages in the PDF at path.
func countPages(path string) (n int, err error) {
	f, err := os.Open(path) // #nosec G304 -- compiled document inside the work dir
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	// rsc.io/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading %s: %v", path, r)
		}
	}()

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return r.NumPage(), nil
}

// verifyPageCount fails with ErrPageCountMismatch when the compiled PDF does
// not have exactly want pages. A PDF the reader cannot parse is logged and
// left for the splitter to judge.
func verifyPageCount(cfg *converterConfig, path string, want int) error {
	got, err := countPages(path)
	if err != nil {
		logf(cfg.logger, "warning: skipping page count check: %v", err)
		return nil
	}
	if got != want {
		return fmt.Errorf("%w: %s has %d pages, expected %d", ErrPageCountMismatch, path, got, want)
	}
	return nil
}
