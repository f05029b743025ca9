package main

import (
	"errors"
	"os"

	eqn2vec "github.com/alnah/go-eqn2vec"
	"github.com/alnah/go-eqn2vec/internal/config"
)

// Exit codes for the eqn2vec CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, busy work dir
	ExitTool    = 4 // pdflatex/pdfseparate/pdf2svg missing or failing
	ExitBrowser = 5 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 5)
	if errors.Is(err, eqn2vec.ErrBrowserConnect) ||
		errors.Is(err, eqn2vec.ErrPageCreate) ||
		errors.Is(err, eqn2vec.ErrPageLoad) ||
		errors.Is(err, eqn2vec.ErrPDFGeneration) {
		return ExitBrowser
	}

	// External tool errors (exit 4)
	if errors.Is(err, eqn2vec.ErrToolNotFound) ||
		errors.Is(err, eqn2vec.ErrCompile) ||
		errors.Is(err, eqn2vec.ErrSplit) ||
		errors.Is(err, eqn2vec.ErrConvert) ||
		errors.Is(err, eqn2vec.ErrPageCountMismatch) {
		return ExitTool
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, eqn2vec.ErrNoEquations) ||
		errors.Is(err, eqn2vec.ErrEmptyEquation) ||
		errors.Is(err, eqn2vec.ErrInvalidStyle) ||
		errors.Is(err, eqn2vec.ErrInvalidFormat) ||
		errors.Is(err, eqn2vec.ErrInvalidEngine) ||
		errors.Is(err, eqn2vec.ErrInvalidPrefix) ||
		errors.Is(err, eqn2vec.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, eqn2vec.ErrWorkDirBusy) ||
		errors.Is(err, ErrReadInput) {
		return ExitIO
	}

	return ExitGeneral
}
