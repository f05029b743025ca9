package eqn2vec

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrNoEquations   = errors.New("no equations given")
	ErrEmptyEquation = errors.New("equation cannot be empty")
	ErrInvalidStyle  = errors.New("invalid render style")
	ErrInvalidFormat = errors.New("invalid output format")
	ErrInvalidEngine = errors.New("invalid engine")
	ErrInvalidPrefix = errors.New("invalid output prefix")

	// External tool errors.
	ErrToolNotFound      = errors.New("required tool not found")
	ErrCompile           = errors.New("compilation failed")
	ErrSplit             = errors.New("splitting PDF failed")
	ErrConvert           = errors.New("format conversion failed")
	ErrPageCountMismatch = errors.New("page count does not match equation count")

	// Browser errors (mathml engine).
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Workspace errors.
	ErrWorkDirBusy      = errors.New("work directory is in use by another run")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
