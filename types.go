package eqn2vec

import (
	"fmt"
	"strings"
)

// Style selects the math markup wrapped around each equation.
type Style string

// Render styles.
const (
	StyleInline  Style = "inline"
	StyleDisplay Style = "display"
)

// Format selects the per-equation output file type.
type Format string

// Output formats.
const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Engine selects how the equation document is compiled.
type Engine string

// Compilation engines.
const (
	// EnginePDFLaTeX runs pdflatex as a subprocess.
	EnginePDFLaTeX Engine = "pdflatex"
	// EngineMathML converts to MathML in-process and prints with headless Chrome.
	EngineMathML Engine = "mathml"
)

// Defaults applied to zero values.
const (
	DefaultStyle  = StyleInline
	DefaultFormat = FormatSVG
	DefaultEngine = EnginePDFLaTeX
)

// ParseStyle parses s case-insensitively. Empty input yields DefaultStyle.
func ParseStyle(s string) (Style, error) {
	st := Style(normalize(s))
	if st == "" {
		return DefaultStyle, nil
	}
	return st, st.Validate()
}

// Validate returns ErrInvalidStyle if s is not a known style.
func (s Style) Validate() error {
	switch s {
	case StyleInline, StyleDisplay:
		return nil
	}
	return fmt.Errorf("%w: %q (must be inline or display)", ErrInvalidStyle, string(s))
}

// Wrap returns eq wrapped in the math-mode markup for s.
// Display math keeps single dollars so standalone crops tightly.
func (s Style) Wrap(eq string) string {
	if s == StyleDisplay {
		return `$\displaystyle ` + eq + `$`
	}
	return "$" + eq + "$"
}

// ParseFormat parses s case-insensitively. Empty input yields DefaultFormat.
func ParseFormat(s string) (Format, error) {
	f := Format(normalize(s))
	if f == "" {
		return DefaultFormat, nil
	}
	return f, f.Validate()
}

// Validate returns ErrInvalidFormat if f is not a known format.
func (f Format) Validate() error {
	switch f {
	case FormatSVG, FormatPDF:
		return nil
	}
	return fmt.Errorf("%w: %q (must be svg or pdf)", ErrInvalidFormat, string(f))
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// ParseEngine parses s case-insensitively. Empty input yields DefaultEngine.
func ParseEngine(s string) (Engine, error) {
	e := Engine(normalize(s))
	if e == "" {
		return DefaultEngine, nil
	}
	return e, e.Validate()
}

// Validate returns ErrInvalidEngine if e is not a known engine.
func (e Engine) Validate() error {
	switch e {
	case EnginePDFLaTeX, EngineMathML:
		return nil
	}
	return fmt.Errorf("%w: %q (must be pdflatex or mathml)", ErrInvalidEngine, string(e))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Input describes one conversion batch.
// Zero-valued Style and Format fall back to their defaults.
type Input struct {
	Equations []string
	Style     Style
	Format    Format
	Keep      bool // retain intermediate files
}

// withDefaults returns a copy of in with empty enums defaulted.
func (in Input) withDefaults() Input {
	if in.Style == "" {
		in.Style = DefaultStyle
	}
	if in.Format == "" {
		in.Format = DefaultFormat
	}
	return in
}

// Validate checks the batch and enum values.
func (in Input) Validate() error {
	if len(in.Equations) == 0 {
		return ErrNoEquations
	}
	for i, eq := range in.Equations {
		if strings.TrimSpace(eq) == "" {
			return fmt.Errorf("%w: equation %d", ErrEmptyEquation, i+1)
		}
	}
	if err := in.Style.Validate(); err != nil {
		return err
	}
	return in.Format.Validate()
}

// Result lists the files produced by a conversion.
type Result struct {
	// Outputs holds the final files in equation order.
	Outputs []string
	// Intermediates holds the files retained on disk when Input.Keep is set.
	Intermediates []string
}

// Tools names the external executables. Empty fields use the defaults.
type Tools struct {
	PDFLaTeX    string
	PDFSeparate string
	PDF2SVG     string
}

// DefaultTools returns the executable names looked up on PATH.
func DefaultTools() Tools {
	return Tools{
		PDFLaTeX:    "pdflatex",
		PDFSeparate: "pdfseparate",
		PDF2SVG:     "pdf2svg",
	}
}

// withDefaults fills empty fields from DefaultTools.
func (t Tools) withDefaults() Tools {
	d := DefaultTools()
	if t.PDFLaTeX == "" {
		t.PDFLaTeX = d.PDFLaTeX
	}
	if t.PDFSeparate == "" {
		t.PDFSeparate = d.PDFSeparate
	}
	if t.PDF2SVG == "" {
		t.PDF2SVG = d.PDF2SVG
	}
	return t
}
