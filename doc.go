// Package eqn2vec converts LaTeX equations to individual SVG or PDF files.
//
// # Quick Start
//
// Create a converter, convert a batch, and close when done:
//
//	conv, err := eqn2vec.NewConverter(eqn2vec.WithWorkDir("out"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, eqn2vec.Input{
//	    Equations: []string{`E = mc^2`, `S = \sum_{i=1}^n x_i`},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Outputs) // [out/eqn1.svg out/eqn2.svg]
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Document assembly: one equation per page of a standalone LaTeX document
//  2. Compilation to a multi-page PDF (pdflatex, or MathML via headless Chrome)
//  3. Page count verification
//  4. Splitting with pdfseparate, then pdf2svg for SVG output
//  5. Cleanup of intermediate files unless Input.Keep is set
//
// Output files are named <prefix><i>.<ext> with 1-based indices following
// input order. Intermediates use fixed names (equations.tex, equations.pdf),
// so a work directory is locked for the duration of a run.
//
// # Engines
//
// EnginePDFLaTeX runs pdflatex as a subprocess and supports all of LaTeX.
// EngineMathML converts each equation to MathML in-process and prints it
// with headless Chrome (go-rod); it needs no TeX installation but only
// covers the math subset understood by the converter.
//
// Use CheckEnvironment to report missing external tools before converting:
//
//	ok, tools := eqn2vec.CheckEnvironment(ctx, eqn2vec.EnginePDFLaTeX, eqn2vec.FormatSVG,
//	    eqn2vec.WithLogger(os.Stderr))
//
// # Browser Requirements
//
// EngineMathML requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Set ROD_NO_SANDBOX=1 in containers and ROD_BROWSER_BIN for a custom binary.
package eqn2vec
