//go:build integration

package eqn2vec

// Notes:
// - Runs the real tools: pdflatex, pdfseparate and pdf2svg for the pdflatex
//   engine, and Chrome (via go-rod) for the mathml engine.
// - Each test skips when CheckEnvironment reports a missing tool, so the suite
//   stays green on machines with a partial install.
// - Run with: go test -tags integration ./...

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// testTimeout is the standard timeout for integration test operations.
const testTimeout = 2 * time.Minute

func requireTools(t *testing.T, engine Engine, format Format) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	if ok, statuses := CheckEnvironment(ctx, engine, format); !ok {
		t.Skipf("missing tools: %+v", statuses)
	}
}

func TestIntegration_PDFLaTeX(t *testing.T) {
	for _, format := range []Format{FormatPDF, FormatSVG} {
		t.Run(string(format), func(t *testing.T) {
			requireTools(t, EnginePDFLaTeX, format)

			dir := t.TempDir()
			conv, err := NewConverter(WithWorkDir(dir), WithTimeout(testTimeout))
			if err != nil {
				t.Fatal(err)
			}
			defer conv.Close()

			res, err := conv.Convert(context.Background(), Input{
				Equations: []string{`E = mc^2`, `S = \sum_{i=1}^n x_i`},
				Format:    format,
			})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}

			want := []string{"eqn1." + format.Ext(), "eqn2." + format.Ext()}
			if diff := cmp.Diff(want, listDir(t, dir)); diff != "" {
				t.Errorf("work dir mismatch (-want +got):\n%s", diff)
			}
			if format == FormatSVG {
				data, err := os.ReadFile(res.Outputs[0])
				if err != nil || !strings.Contains(string(data), "<svg") {
					t.Errorf("%s is not an SVG (%v)", res.Outputs[0], err)
				}
			}
		})
	}
}

func TestIntegration_PDFLaTeXCompileError(t *testing.T) {
	requireTools(t, EnginePDFLaTeX, FormatPDF)

	dir := t.TempDir()
	conv, err := NewConverter(WithWorkDir(dir))
	if err != nil {
		t.Fatal(err)
	}

	_, err = conv.Convert(context.Background(), Input{Equations: []string{`\undefinedmacro{x}`}, Format: FormatPDF})
	if err == nil || !strings.Contains(err.Error(), "Undefined control sequence") {
		t.Errorf("Convert() error = %v, want the LaTeX error", err)
	}
}

func TestIntegration_MathML(t *testing.T) {
	requireTools(t, EngineMathML, FormatPDF)

	dir := t.TempDir()
	conv, err := NewConverter(WithWorkDir(dir), WithEngine(EngineMathML), WithTimeout(testTimeout))
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()

	res, err := conv.Convert(context.Background(), Input{
		Equations: []string{`x^2 + y^2 = z^2`, `\frac{a}{b}`, `\sqrt{2}`},
		Style:     StyleDisplay,
		Format:    FormatPDF,
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if len(res.Outputs) != 3 {
		t.Fatalf("outputs = %v, want 3", res.Outputs)
	}
	for _, p := range res.Outputs {
		if n, err := countPages(p); err != nil || n != 1 {
			t.Errorf("%s: pages = %d (%v), want 1", p, n, err)
		}
	}
}
