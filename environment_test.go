package eqn2vec

// Notes:
// - CheckEnvironment is tested with fakeRunner; the browser lookup is replaced
//   with withBrowserFinder so no Chrome install is needed.
// - findBrowser with ROD_BROWSER_BIN uses t.Setenv, so those tests are not parallel.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func toolNames(statuses []ToolStatus) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.Name
	}
	return names
}

func TestCheckEnvironment_ProbesWhatTheRunNeeds(t *testing.T) {
	t.Parallel()

	found := func() (string, bool) { return "/usr/bin/chromium", true }

	tests := []struct {
		name   string
		engine Engine
		format Format
		want   []string
	}{
		{"pdflatex svg", EnginePDFLaTeX, FormatSVG, []string{"pdflatex", "pdfseparate", "pdf2svg"}},
		{"pdflatex pdf", EnginePDFLaTeX, FormatPDF, []string{"pdflatex", "pdfseparate"}},
		{"mathml svg", EngineMathML, FormatSVG, []string{"pdfseparate", "pdf2svg", Browser}},
		{"mathml pdf", EngineMathML, FormatPDF, []string{"pdfseparate", Browser}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, statuses := CheckEnvironment(context.Background(), tt.engine, tt.format,
				WithRunner(&fakeRunner{}), withBrowserFinder(found))
			if !ok {
				t.Errorf("CheckEnvironment() ok = false, want true: %+v", statuses)
			}
			if diff := cmp.Diff(tt.want, toolNames(statuses)); diff != "" {
				t.Errorf("probed tools mismatch (-want +got):\n%s", diff)
			}
			for _, s := range statuses {
				if !s.Found {
					t.Errorf("%s should be found", s.Name)
				}
			}
		})
	}
}

func TestCheckEnvironment_MissingTool(t *testing.T) {
	t.Parallel()

	var log bytes.Buffer
	runner := &fakeRunner{missing: map[string]bool{"pdf2svg": true}}

	ok, statuses := CheckEnvironment(context.Background(), EnginePDFLaTeX, FormatSVG,
		WithRunner(runner), WithLogger(&log))
	if ok {
		t.Fatal("CheckEnvironment() ok = true, want false")
	}

	last := statuses[len(statuses)-1]
	if last.Name != "pdf2svg" || last.Found {
		t.Errorf("pdf2svg status = %+v, want not found", last)
	}
	if !strings.Contains(last.Hint, "install pdf2svg") {
		t.Errorf("hint = %q, want install advice", last.Hint)
	}
	if !strings.HasPrefix(log.String(), "pdf2svg not found. Please install pdf2svg") {
		t.Errorf("log = %q", log.String())
	}
	if statuses[0].Version != "pdflatex version 1.0" {
		t.Errorf("pdflatex version = %q", statuses[0].Version)
	}
}

func TestCheckEnvironment_NonZeroExitCountsAsFound(t *testing.T) {
	t.Parallel()

	failing := runnerFunc(func(ctx context.Context, dir, name string, args ...string) (string, string, error) {
		return "", "usage: " + name, errExit1
	})

	ok, statuses := CheckEnvironment(context.Background(), EnginePDFLaTeX, FormatPDF, WithRunner(failing))
	if !ok {
		t.Errorf("tools that run are found even if they exit non-zero: %+v", statuses)
	}
	if statuses[1].Version != "usage: pdfseparate" {
		t.Errorf("version should fall back to stderr, got %q", statuses[1].Version)
	}
}

func TestCheckEnvironment_BrowserMissing(t *testing.T) {
	t.Parallel()

	var log bytes.Buffer
	ok, statuses := CheckEnvironment(context.Background(), EngineMathML, FormatPDF,
		WithRunner(&fakeRunner{}), WithLogger(&log),
		withBrowserFinder(func() (string, bool) { return "", false }))
	if ok {
		t.Fatal("CheckEnvironment() ok = true, want false")
	}
	if b := statuses[len(statuses)-1]; b.Name != Browser || b.Found || b.Hint == "" {
		t.Errorf("browser status = %+v", b)
	}
	if !strings.Contains(log.String(), "chrome not found") {
		t.Errorf("log = %q", log.String())
	}
}

func TestCheckEnvironment_CustomTools(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	CheckEnvironment(context.Background(), EnginePDFLaTeX, FormatPDF,
		WithRunner(runner), WithTools(Tools{PDFLaTeX: "/opt/tex/bin/pdflatex"}))

	want := []string{"/opt/tex/bin/pdflatex", "pdfseparate"}
	if diff := cmp.Diff(want, runner.names()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestFindBrowser_EnvOverride(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "chrome")
	if err := os.WriteFile(bin, nil, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ROD_BROWSER_BIN", bin)
	if path, ok := findBrowser(); !ok || path != bin {
		t.Errorf("findBrowser() = %q, %v; want %q, true", path, ok, bin)
	}

	t.Setenv("ROD_BROWSER_BIN", bin+"-missing")
	if _, ok := findBrowser(); ok {
		t.Error("findBrowser() should fail for a missing ROD_BROWSER_BIN")
	}
}

// runnerFunc adapts a function to CommandRunner.
type runnerFunc func(ctx context.Context, dir, name string, args ...string) (string, string, error)

func (f runnerFunc) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	return f(ctx, dir, name, args...)
}
