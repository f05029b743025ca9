package eqn2vec

// Notes:
// - fakeRunner stands in for pdflatex, pdfseparate and pdf2svg. It writes the
//   files the real tools would write so the pipeline's file checks and the
//   rsc.io/pdf page count run against real bytes.
// - minimalPDF builds a valid uncompressed PDF with exact xref offsets.
// - withCompiler and withBrowserFinder are internal test options.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-eqn2vec/internal/assets"
)

// ---------------------------------------------------------------------------
// Internal Test Options
// ---------------------------------------------------------------------------

func withCompiler(c Compiler) Option {
	return func(cfg *converterConfig) {
		cfg.compiler = c
	}
}

func withBrowserFinder(f func() (string, bool)) Option {
	return func(cfg *converterConfig) {
		cfg.findBrowser = f
	}
}

// ---------------------------------------------------------------------------
// minimalPDF
// ---------------------------------------------------------------------------

// minimalPDF returns a valid PDF document with the given number of blank pages.
func minimalPDF(pages int) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = strconv.Itoa(3+i) + " 0 R"
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		writeObj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 40 20] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// fakeRunner
// ---------------------------------------------------------------------------

type runCall struct {
	Dir  string
	Name string
	Args []string
}

// fakeRunner simulates the external tools by name.
type fakeRunner struct {
	mu    sync.Mutex
	calls []runCall

	missing    map[string]bool  // tools that fail to start
	fail       map[string]error // tools that exit non-zero
	stderr     string           // stderr returned with a failure
	failLog    string           // equations.log written when pdflatex fails
	extraPages int              // pages pdflatex adds beyond the document's
	skipOutput map[string]bool  // tools that succeed without writing files
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, runCall{Dir: dir, Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if f.missing[name] {
		return "", "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	if len(args) == 1 && (args[0] == "--version" || args[0] == "-v") {
		return name + " version 1.0\n", "", nil
	}
	if err := f.fail[name]; err != nil {
		if name == "pdflatex" && f.failLog != "" {
			_ = os.WriteFile(filepath.Join(dir, "equations.log"), []byte(f.failLog), 0o644)
		}
		return "", f.stderr, err
	}
	if f.skipOutput[name] {
		return "", "", nil
	}

	switch filepath.Base(name) {
	case "pdflatex":
		return "", "", f.pdflatex(dir, args[len(args)-1])
	case "pdfseparate":
		return "", "", f.pdfseparate(dir, args[0], args[1])
	case "pdf2svg":
		return "", "", os.WriteFile(filepath.Join(dir, args[1]), []byte("<svg/>"), 0o644)
	}
	return "", "", nil
}

func (f *fakeRunner) pdflatex(dir, texName string) error {
	tex, err := os.ReadFile(filepath.Join(dir, texName))
	if err != nil {
		return err
	}
	pages := strings.Count(string(tex), `\begin{page}`) + f.extraPages
	base := strings.TrimSuffix(texName, ".tex")
	for _, ext := range []string{".aux", ".log"} {
		if err := os.WriteFile(filepath.Join(dir, base+ext), []byte("log"), 0o644); err != nil {
			return err
		}
	}
	return os.WriteFile(filepath.Join(dir, base+".pdf"), minimalPDF(pages), 0o644)
}

func (f *fakeRunner) pdfseparate(dir, pdfName, pattern string) error {
	n, err := countPages(filepath.Join(dir, pdfName))
	if err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		p := filepath.Join(dir, fmt.Sprintf(pattern, i))
		if err := os.WriteFile(p, minimalPDF(1), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// names returns the tool names called, in order.
func (f *fakeRunner) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Name
	}
	return out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// listDir returns the sorted file names in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// baseNames strips directories from paths.
func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

var errExit1 = errors.New("exit status 1")

func mustEmbedded() assets.AssetLoader {
	return assets.NewEmbeddedLoader()
}
