package main

// Notes:
// - toolRunner fakes pdflatex, pdfseparate and pdf2svg so the whole convert
//   command runs without TeX. Its compiled PDF is not parseable, so the
//   page count check is skipped and the split stage does the verification.
// - newTestEnv wires buffers and the fake runner into an Environment.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-eqn2vec/internal/config"
)

// ---------------------------------------------------------------------------
// toolRunner
// ---------------------------------------------------------------------------

type toolRunner struct {
	mu      sync.Mutex
	missing map[string]bool // tools reported as not installed
	fail    map[string]bool // tools exiting non-zero
	calls   []string
}

func newToolRunner() *toolRunner {
	return &toolRunner{missing: map[string]bool{}, fail: map[string]bool{}}
}

func (r *toolRunner) Run(_ context.Context, dir, name string, args ...string) (string, string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	r.mu.Unlock()

	if r.missing[name] {
		return "", "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	if len(args) == 1 && (args[0] == "--version" || args[0] == "-v") {
		return name + " version 1.0\n", "", nil
	}
	if r.fail[name] {
		return "", "fatal: something broke\n", errors.New("exit status 1")
	}

	switch name {
	case "pdflatex":
		return "", "", os.WriteFile(filepath.Join(dir, "equations.pdf"), []byte("%PDF-1.4\n"), 0o644)
	case "pdfseparate":
		tex, err := os.ReadFile(filepath.Join(dir, "equations.tex"))
		if err != nil {
			return "", "", err
		}
		pattern := args[len(args)-1]
		for i := 1; i <= strings.Count(string(tex), `\begin{page}`); i++ {
			name := strings.Replace(pattern, "%d", strconv.Itoa(i), 1)
			if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4\n"), 0o644); err != nil {
				return "", "", err
			}
		}
	case "pdf2svg":
		return "", "", os.WriteFile(filepath.Join(dir, args[1]), []byte("<svg/>"), 0o644)
	}
	return "", "", nil
}

// tools returns the tool name of each recorded call, in order.
func (r *toolRunner) tools() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = strings.SplitN(c, " ", 2)[0]
	}
	return names
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *toolRunner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	runner := newToolRunner()
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
			Stdin:  strings.NewReader(""),
			Stdout: stdout,
			Stderr: stderr,
			Config: config.DefaultConfig(),
			Runner: runner,
		},
		stdout: stdout,
		stderr: stderr,
		runner: runner,
	}
}

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

// clearEqn2vecEnv unsets EQN2VEC_* variables inherited from the shell.
func clearEqn2vecEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "EQN2VEC_") {
			name := strings.SplitN(kv, "=", 2)[0]
			t.Setenv(name, "")
		}
	}
}
