package eqn2vec

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWorkspacePaths(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace("out", "")
	tests := []struct {
		got, want string
	}{
		{ws.TeXPath(), filepath.Join("out", "equations.tex")},
		{ws.PDFPath(), filepath.Join("out", "equations.pdf")},
		{ws.HTMLPath(), filepath.Join("out", "equations.html")},
		{ws.LogPath(), filepath.Join("out", "equations.log")},
		{ws.LockPath(), filepath.Join("out", ".eqn2vec.lock")},
		{ws.SplitPath(12), filepath.Join("out", "eqn12.pdf")},
		{ws.SplitPattern(), "eqn%d.pdf"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("path = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestWorkspaceLock(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(t.TempDir(), "")

	unlock, err := ws.Lock()
	if err != nil {
		t.Fatalf("Lock() unexpected error: %v", err)
	}

	data, err := os.ReadFile(ws.LockPath())
	if err != nil || strings.TrimSpace(string(data)) == "" {
		t.Errorf("lock file should record the owner pid, got %q (%v)", data, err)
	}

	if _, err := ws.Lock(); !errors.Is(err, ErrWorkDirBusy) {
		t.Errorf("second Lock() error = %v, want ErrWorkDirBusy", err)
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock() unexpected error: %v", err)
	}
	if _, err := os.Stat(ws.LockPath()); !os.IsNotExist(err) {
		t.Error("lock file should be removed")
	}

	unlock, err = ws.Lock()
	if err != nil {
		t.Fatalf("Lock() after unlock: %v", err)
	}
	_ = unlock()
}

func TestWorkspaceLock_MissingDir(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(filepath.Join(t.TempDir(), "missing"), "")
	_, err := ws.Lock()
	if err == nil || errors.Is(err, ErrWorkDirBusy) {
		t.Errorf("Lock() error = %v, want an I/O error", err)
	}
}

func TestValidatePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix  string
		wantErr bool
	}{
		{"eqn", false},
		{"fig-", false},
		{"eq_", false},
		{"", true},
		{"a/b", true},
		{`a\b`, true},
		{"eq%d", true},
		{"..", true},
		{".", true},
		{"x\x00", true},
		{strings.Repeat("a", maxPrefixLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			t.Parallel()

			err := ValidatePrefix(tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePrefix(%q) error = %v, wantErr %v", tt.prefix, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPrefix) {
				t.Errorf("error should wrap ErrInvalidPrefix: %v", err)
			}
		})
	}
}
