package eqn2vec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// populate creates the named files in dir.
func populate(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCleanup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		imagesProduced bool
		want           []string
	}{
		{"images produced removes split PDFs", true, []string{"eqn1.svg", "eqn2.svg", "notes.txt"}},
		{"pdf output keeps split PDFs", false, []string{"eqn1.pdf", "eqn1.svg", "eqn2.pdf", "eqn2.svg", "notes.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			populate(t, dir,
				"equations.tex", "equations.aux", "equations.log", "equations.out", "equations.pdf",
				"eqn1.pdf", "eqn2.pdf", "eqn1.svg", "eqn2.svg", "notes.txt")

			ws := NewWorkspace(dir, "")
			split := []string{ws.SplitPath(1), ws.SplitPath(2)}
			if err := Cleanup(ws, split, tt.imagesProduced); err != nil {
				t.Fatalf("Cleanup() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, listDir(t, dir)); diff != "" {
				t.Errorf("remaining files mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCleanup_Idempotent(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(t.TempDir(), "")
	populate(t, ws.Dir, "equations.tex")

	for i := 0; i < 2; i++ {
		if err := Cleanup(ws, []string{ws.SplitPath(1)}, true); err != nil {
			t.Fatalf("Cleanup() run %d unexpected error: %v", i+1, err)
		}
	}
}

func TestCleanup_JoinsErrors(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(t.TempDir(), "")
	populate(t, ws.Dir, "equations.tex")

	// A non-empty directory where a file is expected cannot be removed.
	blocker := filepath.Join(ws.Dir, "equations.aux")
	if err := os.MkdirAll(filepath.Join(blocker, "child"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := Cleanup(ws, nil, true); err == nil {
		t.Fatal("Cleanup() should report the failed removal")
	}
	if _, err := os.Stat(ws.TeXPath()); !os.IsNotExist(err) {
		t.Error("other files should still be removed")
	}
}
