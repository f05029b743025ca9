package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollectEquations(t *testing.T) {
	t.Parallel()

	t.Run("positional only", func(t *testing.T) {
		t.Parallel()
		got, err := collectEquations([]string{"a", "b"}, "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("file appended after positional", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "eqs.txt")
		content := "# Maxwell\n\\nabla \\cdot E = 0\n\n  x^2  \n#skip\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := collectEquations([]string{"a"}, path, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"a", `\nabla \cdot E = 0`, "x^2"}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		got, err := collectEquations(nil, "-", strings.NewReader("a\r\nb\r\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := collectEquations(nil, filepath.Join(t.TempDir(), "none.txt"), nil)
		if !errors.Is(err, ErrReadInput) {
			t.Errorf("error = %v, want ErrReadInput", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want it to wrap os.ErrNotExist", err)
		}
	})

	t.Run("line too long", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("x", maxLineSize+1)
		_, err := collectEquations(nil, "-", strings.NewReader(long))
		if !errors.Is(err, ErrReadInput) {
			t.Errorf("error = %v, want ErrReadInput", err)
		}
	})
}
