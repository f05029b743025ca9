package eqn2vec

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCountPages(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 7} {
		path := filepath.Join(t.TempDir(), "doc.pdf")
		if err := os.WriteFile(path, minimalPDF(n), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := countPages(path)
		if err != nil {
			t.Fatalf("countPages() unexpected error: %v", err)
		}
		if got != n {
			t.Errorf("countPages() = %d, want %d", got, n)
		}
	}
}

func TestCountPages_Errors(t *testing.T) {
	t.Parallel()

	if _, err := countPages(filepath.Join(t.TempDir(), "missing.pdf")); !os.IsNotExist(err) {
		t.Errorf("missing file error = %v", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(garbage, bytes.Repeat([]byte("not a pdf "), 20), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := countPages(garbage); err == nil {
		t.Error("countPages() should reject a non-PDF file")
	}
}

func TestVerifyPageCount(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, minimalPDF(3), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	cfg := newConfig([]Option{WithLogger(&log)})

	if err := verifyPageCount(cfg, path, 3); err != nil {
		t.Errorf("matching count: unexpected error %v", err)
	}
	if err := verifyPageCount(cfg, path, 2); !errors.Is(err, ErrPageCountMismatch) {
		t.Errorf("error = %v, want ErrPageCountMismatch", err)
	}

	unreadable := filepath.Join(t.TempDir(), "bad.pdf")
	if err := os.WriteFile(unreadable, []byte(strings.Repeat("x", 200)), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := verifyPageCount(cfg, unreadable, 2); err != nil {
		t.Errorf("unparseable PDF should be left to the splitter, got %v", err)
	}
	if !strings.Contains(log.String(), "skipping page count check") {
		t.Errorf("log = %q, want a warning", log.String())
	}
}
