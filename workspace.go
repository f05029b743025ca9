package eqn2vec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-eqn2vec/internal/fileutil"
)

// DefaultPrefix names outputs eqn1, eqn2, ...
const DefaultPrefix = "eqn"

// Fixed intermediate names.
const (
	documentBase = "equations"
	lockFileName = ".eqn2vec.lock"
)

// maxPrefixLength bounds the prefix so output names stay valid on all platforms.
const maxPrefixLength = 64

// Workspace locates the fixed-name files of a run inside Dir.
type Workspace struct {
	Dir    string
	Prefix string
}

// NewWorkspace returns a Workspace for dir. An empty prefix uses DefaultPrefix.
func NewWorkspace(dir, prefix string) Workspace {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Workspace{Dir: dir, Prefix: prefix}
}

func (w Workspace) path(name string) string { return filepath.Join(w.Dir, name) }

// TeXPath is the assembled LaTeX document.
func (w Workspace) TeXPath() string { return w.path(documentBase + ".tex") }

// PDFPath is the compiled multi-page document.
func (w Workspace) PDFPath() string { return w.path(documentBase + ".pdf") }

// HTMLPath is the MathML page document used by the mathml engine.
func (w Workspace) HTMLPath() string { return w.path(documentBase + ".html") }

// LogPath is the pdflatex log.
func (w Workspace) LogPath() string { return w.path(documentBase + ".log") }

// LockPath is the lock file guarding the directory.
func (w Workspace) LockPath() string { return w.path(lockFileName) }

// auxiliaryPaths are the pdflatex by-products.
func (w Workspace) auxiliaryPaths() []string {
	return []string{
		w.path(documentBase + ".aux"),
		w.LogPath(),
		w.path(documentBase + ".out"),
	}
}

// SplitPattern is the pdfseparate output pattern, relative to Dir.
func (w Workspace) SplitPattern() string { return w.Prefix + "%d.pdf" }

// SplitPath is the single-page PDF of the 1-based equation i.
func (w Workspace) SplitPath(i int) string {
	return w.path(w.Prefix + strconv.Itoa(i) + ".pdf")
}

// Lock creates the lock file exclusively. The returned func removes it.
// A second run in the same directory gets ErrWorkDirBusy.
func (w Workspace) Lock() (unlock func() error, err error) {
	f, err := fileutil.CreateExclusive(w.LockPath())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrWorkDirBusy, w.LockPath())
		}
		return nil, fmt.Errorf("creating lock file: %w", err)
	}
	_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_, _ = fileutil.RemoveIfExists(w.LockPath())
		return nil, fmt.Errorf("writing lock file: %w", err)
	}

	return func() error {
		_, err := fileutil.RemoveIfExists(w.LockPath())
		return err
	}, nil
}

// ValidatePrefix checks that prefix is usable as a file name stem and as a
// pdfseparate pattern.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPrefix)
	}
	if len(prefix) > maxPrefixLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidPrefix, maxPrefixLength)
	}
	if strings.ContainsAny(prefix, "/\\%\x00") {
		return fmt.Errorf("%w: %q contains a path separator, '%%' or NUL", ErrInvalidPrefix, prefix)
	}
	if prefix == "." || prefix == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	return nil
}
