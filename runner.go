package eqn2vec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-eqn2vec/internal/process"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	// Run executes name with args in dir. An empty dir uses the current directory.
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The child runs in its own process group and the whole group is killed
// when ctx is done.
type ExecRunner struct{}

// waitDelay bounds how long Wait blocks on pipes after the group is killed.
const waitDelay = 2 * time.Second

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- tool names come from configuration
	cmd.Dir = dir
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// isNotFound reports whether err means the executable does not exist.
// A tool that runs and exits non-zero is still found.
func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// runError wraps a failed tool run with sentinel, preferring context and
// not-found errors so callers can tell them apart.
func runError(ctx context.Context, sentinel error, tool, stderr string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", tool, ctxErr)
	}
	if isNotFound(err) {
		return fmt.Errorf("%w: %s: %v", ErrToolNotFound, tool, err)
	}
	if msg := lastLines(stderr, 3); msg != "" {
		return fmt.Errorf("%w: %s: %v: %s", sentinel, tool, err, msg)
	}
	return fmt.Errorf("%w: %s: %v", sentinel, tool, err)
}

// lastLines returns the last n non-empty lines of s joined with "; ".
func lastLines(s string, n int) string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}

// logf writes a progress line. Write errors are ignored.
func logf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

// Compile-time interface check.
var _ CommandRunner = (*ExecRunner)(nil)
