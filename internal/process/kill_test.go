package process

// Notes:
// - KillProcessGroup: we only test with an invalid PID to verify the function
//   doesn't panic. Real kill behavior is covered by the runner cancellation
//   test in the root package.
// - Cannot test with PID 0 (kills current process group) or real PIDs.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import (
	"os/exec"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestIsolate - Process group setup
// ---------------------------------------------------------------------------

func TestIsolate_DoesNotPanicOnFreshCmd(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("pdflatex", "--version")
	Isolate(cmd)
	Isolate(cmd) // idempotent
}
