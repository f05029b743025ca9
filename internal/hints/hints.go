// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-eqn2vec/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is the platform used to pick install commands. Tests override it.
var GOOS = runtime.GOOS

// installSources maps an external tool to the package that ships it.
var installSources = map[string]string{
	"pdflatex":    "TeX Live or MiKTeX",
	"pdfseparate": "poppler-utils",
	"pdf2svg":     "pdf2svg",
}

// ForMissingTool returns an install hint for an external executable.
// Unknown tools get a generic PATH hint.
func ForMissingTool(name string) string {
	source, ok := installSources[name]
	if !ok {
		return format("make sure " + name + " is installed and on PATH")
	}

	hint := "install " + source
	switch GOOS {
	case "darwin":
		switch name {
		case "pdflatex":
			hint += " (brew install --cask mactex-no-gui)"
		case "pdfseparate":
			hint += " (brew install poppler)"
		case "pdf2svg":
			hint += " (brew install pdf2svg)"
		}
	case "linux":
		switch name {
		case "pdflatex":
			hint += " (apt install texlive-latex-extra)"
		case "pdfseparate":
			hint += " (apt install poppler-utils)"
		case "pdf2svg":
			hint += " (apt install pdf2svg)"
		}
	}
	return format(hint)
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForCompileFailure points at the engine log, which survives a failed run.
func ForCompileFailure(logPath string) string {
	if logPath == "" {
		return format("check the equation markup for unbalanced braces or unknown commands")
	}
	return format("see " + logPath + " for the full LaTeX log")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large batches, use --timeout flag")
}

// ForWorkDirBusy explains how to recover from a stale lock.
func ForWorkDirBusy(lockPath string) string {
	return format("another run is using this directory; if none is, remove " + lockPath)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-eqn2vec/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-eqn2vec") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
