package eqn2vec

import (
	"context"
	"os"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-eqn2vec/internal/hints"
)

// ToolStatus reports whether one required program is reachable.
type ToolStatus struct {
	Name    string `json:"name"`
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Version string `json:"version,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// Browser is the ToolStatus name used for Chrome/Chromium.
const Browser = "chrome"

// toolProbe is one program and the argument that makes it print its version.
type toolProbe struct {
	name    string
	command string
	arg     string
}

// requiredTools lists the programs a run with engine and format needs.
// pdf2svg is only required for SVG output.
func requiredTools(engine Engine, format Format, tools Tools) []toolProbe {
	var probes []toolProbe
	if engine != EngineMathML {
		probes = append(probes, toolProbe{"pdflatex", tools.PDFLaTeX, "--version"})
	}
	probes = append(probes, toolProbe{"pdfseparate", tools.PDFSeparate, "-v"})
	if format == FormatSVG {
		probes = append(probes, toolProbe{"pdf2svg", tools.PDF2SVG, "--version"})
	}
	return probes
}

// CheckEnvironment probes the programs needed to convert with engine and
// format. Each missing program gets a line on the configured logger and an
// install hint in its status. It never fails the caller: the boolean is
// false when anything is missing.
//
// A program that runs but exits non-zero counts as found; only a failure to
// start it counts as missing.
func CheckEnvironment(ctx context.Context, engine Engine, format Format, opts ...Option) (bool, []ToolStatus) {
	cfg := newConfig(opts)
	ok := true
	var statuses []ToolStatus

	for _, p := range requiredTools(engine, format, cfg.tools) {
		st := ToolStatus{Name: p.name, Command: p.command, Found: true}
		stdout, stderr, err := cfg.runner.Run(ctx, "", p.command, p.arg)
		if err != nil && isNotFound(err) {
			st.Found = false
			st.Hint = strings.TrimPrefix(hints.ForMissingTool(p.name), "\n  hint: ")
			logf(cfg.logger, "%s not found. Please %s.", p.name, st.Hint)
			ok = false
		} else {
			st.Version = firstLine(stdout, stderr)
		}
		statuses = append(statuses, st)
	}

	if engine == EngineMathML {
		st := ToolStatus{Name: Browser}
		if path, found := cfg.findBrowser(); found {
			st.Command = path
			st.Found = true
		} else {
			st.Hint = "install Chrome or Chromium, or set ROD_BROWSER_BIN"
			logf(cfg.logger, "%s not found. Please %s.", Browser, st.Hint)
			ok = false
		}
		statuses = append(statuses, st)
	}

	return ok, statuses
}

// findBrowser locates Chrome, preferring ROD_BROWSER_BIN.
func findBrowser() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		if _, err := os.Stat(bin); err != nil {
			return bin, false
		}
		return bin, true
	}
	return launcher.LookPath()
}

// firstLine returns the first non-empty line of the given outputs.
// pdfseparate prints its version on stderr.
func firstLine(outputs ...string) string {
	for _, out := range outputs {
		for _, l := range strings.Split(out, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				return l
			}
		}
	}
	return ""
}
