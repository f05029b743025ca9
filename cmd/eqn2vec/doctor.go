package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	eqn2vec "github.com/alnah/go-eqn2vec"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string               `json:"status"` // "ready", "warnings", "errors"
	Tools    []eqn2vec.ToolStatus `json:"tools"`
	Chrome   chromeInfo           `json:"chrome"`
	Env      envInfo              `json:"environment"`
	System   systemInfo           `json:"system"`
	Warnings []string             `json:"warnings,omitempty"`
	Errors   []string             `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable    bool `json:"temp_writable"`
	WorkDirWritable bool `json:"workdir_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(context.Background(), env.Runner)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks. A nil runner runs real programs.
func runDoctor(ctx context.Context, runner eqn2vec.CommandRunner) *doctorResult {
	if runner == nil {
		runner = &eqn2vec.ExecRunner{}
	}

	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkTools(ctx, runner, result)
	checkChrome(ctx, runner, result)
	checkEngines(result)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTools probes every external program either engine may need.
func checkTools(ctx context.Context, runner eqn2vec.CommandRunner, result *doctorResult) {
	_, statuses := eqn2vec.CheckEnvironment(ctx, eqn2vec.EnginePDFLaTeX, eqn2vec.FormatSVG,
		eqn2vec.WithRunner(runner))
	result.Tools = statuses

	for _, st := range statuses {
		if st.Found {
			continue
		}
		switch st.Name {
		case "pdfseparate":
			result.Errors = append(result.Errors,
				fmt.Sprintf("pdfseparate not found. Please %s", st.Hint))
		case "pdf2svg":
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("pdf2svg not found, only --format pdf is available. Please %s", st.Hint))
		}
	}
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(ctx context.Context, runner eqn2vec.CommandRunner, result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		// Use rod's launcher to locate Chrome
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			return
		}
	}

	// Verify it exists
	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s (ROD_BROWSER_BIN)", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	stdout, _, err := runner.Run(ctx, "", chromePath, "--version")
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(stdout)
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	// Sandbox status: disabled if ROD_NO_SANDBOX=1
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEngines reports which compilation engines can run.
// At least one of pdflatex or Chrome is required.
func checkEngines(result *doctorResult) {
	latex := toolFound(result.Tools, "pdflatex")
	chrome := result.Chrome.Found

	switch {
	case !latex && !chrome:
		result.Errors = append(result.Errors,
			"No engine available. Install TeX Live (pdflatex) or Chrome (--engine mathml)")
	case !latex:
		result.Warnings = append(result.Warnings,
			"pdflatex not found, only --engine mathml is available")
	case !chrome:
		result.Warnings = append(result.Warnings,
			"Chrome/Chromium not found, --engine mathml is unavailable. Install Chrome or set ROD_BROWSER_BIN")
	}
}

// toolFound reports whether the named tool was found.
func toolFound(statuses []eqn2vec.ToolStatus, name string) bool {
	for _, st := range statuses {
		if st.Name == name {
			return st.Found
		}
	}
	return false
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer()

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Only relevant when Chrome is used
	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("EQN2VEC_CONTAINER") == "1" {
		return true, "EQN2VEC_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies that intermediates can be written where a default
// run would put them.
func checkSystem(result *doctorResult) {
	result.System.TempWritable = dirWritable(os.TempDir())
	if !result.System.TempWritable {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
	}

	result.System.WorkDirWritable = dirWritable(".")
	if !result.System.WorkDirWritable {
		result.Warnings = append(result.Warnings,
			"Current directory not writable, pass --output to convert")
	}
}

// dirWritable creates and removes a probe file in dir.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".eqn2vec-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "eqn2vec doctor")
	fmt.Fprintln(w)

	var tools []string
	for _, st := range r.Tools {
		switch {
		case !st.Found:
			tools = append(tools, mark("MISSING", st.Name))
		case st.Version != "":
			tools = append(tools, mark("OK", st.Name+": "+st.Version))
		default:
			tools = append(tools, mark("OK", st.Name))
		}
	}
	printSection(w, "Tools", tools)

	var chrome []string
	if r.Chrome.Found {
		chrome = append(chrome, mark("OK", "Found at "+r.Chrome.Path))
		if r.Chrome.Version != "" {
			chrome = append(chrome, mark("OK", "Version: "+r.Chrome.Version))
		}
		if r.Chrome.Sandbox {
			chrome = append(chrome, mark("OK", "Sandbox: enabled"))
		} else {
			chrome = append(chrome, mark("OK", "Sandbox: disabled (ROD_NO_SANDBOX=1)"))
		}
	} else {
		chrome = append(chrome, mark("MISSING", "Not found (only needed for --engine mathml)"))
	}
	printSection(w, "Chrome/Chromium", chrome)

	env := []string{mark("OK", "Platform: "+r.Env.OS+"/"+r.Env.Arch)}
	if r.Env.Container {
		env = append(env, mark("OK", "Container: detected ("+r.Env.ContainerHint+")"))
	}
	if r.Env.CI {
		env = append(env, mark("OK", "CI: detected"))
	}
	printSection(w, "Environment", env)

	printSection(w, "System", []string{
		writableLine("Temp directory", r.System.TempWritable, "ERROR"),
		writableLine("Current directory", r.System.WorkDirWritable, "WARN"),
	})

	if len(r.Warnings) > 0 {
		printSection(w, "Warnings:", marks("WARN", r.Warnings))
	}
	if len(r.Errors) > 0 {
		printSection(w, "Errors:", marks("ERROR", r.Errors))
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printSection writes a titled block of lines followed by a blank line.
func printSection(w io.Writer, title string, lines []string) {
	fmt.Fprintln(w, title)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}

func mark(status, text string) string {
	return "  [" + status + "] " + text
}

func marks(status string, texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = mark(status, t)
	}
	return out
}

func writableLine(name string, ok bool, failStatus string) string {
	if ok {
		return mark("OK", name+": writable")
	}
	return mark(failStatus, name+": not writable")
}
