package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: eqn2vec <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert LaTeX equations to SVG or PDF files")
	fmt.Fprintln(w, "  doctor     Check external tools and Chrome")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'eqn2vec help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: eqn2vec convert [flags] <equation>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each equation to its own file: <prefix>1.svg, <prefix>2.svg, ...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  equation    LaTeX math without delimiters, e.g. 'E = mc^2'")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <file>        Read equations from file, one per line (- for stdin)")
	fmt.Fprintln(w, "  -o, --output <dir>        Work and output directory (default: .)")
	fmt.Fprintln(w, "  -p, --prefix <s>          Output file name prefix (default: eqn)")
	fmt.Fprintln(w, "  -k, --keep                Keep intermediate files")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -f, --format <fmt>        Output format: svg, pdf (default: svg)")
	fmt.Fprintln(w, "  -s, --style <style>       Render style: inline, display (default: inline)")
	fmt.Fprintln(w, "  -e, --engine <engine>     Engine: pdflatex, mathml (default: pdflatex)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom templates and styles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Whole-run timeout, e.g. 30s, 2m (default: none)")
	fmt.Fprintln(w, "      --skip-check          Skip the external tool check")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show progress of each stage")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  EQN2VEC_CONFIG, EQN2VEC_FORMAT, EQN2VEC_ENGINE, EQN2VEC_STYLE,")
	fmt.Fprintln(w, "  EQN2VEC_OUTPUT_DIR, EQN2VEC_PREFIX, EQN2VEC_TIMEOUT, EQN2VEC_KEEP")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX (mathml engine)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  eqn2vec convert 'E = mc^2' 'a^2 + b^2 = c^2'")
	fmt.Fprintln(w, "  eqn2vec convert -s display -f pdf -o out -i equations.txt")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: eqn2vec doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that pdflatex, pdfseparate, pdf2svg and Chrome are available.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json    Print the report as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: eqn2vec version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: eqn2vec help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
