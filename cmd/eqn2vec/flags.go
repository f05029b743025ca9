package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	format    string
	engine    string
	style     string
	output    string
	prefix    string
	input     string
	timeout   string
	assetPath string
	keep      bool
	skipCheck bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show progress of each stage")
}

// parseConvertFlags parses convert flags and returns the remaining
// positional arguments (the equations).
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.Usage = func() { printConvertUsage(os.Stderr) }

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.format, "format", "f", "", "output format: svg, pdf")
	fs.StringVarP(&f.engine, "engine", "e", "", "engine: pdflatex, mathml")
	fs.StringVarP(&f.style, "style", "s", "", "render style: inline, display")
	fs.BoolVarP(&f.keep, "keep", "k", false, "keep intermediate files")
	fs.StringVarP(&f.output, "output", "o", "", "work and output directory")
	fs.StringVarP(&f.prefix, "prefix", "p", "", "output file name prefix")
	fs.StringVarP(&f.input, "input", "i", "", "read equations from file, one per line (- for stdin)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "whole-run timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom templates and styles")
	fs.BoolVar(&f.skipCheck, "skip-check", false, "skip the external tool check")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
