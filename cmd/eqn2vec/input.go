package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrReadInput is returned when the equation list cannot be read.
var ErrReadInput = errors.New("failed to read equations")

// maxLineSize bounds one equation line read from a file or stdin.
const maxLineSize = 1 << 20

// collectEquations returns the positional equations followed by those read
// from inputPath ("-" reads stdin). Blank lines and lines starting with '#'
// are skipped.
func collectEquations(positional []string, inputPath string, stdin io.Reader) ([]string, error) {
	equations := append([]string(nil), positional...)
	if inputPath == "" {
		return equations, nil
	}

	var r io.Reader
	if inputPath == "-" {
		r = stdin
	} else {
		f, err := os.Open(inputPath) // #nosec G304 -- user-provided input file
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		defer f.Close()
		r = f
	}

	fromFile, err := readEquations(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, inputPath, err)
	}
	return append(equations, fromFile...), nil
}

// readEquations reads one equation per line.
func readEquations(r io.Reader) ([]string, error) {
	var equations []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		equations = append(equations, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return equations, nil
}
