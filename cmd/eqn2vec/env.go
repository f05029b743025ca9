package main

import (
	"io"
	"os"
	"time"

	eqn2vec "github.com/alnah/go-eqn2vec"
	"github.com/alnah/go-eqn2vec/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and the subprocess runner.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config        // Base config when no file is loaded
	Runner eqn2vec.CommandRunner // nil = real subprocesses
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
	}
}
