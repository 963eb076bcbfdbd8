package main

import (
	"context"
	"io"
	"os"
	"time"

	mailmerge "github.com/alnah/go-mailmerge"
)

// Converter is the subset of *mailmerge.Converter the CLI uses.
type Converter interface {
	Convert(ctx context.Context, job *mailmerge.Job) (*mailmerge.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*mailmerge.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Getenv and Environ read the process environment.
	Getenv  func(string) string
	Environ func() []string

	// NewConverter builds the rendering converter.
	NewConverter func(opts ...mailmerge.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		Environ:      os.Environ,
		NewConverter: newLibraryConverter,
	}
}

func newLibraryConverter(opts ...mailmerge.Option) (Converter, error) {
	return mailmerge.NewConverter(opts...)
}
