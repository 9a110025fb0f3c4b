package main

import (
	"fmt"
	"io"
	"strings"
)

// logger writes progress, warnings and errors to stderr
type logger struct {
	out     io.Writer
	verbose bool
}

func newLogger(out io.Writer, verbose bool) *logger {
	return &logger{out: out, verbose: verbose}
}

// Printf writes a progress line
func (l *logger) Printf(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Warnf writes a non-fatal problem
func (l *logger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.out, "warning: "+format+"\n", args...)
}

// Errorf writes a problem that affected the outcome of the run
func (l *logger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.out, "error: "+format+"\n", args...)
}

// Verbosef writes a line only in verbose mode
func (l *logger) Verbosef(format string, args ...any) {
	if l.verbose {
		fmt.Fprintf(l.out, format+"\n", args...)
	}
}

// Command logs an external command, only in verbose mode
func (l *logger) Command(name string, args ...string) {
	if l.verbose {
		fmt.Fprintf(l.out, "$ %s %s\n", name, strings.Join(args, " "))
	}
}
