package main

import (
	"fmt"
	"io"
	"runtime/debug"
)

// finalizer restores the terminal before a crash report is printed
type finalizer interface {
	Close() error
}

// reportCrash restores the terminal and prints the panic with its stack
// Returns the process exit status
func reportCrash(r any, term finalizer, out io.Writer) int {
	if term != nil {
		_ = term.Close()
	}
	fmt.Fprintf(out, "\n\x1b[31mFRAMELOOP CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(out, "Stack Trace:\n%s\n", debug.Stack())
	return 1
}
