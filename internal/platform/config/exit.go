package config

import (
	"fmt"
	"os"
)

// Exitf prints the message to stderr with a trailing newline and exits
// with status 1. Entry points call it for fatal startup errors; deferred
// cleanup does not run.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
