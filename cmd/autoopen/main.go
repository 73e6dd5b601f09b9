package main

import (
	"fmt"
	"os"

	"autoopen/internal/errors"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the editor or folder was rejected, 1 otherwise
func exitCode(err error) int {
	if errors.IsInvalidConfig(err) {
		return 2
	}
	return 1
}
