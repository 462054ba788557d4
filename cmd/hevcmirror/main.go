package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes unrecognized options (2) from every other failure
// (1), matching conventional getopt behaviour.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "unknown command") {
		return 2
	}
	return 1
}
