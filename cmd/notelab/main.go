// Package main is the entry point for the notelab CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/notelab/notelab-cli/internal/cli"
	"github.com/notelab/notelab-cli/internal/output"
)

// errPanicRecovered is returned when a panic is recovered during execution.
var errPanicRecovered = errors.New("panic recovered")

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			output.Error(fmt.Sprintf("Fatal error: %v\n%s", r, debug.Stack()))
			err = fmt.Errorf("%w: %v", errPanicRecovered, r)
		}
	}()

	err = cli.ExecuteWithContext(context.Background())
	if err != nil {
		output.Error(err.Error())
	}
	return err
}
