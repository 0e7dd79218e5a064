// Package cmdutil provides generic command execution utilities for
// running external tools with context cancellation and captured output.
package cmdutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// DefaultTimeout is the default timeout for command execution.
const DefaultTimeout = 2 * time.Minute

// RunWithContext runs a command with the given context for cancellation.
// The command inherits environment variables, stdout, stderr, and stdin
// from the parent process.
func RunWithContext(ctx context.Context, name string, args []string, dir string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Env = os.Environ()

	return cmd.Run()
}

// RunCommandWithOutput runs a command and returns its combined output.
// The command inherits environment variables from the parent process.
func RunCommandWithOutput(ctx context.Context, name string, args []string, dir string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("command failed: %w", err)
	}

	return output, nil
}
