package inchi

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner executes an external program with the given stdin.  A program that
// ran and exited non-zero is not an error: the exit code is returned instead.
type Runner interface {
	Run(ctx context.Context, path string, args []string, stdin []byte) (Output, error)
}

// Output is what a finished program produced.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, path string, args []string, stdin []byte) (Output, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		return out, err
	}
	return out, nil
}

//Personal.AI order the ending
