// Package execx is the narrow seam between the build pipeline and the
// collaborator processes it drives (mepo, cmake, the Fortran compiler).
// Everything above this package deals in Command values, so the pipeline and
// the resolver can be exercised in tests without spawning a single process.
package execx

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external invocation.
type Command struct {
	// Name is the binary to run, resolved against PATH if not absolute.
	Name string
	// Args are the arguments, excluding the binary name itself.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is the full environment for the subprocess. A nil Env inherits
	// the parent environment unchanged.
	Env []string
}

// String renders the invocation the way a user would type it, for logs and
// dry-run output.
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(parts, " ")
}

// Runner executes external commands.
type Runner interface {
	// Run executes the command, streaming its output, and returns an error
	// on non-zero exit. The error carries the rendered command line.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its trimmed standard output.
	Output(ctx context.Context, cmd Command) (string, error)
}

// OSRunner is the production Runner backed by os/exec.
type OSRunner struct {
	// Stdout and Stderr receive the subprocess streams. Nil values default
	// to the parent's os.Stdout / os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r *OSRunner) Run(ctx context.Context, cmd Command) error {
	execCmd := r.build(ctx, cmd)
	execCmd.Stdout = r.Stdout
	if execCmd.Stdout == nil {
		execCmd.Stdout = os.Stdout
	}
	execCmd.Stderr = r.Stderr
	if execCmd.Stderr == nil {
		execCmd.Stderr = os.Stderr
	}
	if err := execCmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", cmd.String(), err)
	}
	return nil
}

// Output implements Runner.
func (r *OSRunner) Output(ctx context.Context, cmd Command) (string, error) {
	execCmd := r.build(ctx, cmd)
	out, err := execCmd.Output()
	if err != nil {
		return "", fmt.Errorf("command %q failed: %w", cmd.String(), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *OSRunner) build(ctx context.Context, cmd Command) *exec.Cmd {
	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir
	execCmd.Env = cmd.Env
	return execCmd
}
