package execx

import (
	"context"
	"fmt"
)

// FakeRunner records every Command it receives and replies from canned
// results. It exists for tests of the packages built on top of Runner.
type FakeRunner struct {
	// Calls accumulates each command passed to Run or Output, in order.
	Calls []Command

	// Outputs maps a command name to the string Output returns for it.
	Outputs map[string]string

	// Errs maps a command name to the error Run/Output return for it.
	Errs map[string]error
}

// Run implements Runner.
func (f *FakeRunner) Run(ctx context.Context, cmd Command) error {
	f.Calls = append(f.Calls, cmd)
	if err, ok := f.Errs[cmd.Name]; ok {
		return fmt.Errorf("command %q failed: %w", cmd.String(), err)
	}
	return nil
}

// Output implements Runner.
func (f *FakeRunner) Output(ctx context.Context, cmd Command) (string, error) {
	f.Calls = append(f.Calls, cmd)
	if err, ok := f.Errs[cmd.Name]; ok {
		return "", fmt.Errorf("command %q failed: %w", cmd.String(), err)
	}
	return f.Outputs[cmd.Name], nil
}
