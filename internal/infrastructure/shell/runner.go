// Package shell runs external commands for the application layer.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/sysparse/internal/application/port"
	"github.com/bnema/sysparse/internal/logging"
)

// Runner implements port.CommandRunner with os/exec.
type Runner struct{}

var _ port.CommandRunner = (*Runner)(nil)

// NewRunner creates a command runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes name with args and returns its standard output.
// Standard error is folded into the returned error on failure.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	log := logging.FromContext(ctx)

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr

	log.Debug().Str("cmd", name).Strs("args", args).Msg("running command")

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
