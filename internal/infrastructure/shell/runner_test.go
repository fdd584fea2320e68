package shell_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sysparse/internal/infrastructure/shell"
)

func TestRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	out, err := shell.NewRunner().Run(context.Background(), "echo", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(out))
}

func TestRunner_MissingBinary(t *testing.T) {
	_, err := shell.NewRunner().Run(context.Background(), "sysparse-definitely-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestRunner_FailureIncludesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, err := shell.NewRunner().Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}
