package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/sysparse/internal/logging"
)

const webUnit = `[Unit]
Description=Web daemon
After=network.target

[Service]
Type=simple
ExecStart=/usr/bin/web --port 8080
Restart=always

[Install]
WantedBy=multi-user.target
`

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func writeUnit(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
