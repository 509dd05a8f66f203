package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/project/lms/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrateCommand_Args(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "No direction", args: []string{"migrate"}, wantErr: true},
		{name: "Unknown direction", args: []string{"migrate", "sideways"}, wantErr: true},
		{name: "Too many", args: []string{"migrate", "up", "down"}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			root := newRootCommand(&config.Config{}, zap.NewNop())
			root.SetArgs(test.args)
			err := root.Execute()
			require.Equal(t, test.wantErr, err != nil)
		})
	}
}

func TestUserCreateCommand_InvalidRole(t *testing.T) {
	t.Parallel()

	root := newRootCommand(&config.Config{}, zap.NewNop())
	root.SetArgs([]string{"user", "create", "--username", "ann", "--email", "ann@example.com",
		"--role", "admin", "--password", "longenough"})
	require.ErrorContains(t, root.Execute(), "unknown role")
}

func TestNewFileLogger(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "library.log")
	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)

	stdout, err := NewFileLogger("")
	require.NoError(t, err)
	require.NotNil(t, stdout)
}
