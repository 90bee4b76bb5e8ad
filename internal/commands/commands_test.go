package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestActivateDue_EmptyStore(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "activate-due", "--date", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "No entries to complete.\n", out)
}

func TestActivateDue_BadDate(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "activate-due", "--date", "03/01/2024")
	assert.ErrorContains(t, err, "--date")
}

func TestMigrate_RequiresPostgres(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "postgres")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := execute(t, "activate-due")
	assert.ErrorContains(t, err, "storage.driver")
}

func TestServe_StopsWithContext(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SERVER_PORT", "0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, runServe(ctx, ""))
}
