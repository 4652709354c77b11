package prebuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesSequentially(t *testing.T) {
	dir := t.TempDir()
	err := Run(context.Background(), dir, []string{
		"echo one > order.txt",
		"echo two >> order.txt",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "order.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	err := Run(context.Background(), dir, []string{
		"exit 3",
		"echo reached > after.txt",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit 3")
	assert.NoFileExists(t, filepath.Join(dir, "after.txt"))
}

func TestRunNoCommands(t *testing.T) {
	assert.NoError(t, Run(context.Background(), t.TempDir(), nil))
}
