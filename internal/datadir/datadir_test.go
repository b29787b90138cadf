package datadir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "env-dir")
	t.Setenv(EnvVar, dir)

	got, err := Resolve("/should/not/be/used")
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolveConfigValue(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := filepath.Join(t.TempDir(), "cfg-dir")

	got, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestFilePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvVar, dir)

	got, err := FilePath("", "config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), got)
}
