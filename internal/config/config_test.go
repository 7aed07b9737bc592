package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/cscheme/internal/config"
)

func TestNewDefault(t *testing.T) {
	cfg := config.NewDefault()
	assert.Equal(t, "cscheme> ", cfg.Prompt)
	assert.Equal(t, "", cfg.HistoryFile)
	assert.Equal(t, 0, cfg.MaxBacktraceDepth)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.NewDefault(), cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cscheme.yaml")
	contents := "prompt: \"debug> \"\nhistory_file: \".cscheme_history\"\nmax_backtrace_depth: 20\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug> ", cfg.Prompt)
	assert.Equal(t, ".cscheme_history", cfg.HistoryFile)
	assert.Equal(t, 20, cfg.MaxBacktraceDepth)
}

func TestLoadPartialYAMLKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cscheme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_backtrace_depth: 5\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cscheme> ", cfg.Prompt)
	assert.Equal(t, 5, cfg.MaxBacktraceDepth)
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cscheme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: [unterminated\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
