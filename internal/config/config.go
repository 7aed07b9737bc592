// Package config loads cscheme's optional runtime configuration: the
// debugger prompt, history file, and backtrace depth limit. Absent a
// config file, NewDefault's values are used; this mirrors how the
// ambient tooling of a small interpreter is usually just a handful of
// knobs rather than a layered configuration system.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the settings read from .cscheme.yaml, if present.
type Config struct {
	// Prompt is shown by the --debug REPL before each input line.
	Prompt string `yaml:"prompt"`
	// HistoryFile is where the --debug REPL persists line history
	// between sessions ("" disables history persistence).
	HistoryFile string `yaml:"history_file"`
	// MaxBacktraceDepth bounds how many frames a printed backtrace
	// shows after "BACKTRACE" (§6.1); 0 means unlimited.
	MaxBacktraceDepth int `yaml:"max_backtrace_depth"`
}

// NewDefault returns the configuration used when no file is found.
func NewDefault() *Config {
	return &Config{
		Prompt:            "cscheme> ",
		HistoryFile:       "",
		MaxBacktraceDepth: 0,
	}
}

// Load reads and parses a YAML config file at path. A missing file is
// not an error: Load returns NewDefault() unchanged.
func Load(path string) (*Config, error) {
	cfg := NewDefault()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
