// ABOUTME: JSON-based settings for the snap-store MCP server
// ABOUTME: Loads ~/.snap-store-mcp/settings.json, then applies env overrides

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Settings holds server configuration. All fields are optional; zero values
// fall back to the snap package defaults.
type Settings struct {
	SnapPath       string `json:"snap_path,omitempty"`
	TimeoutMs      int    `json:"timeout_ms,omitempty"`
	MaxOutputBytes int    `json:"max_output_bytes,omitempty"`
	MaxConcurrent  int    `json:"max_concurrent,omitempty"`
	Verbose        bool   `json:"verbose,omitempty"`
}

// DefaultPath returns the default settings file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snap-store-mcp", "settings.json")
}

// Load reads settings from path (or the default location when path is empty)
// and applies SNAP_STORE_MCP_* environment overrides. A missing file is not
// an error.
func Load(path string) (Settings, error) {
	var s Settings

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("parsing %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return s, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	applyEnv(&s)
	return s, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("SNAP_STORE_MCP_SNAP_PATH"); v != "" {
		s.SnapPath = v
	}
	if n, ok := envInt("SNAP_STORE_MCP_TIMEOUT_MS"); ok {
		s.TimeoutMs = n
	}
	if n, ok := envInt("SNAP_STORE_MCP_MAX_OUTPUT_BYTES"); ok {
		s.MaxOutputBytes = n
	}
	if n, ok := envInt("SNAP_STORE_MCP_MAX_CONCURRENT"); ok {
		s.MaxConcurrent = n
	}
	if v := os.Getenv("SNAP_STORE_MCP_VERBOSE"); v == "1" || v == "true" {
		s.Verbose = true
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
