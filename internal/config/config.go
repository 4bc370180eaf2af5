package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Config holds the tool settings read from outfitctl.jsonc. Fields not
// listed here are silently ignored during parsing.
type Config struct {
	// Scene is the path to the scene file, relative to the config file's
	// directory unless absolute. The --scene flag overrides it.
	Scene string `json:"scene,omitempty"`

	// CopyCurrentValue controls whether a new override without an
	// explicit --value starts from the shape key's current scene value
	// instead of zero.
	CopyCurrentValue bool `json:"copyCurrentValue"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		Scene:            "scene.yaml",
		CopyCurrentValue: true,
	}
}

// Load reads a config file, strips JSONC comments, and parses it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Strip // and /* */ comments and trailing commas before handing
	// the document to encoding/json.
	cleanJSON := jsonc.ToJSON(data)

	cfg := Default()
	if err := json.Unmarshal(cleanJSON, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config at %s: %w", path, err)
	}
	return cfg, nil
}

// Find searches dir for a config file in priority order:
//
//  1. <dir>/outfitctl.jsonc
//  2. <dir>/.outfitctl.jsonc
//
// Returns "" when neither exists.
func Find(dir string) string {
	candidates := []string{
		filepath.Join(dir, "outfitctl.jsonc"),
		filepath.Join(dir, ".outfitctl.jsonc"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadOrDefault loads the config file found in dir, or returns
// Default() when there is none. A file that exists but fails to parse
// is still an error; silently ignoring a broken config would be worse
// than failing.
func LoadOrDefault(dir string) (*Config, error) {
	path := Find(dir)
	if path == "" {
		return Default(), nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Relative scene paths are resolved against the config file's
	// directory, so the tool behaves the same from any working dir.
	if cfg.Scene != "" && !filepath.IsAbs(cfg.Scene) {
		cfg.Scene = filepath.Join(dir, cfg.Scene)
	}
	return cfg, nil
}
