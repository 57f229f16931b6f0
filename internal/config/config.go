// Package config resolves the tool configuration from config files and
// CLI overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Similarity int    `json:"similarity"`      // subject similarity threshold in percent, 0..100; higher is more restrictive
	Color      string `json:"color,omitempty"` // "auto", "always" or "never"

	// EffectiveCwd is the absolute working directory (from -C flag or
	// os.Getwd), computed, not serialized.
	EffectiveCwd string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Similarity: 75,
		Color:      ColorAuto,
	}
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// FileName is the default project config file name.
const FileName = ".tododiff.json"

// fileConfig mirrors Config with pointer fields so a file can override
// a single option without resetting the others.
type fileConfig struct {
	Similarity *int    `json:"similarity"`
	Color      *string `json:"color"`
}

// globalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/tododiff/config.json if set, otherwise
// ~/.config/tododiff/config.json. Returns empty string if the home
// directory cannot be determined.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "tododiff", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "tododiff", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest
// wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/tododiff/config.json or ~/.config/tododiff/config.json)
// 3. Project config file at default location (.tododiff.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
//
// Per-run flags like --similarity override on top of the result; the
// commands apply those themselves because they are per-command flags.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	if path := globalConfigPath(input.Env); path != "" {
		loadedPath, err := applyConfigFile(&cfg, path, false)
		if err != nil {
			return Config{}, err
		}

		cfg.Sources.Global = loadedPath
	}

	projectPath := input.ConfigPath
	mustExist := true

	if projectPath == "" {
		projectPath = filepath.Join(workDir, FileName)
		mustExist = false
	} else if !filepath.IsAbs(projectPath) {
		projectPath = filepath.Join(workDir, projectPath)
	}

	loadedPath, err := applyConfigFile(&cfg, projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = loadedPath
	cfg.EffectiveCwd = workDir

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyConfigFile overlays the config file at path onto cfg. Missing
// optional files are skipped; the returned path is empty unless the
// file was actually loaded.
func applyConfigFile(cfg *Config, path string, mustExist bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		return "", nil
	}

	overlay, parseErr := parseConfig(data)
	if parseErr != nil {
		return "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	if overlay.Similarity != nil {
		cfg.Similarity = *overlay.Similarity
	}

	if overlay.Color != nil {
		cfg.Color = *overlay.Color
	}

	return path, nil
}

func parseConfig(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

// Validate checks option ranges. It also covers values injected by
// per-command flags.
func Validate(cfg Config) error {
	if cfg.Similarity < 0 || cfg.Similarity > 100 {
		return fmt.Errorf("%w: %d", ErrSimilarityRange, cfg.Similarity)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrBadColorMode, cfg.Color)
	}
}

// Format renders the resolved config as indented JSON for
// print-config.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot format config: %w", err)
	}

	return string(data), nil
}
