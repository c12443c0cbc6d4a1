// Package config loads and stores the clip-to-notion user configuration.
//
// The configuration lives in a TOML file under the user's config directory
// and holds the Notion API key and the target database ID. Environment
// variables (optionally from a .env file) override the file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/clip-to-notion/core"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	dirName  = "clip-to-notion"
	fileName = "config.toml"

	EnvAPIKey     = "NOTION_API_KEY"
	EnvDatabaseID = "NOTION_DATABASE_ID"
)

// Config is the on-disk configuration.
type Config struct {
	DatabaseID   string `toml:"database_id"`
	NotionAPIKey string `toml:"notion_api_key"`
}

// MissingError is returned by Load when no configuration file exists.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("config file not found at %s", e.Path)
}

// Suggestion tells the user how to fix the error.
func (e *MissingError) Suggestion() string {
	return "run `clip-to-notion init` to create it"
}

// DefaultPath returns ~/.config/clip-to-notion/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", dirName, fileName), nil
}

// Exists reports whether a file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the configuration file at path and applies environment
// overrides.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Read reads the configuration file at path as stored, without
// environment overrides.
func Read(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, &MissingError{Path: path}
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not read configuration file at %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration file at %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
// The file holds a secret and is written with mode 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// LoadDotEnv loads a .env file from the working directory if one exists.
func LoadDotEnv() error {
	if !Exists(".env") {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.NotionAPIKey = v
	}
	if v := os.Getenv(EnvDatabaseID); v != "" {
		c.DatabaseID = v
	}
}

// Validate checks that both values are set.
func (c Config) Validate() error {
	if c.NotionAPIKey == "" {
		return fmt.Errorf("notion_api_key is empty")
	}
	if c.DatabaseID == "" {
		return fmt.Errorf("database_id is empty")
	}
	return nil
}

// Core returns the values the pipeline needs.
func (c Config) Core() core.Config {
	return core.Config{
		APIKey:     c.NotionAPIKey,
		DatabaseID: c.DatabaseID,
	}
}
