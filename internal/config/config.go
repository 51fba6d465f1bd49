// Package config loads studycore configuration from a YAML file with
// environment overrides. Zero values fall back to sensible defaults, so a
// missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quillview/studycore/internal/lexicon"
)

// Config holds all studycore configuration.
type Config struct {
	// DatabasePath is the SQLite file location.
	DatabasePath string `yaml:"database_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	LLM     LLMConfig     `yaml:"llm"`
	Lexicon LexiconConfig `yaml:"lexicon"`
}

// LLMConfig configures the Gemini content generator. With no API key the
// CLI falls back to the offline generator.
type LLMConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// LexiconConfig extends the built-in keyword tables.
type LexiconConfig struct {
	// TargetVariants maps a canonical target name ("notes", "flashcards",
	// "schedule", "fun") to extra surface forms.
	TargetVariants map[string][]string `yaml:"target_variants"`

	// Topics adds domain nouns the normalizer can correct toward.
	Topics []string `yaml:"topics"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DatabasePath: filepath.Join(home, ".studycore", "studycore.db"),
		LogLevel:     "warn",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".studycore", "config.yaml")
}

// Load reads the config file at path, merging it over defaults and then
// applying environment overrides. A missing file yields defaults plus
// overrides; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STUDYCORE_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("STUDYCORE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("STUDYCORE_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
}

// LexiconOptions converts the lexicon section into construction options.
func (c Config) LexiconOptions() lexicon.Options {
	return lexicon.Options{
		TargetVariants: c.Lexicon.TargetVariants,
		Topics:         c.Lexicon.Topics,
	}
}
