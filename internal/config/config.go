package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const DefaultExportDir = "exports"

// Config is assembled once at process start and passed down by value;
// nothing reads the environment after Load returns.
type Config struct {
	AccessToken string
	BaseURL     string
	APIKey      string
	Model       string
	Editor      string
	ExportDir   string
}

type fileConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	Editor    string `mapstructure:"editor"`
	ExportDir string `mapstructure:"export_dir"`
}

// Load merges the optional config file with environment variables.
// Environment wins; flag overrides are applied later by the command layer.
func Load() (Config, error) {
	cfg := Config{ExportDir: DefaultExportDir}

	if err := loadFile(&cfg); err != nil {
		return cfg, err
	}

	cfg.AccessToken = envOr("BEEPER_ACCESS_TOKEN", cfg.AccessToken)
	cfg.BaseURL = envOr("BEEPER_BASE_URL", cfg.BaseURL)
	cfg.APIKey = envOr("OPENROUTER_API_KEY", cfg.APIKey)
	cfg.Model = envOr("OPENROUTER_MODEL", cfg.Model)
	cfg.Editor = envOr("EDITOR", cfg.Editor)
	cfg.ExportDir = envOr("CHAT_TRIAGE_EXPORT_DIR", cfg.ExportDir)

	return cfg, nil
}

// Validate checks the settings a run needs up front. Tokens and API keys are
// never fetched lazily; a missing one fails before any network call.
func (c Config) Validate(needLLM bool, model string) error {
	if c.AccessToken == "" {
		return fmt.Errorf("BEEPER_ACCESS_TOKEN is not set")
	}
	if needLLM {
		if model == "" {
			return fmt.Errorf("OPENROUTER_MODEL or --model is required")
		}
		if c.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is not set")
		}
	}
	return nil
}

func loadFile(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, ".config", "chat-triage", "config.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.Editor != "" {
		cfg.Editor = fc.Editor
	}
	if fc.ExportDir != "" {
		cfg.ExportDir = fc.ExportDir
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
