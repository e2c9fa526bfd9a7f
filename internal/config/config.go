package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Feed    FeedConfig    `yaml:"feed"`
	Webhook WebhookConfig `yaml:"webhook"`
	Whisper WhisperConfig `yaml:"whisper"`
	Git     GitConfig     `yaml:"git"`
	Paths   PathsConfig   `yaml:"paths"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type FeedConfig struct {
	URL         string `yaml:"url"`
	StatePath   string `yaml:"state_path"`
	HistoryPath string `yaml:"history_path"`
}

type WebhookConfig struct {
	URL string `yaml:"url"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Model      string `yaml:"model"`
}

type GitConfig struct {
	BaseBranch   string `yaml:"base_branch"`
	BranchPrefix string `yaml:"branch_prefix"`
	BotName      string `yaml:"bot_name"`
	BotEmail     string `yaml:"bot_email"`
}

type PathsConfig struct {
	Summaries string `yaml:"summaries"`
	Spool     string `yaml:"spool"`
	Temp      string `yaml:"temp"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file, layers environment overrides on top and
// applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadIfPresent behaves like Load but tolerates a missing file, starting
// from an empty config. The tools run fine on environment variables alone.
func LoadIfPresent(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// applyEnv layers the environment contract over file values. Environment
// wins so a scheduler can point one binary at different feeds.
func (c *Config) applyEnv() {
	if v := os.Getenv("RSS_URL"); v != "" {
		c.Feed.URL = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		c.Webhook.URL = v
	}
	// Legacy name from the first deployment of the watcher.
	if v := os.Getenv("KILO_WEBHOOK_URL"); v != "" {
		c.Webhook.URL = v
	}
	if v := os.Getenv("PODCAST_STATE_FILE"); v != "" {
		c.Feed.StatePath = v
	}
}

func (c *Config) Validate() error {
	if c.Feed.StatePath == "" {
		c.Feed.StatePath = ".podcast_state.json"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "base"
	}
	if c.Git.BaseBranch == "" {
		c.Git.BaseBranch = "main"
	}
	if c.Git.BranchPrefix == "" {
		c.Git.BranchPrefix = "ai/podcast-"
	}
	if c.Git.BotName == "" {
		c.Git.BotName = "Podcast Summary Bot"
	}
	if c.Git.BotEmail == "" {
		c.Git.BotEmail = "bot@podcast-summary.local"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "summaries"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8090"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}

// ValidateWatcher checks the settings the feed watcher cannot run without.
func (c *Config) ValidateWatcher() error {
	if c.Feed.URL == "" {
		return fmt.Errorf("feed.url is required (or set RSS_URL)")
	}
	if c.Webhook.URL == "" {
		return fmt.Errorf("webhook.url is required (or set WEBHOOK_URL)")
	}
	return nil
}

// ValidateServer checks the settings hookd cannot run without.
func (c *Config) ValidateServer() error {
	if c.Paths.Spool == "" {
		return fmt.Errorf("paths.spool is required for the webhook receiver")
	}
	return nil
}
