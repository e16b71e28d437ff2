// Package config loads server configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the flat COBRA server configuration.
type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	DBPath     string `mapstructure:"db_path"`

	// Outbound chat relay knobs.
	RelayMaxAttempts int           `mapstructure:"relay_max_attempts"`
	RelayBaseDelay   time.Duration `mapstructure:"relay_base_delay"`
	RelayMaxDelay    time.Duration `mapstructure:"relay_max_delay"`

	TeamsWebhookURL string `mapstructure:"teams_webhook_url"`
	GroupMeBotID    string `mapstructure:"groupme_bot_id"`
	GroupMePostURL  string `mapstructure:"groupme_post_url"`
}

// Load reads cobra.yaml from the given directory (or the default data dir
// when dir is empty), overlaying COBRA_* environment variables. A missing
// config file is not an error; defaults apply.
func Load(dir string) (*Config, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDataDir()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigName("cobra")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("COBRA")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", filepath.Join(dir, "cobra.db"))
	v.SetDefault("relay_max_attempts", 4)
	v.SetDefault("relay_base_delay", 500*time.Millisecond)
	v.SetDefault("relay_max_delay", 8*time.Second)
	v.SetDefault("groupme_post_url", "https://api.groupme.com/v3/bots/post")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// DefaultDataDir returns the default directory for the database and config.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cobra"), nil
}
