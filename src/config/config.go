// Package config provides configuration management for build-chat.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Flag is a boolean switch that is on only for the exact value "true".
type Flag bool

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Flag) UnmarshalText(text []byte) error {
	*f = Flag(string(text) == "true")
	return nil
}

// Config holds the application configuration.
type Config struct {
	// Token and GitHubTokenAlt authenticate against GitHub. Anonymous when both are empty.
	Token          string `env:"token"`
	GitHubTokenAlt string `env:"github_token"`

	// ADOUser and ADOPass are the build server basic auth pair, used only together.
	ADOUser string `env:"ado_user"`
	ADOPass string `env:"ado_pass"`

	// WorkflowRunURL is the build detail resource of the triggering build.
	WorkflowRunURL string `env:"workflow_run_url,required,notEmpty"`

	SlackToken          string `env:"slack_token"`
	NotifyAuthors       Flag   `env:"notify_authors"`
	NotificationChannel string `env:"notification_channel"`
	LogChannel          string `env:"log_channel"`
	ConsoleLog          Flag   `env:"console_log"`

	StorageConnectionString string `env:"storage_connection_string"`
	AccountsPostgresDSN     string `env:"accounts_postgres_dsn"`

	LogLevel     string        `env:"log_level" envDefault:"info"`
	HTTPTimeout  time.Duration `env:"http_timeout" envDefault:"30s"`
	GitHubAPIURL string        `env:"github_api_url" envDefault:"https://api.github.com"`
	SlackAPIURL  string        `env:"slack_api_url"`
}

// Load parses the configuration from environ, a list of "key=value" pairs
// as returned by os.Environ.
func Load(environ []string) (*Config, error) {
	var cfg Config

	err := env.ParseWithOptions(&cfg, env.Options{
		Environment: env.ToMap(environ),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("failed to load configuration: http_timeout must be positive, got %s", cfg.HTTPTimeout)
	}

	return &cfg, nil
}

// GitHubToken returns the GitHub credential, preferring token over github_token.
func (c *Config) GitHubToken() string {
	if c.Token != "" {
		return c.Token
	}
	return c.GitHubTokenAlt
}
