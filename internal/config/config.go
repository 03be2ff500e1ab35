// Package config loads the devsite settings from defaults, an optional
// config file, DEVSITE_ environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "DEVSITE"

const (
	SourceFS     = "fs"
	SourceSQLite = "sqlite"
	SourceGithub = "github"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type Config struct {
	Source     string       `mapstructure:"source"`
	ContentDir string       `mapstructure:"content_dir"`
	SQLitePath string       `mapstructure:"sqlite_path"`
	Github     GithubConfig `mapstructure:"github"`
	OutputDir  string       `mapstructure:"output_dir"`
	Port       int          `mapstructure:"port"`
	LogLevel   string       `mapstructure:"log_level"`
	LogFormat  string       `mapstructure:"log_format"`
}

type GithubConfig struct {
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
	// Ref is a branch, tag or commit. Empty reads the default branch.
	Ref   string `mapstructure:"ref"`
	Dir   string `mapstructure:"dir"`
	Token string `mapstructure:"token"`
}

// SetDefaults registers every key with viper. Keys without a default must
// still be registered for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source", SourceFS)
	v.SetDefault("content_dir", "content/posts")
	v.SetDefault("sqlite_path", "./devsite.db")
	v.SetDefault("github.owner", "")
	v.SetDefault("github.repo", "")
	v.SetDefault("github.ref", "")
	v.SetDefault("github.dir", "content/posts")
	v.SetDefault("github.token", "")
	v.SetDefault("output_dir", "public")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", LogFormatJSON)
}

// Load resolves the configuration. cfgFile is optional; without it a
// config.yaml in the working directory is used when present.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Source {
	case SourceFS:
		if c.ContentDir == "" {
			return errors.New("content_dir must be set for the fs source")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite_path must be set for the sqlite source")
		}
	case SourceGithub:
		if c.Github.Owner == "" || c.Github.Repo == "" {
			return errors.New("github.owner and github.repo must be set for the github source")
		}
	default:
		return fmt.Errorf("unknown source %q: want %s, %s or %s", c.Source, SourceFS, SourceSQLite, SourceGithub)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	switch c.LogFormat {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("unknown log_format %q: want %s or %s", c.LogFormat, LogFormatJSON, LogFormatConsole)
	}

	return nil
}
