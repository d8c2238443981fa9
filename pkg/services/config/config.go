// Package config loads settings from an optional YAML file and REPORTS_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "REPORTS"

type S3 struct {
	Bucket      string `mapstructure:"bucket"`
	Profile     string `mapstructure:"profile"`
	Region      string `mapstructure:"region"`
	PageSize    int32  `mapstructure:"page_size"`
	Concurrency int    `mapstructure:"concurrency"`
}

type Paths struct {
	PDF    string `mapstructure:"pdf"`
	Text   string `mapstructure:"text"`
	JSON   string `mapstructure:"json"`
	Output string `mapstructure:"output"`
}

type DB struct {
	Path string `mapstructure:"path"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Config struct {
	S3       S3     `mapstructure:"s3"`
	Paths    Paths  `mapstructure:"paths"`
	DB       DB     `mapstructure:"db"`
	Server   Server `mapstructure:"server"`
	LogLevel string `mapstructure:"log_level"`
	Workers  int    `mapstructure:"workers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("s3.page_size", 100)
	v.SetDefault("s3.concurrency", 8)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("paths.pdf", "reports")
	v.SetDefault("paths.text", "text")
	v.SetDefault("paths.json", "json")
	v.SetDefault("paths.output", "output")
	v.SetDefault("db.path", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("workers", 4)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.profile", "")
}

// Load reads path when it is set; environment variables override the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.S3.PageSize < 1 {
		errs = append(errs, fmt.Errorf("s3.page_size must be positive, got %d", c.S3.PageSize))
	}
	if c.S3.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("s3.concurrency must be positive, got %d", c.S3.Concurrency))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
