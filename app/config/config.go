// Package config loads server settings from a YAML file and BLOG_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the server, storage and logging settings.
type Config struct {
	Addr        string `yaml:"addr" validate:"required"`
	DBPath      string `yaml:"dbPath" validate:"required_unless=InMemory true"`
	InMemory    bool   `yaml:"inMemory"`
	LogLevel    string `yaml:"logLevel" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
	MinifyHTML  bool   `yaml:"minifyHTML"`
	SiteTitle   string `yaml:"siteTitle" validate:"required"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Addr:       ":8080",
		DBPath:     "data/badger",
		LogLevel:   "info",
		MinifyHTML: true,
		SiteTitle:  "Blog",
	}
}

// Load reads path on top of the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"BLOG_ADDR":       &c.Addr,
		"BLOG_DB_PATH":    &c.DBPath,
		"BLOG_LOG_LEVEL":  &c.LogLevel,
		"BLOG_SITE_TITLE": &c.SiteTitle,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"BLOG_IN_MEMORY":   &c.InMemory,
		"BLOG_DEV":         &c.Development,
		"BLOG_MINIFY_HTML": &c.MinifyHTML,
	}
	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = b
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
