// Package config loads process settings from an optional YAML file, a .env
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"MACHCOST_ENV" env-default:"local"`
	LogLevel   string     `yaml:"log_level" env:"MACHCOST_LOG_LEVEL" env-default:"info"`
	DataDir    string     `yaml:"data_dir" env:"MACHCOST_DATA_DIR"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Store      Store      `yaml:"store"`
	Branding   Branding   `yaml:"branding"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"MACHCOST_HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout        time.Duration `yaml:"timeout" env:"MACHCOST_HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"MACHCOST_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"MACHCOST_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type Store struct {
	Backend       string `yaml:"backend" env:"MACHCOST_STORE_BACKEND" env-default:"file"`
	Path          string `yaml:"path" env:"MACHCOST_STORE_PATH"`
	RedisAddr     string `yaml:"redis_addr" env:"MACHCOST_REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"MACHCOST_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"MACHCOST_REDIS_DB" env-default:"0"`
	KeyPrefix     string `yaml:"key_prefix" env:"MACHCOST_REDIS_KEY_PREFIX" env-default:"machcost:"`
}

// Branding holds the optional ad placeholder identifiers shown when the
// user consented to optional content.
type Branding struct {
	AdClient string `yaml:"ad_client" env:"MACHCOST_AD_CLIENT" json:"ad_client"`
	AdSlot   string `yaml:"ad_slot" env:"MACHCOST_AD_SLOT" json:"ad_slot"`
	AdFormat string `yaml:"ad_format" env:"MACHCOST_AD_FORMAT" env-default:"auto" json:"ad_format"`
}

// Enabled reports whether an ad slot is configured.
func (b Branding) Enabled() bool {
	return b.AdClient != "" && b.AdSlot != ""
}

// Load reads .env (if present) into the environment, then the YAML file at
// path, or only the environment when path is empty. Derived paths are
// filled in relative to DataDir.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env: %w", err)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config from environment: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.DataDir = filepath.Join(home, ".machcost")
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(cfg.DataDir, "store.json")
	}
	return &cfg, nil
}

// QuotesPath is where saved quotes live.
func (c *Config) QuotesPath() string {
	return filepath.Join(c.DataDir, "quotes.json")
}

// AppConfigPath is where user preferences live.
func (c *Config) AppConfigPath() string {
	return filepath.Join(c.DataDir, "config.json")
}
