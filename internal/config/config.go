package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	RedisAddr     string        `yaml:"redis_addr"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("SKILLSWAP_ADDR", ":8080"),
		JWTSecret:     getEnv("SKILLSWAP_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("SKILLSWAP_DATABASE_PATH", "skillswap.db"),
		TokenDuration: 24 * time.Hour,
		RedisAddr:     getEnv("SKILLSWAP_REDIS_ADDR", ""),
		SweepInterval: time.Minute,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach production. The
// default JWT secret is only tolerated when SKILLSWAP_ENV=development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.SweepInterval < time.Second {
		return fmt.Errorf("sweep_interval too small: %s", c.SweepInterval)
	}
	env := strings.ToLower(os.Getenv("SKILLSWAP_ENV"))
	if c.JWTSecret == insecureJWTSecret && env != "development" {
		return fmt.Errorf("refusing to run with the default jwt_secret outside development")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
