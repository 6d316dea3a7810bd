package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV"`
	Port        int    `envconfig:"PORT" default:"8080"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	AllowOrigin string `envconfig:"ALLOW_ORIGIN" default:"https://hdmovieshub.art"`

	Mongo struct {
		URI        string        `envconfig:"MONGO_URI" required:"true"`
		Database   string        `envconfig:"MONGO_DB"`
		Collection string        `envconfig:"MONGO_COLLECTION" default:"posts"`
		Timeout    time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}
	if strings.TrimSpace(cfg.Mongo.URI) == "" {
		return nil, fmt.Errorf("load config error: required key MONGO_URI missing value")
	}

	return cfg, nil
}

// IsLocal reports whether the process runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.AppEnv == "local"
}
