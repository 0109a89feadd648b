package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"root"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"root"`
	DBName     string `env:"DB_NAME" envDefault:"conproject"`

	HTTPAddr     string `env:"HTTP_ADDR" envDefault:":8080"`
	GinMode      string `env:"GIN_MODE" envDefault:"debug"`
	JWTSecretKey string `env:"JWT_SECRET_KEY" envDefault:"default-secret-key"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.DBDriver != "mysql" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return &cfg, nil
}
