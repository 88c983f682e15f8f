package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr            string `envconfig:"ADDR" default:":8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	MailerFrom      string `envconfig:"MAILER_FROM" default:"orders@storefront.local"`
	MailerQueueSize int    `envconfig:"MAILER_QUEUE_SIZE" default:"64"`
}

// Load reads configuration from environment variables, applying .env first
// when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("storefront", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
