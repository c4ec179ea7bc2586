package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env                string        `envconfig:"APP_ENV" default:"development"`
	HTTPAddr           string        `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL        string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret          string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL             time.Duration `envconfig:"JWT_TTL" default:"24h"`
	CORSAllowedOrigins string        `envconfig:"CORS_ALLOWED_ORIGINS"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
