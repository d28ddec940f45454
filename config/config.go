package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	DBURL string `env:"DB_URL,required,notEmpty"`

	AccessTokenSecret  string `env:"ACCESS_TOKEN_SECRET,required,notEmpty"`
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET,required,notEmpty"`
	AccessExpiryMin    int    `env:"ACCESS_TOKEN_EXPIRY" envDefault:"15"`
	RefreshExpiryMin   int    `env:"REFRESH_TOKEN_EXPIRY" envDefault:"10080"`

	S3Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3Bucket        string `env:"S3_BUCKET" envDefault:"chai-assets"`
	S3AccessKey     string `env:"S3_ACCESS_KEY"`
	S3SecretKey     string `env:"S3_SECRET_KEY"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}
