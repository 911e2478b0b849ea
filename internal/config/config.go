// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	PostgresDB       string `env:"POSTGRES_DB" envDefault:"accounts"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`

	JWTSecret            string        `env:"JWT_SECRET,required"`
	AuthTokenTTL         time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`
	RememberTokenTTL     time.Duration `env:"REMEMBER_TOKEN_TTL" envDefault:"168h"`
	VerificationTokenTTL time.Duration `env:"VERIFICATION_TOKEN_TTL" envDefault:"15m"`

	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	MailFromEmail  string `env:"MAIL_FROM_EMAIL" envDefault:"no-reply@localhost"`
	MailFromName   string `env:"MAIL_FROM_NAME" envDefault:"Accounts API"`
	PublicBaseURL  string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	S3Bucket    string `env:"S3_BUCKET" envDefault:"profile-pictures"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}
