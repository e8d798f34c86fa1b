package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string `env:"PORT" env-default:"8080"`
	AppEnv     string `env:"APP_ENV" env-default:"development"`
	AppURL     string `env:"APP_URL" env-default:"http://localhost:3000"`
	CORSOrigin string `env:"CORS_ORIGIN" env-default:"http://localhost:3000"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`

	DatabaseURL string `env:"DB_URL" env-required:"true"`
	JWTSecret   string `env:"JWT_SECRET" env-required:"true"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY" env-required:"true"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET" env-required:"true"`
	ProMonthlyPriceID   string `env:"STRIPE_PRO_MONTHLY_PRICE_ID"`
	ProYearlyPriceID    string `env:"STRIPE_PRO_YEARLY_PRICE_ID"`

	// When set, a checkout event that cannot be attributed to a profile is
	// answered with a server error so Stripe redelivers it, instead of being
	// dropped with an acknowledgement.
	StrictWebhookAttribution bool `env:"STRIPE_WEBHOOK_STRICT_ATTRIBUTION" env-default:"false"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}
