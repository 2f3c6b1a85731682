// Package config loads the SATIM gateway configuration from the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds everything needed to talk to the SATIM gateway: merchant
// credentials, defaults applied to outgoing orders and HTTP client
// behavior. It is read-only after Load; the client never mutates it.
type Config struct {
	// APIURL is the gateway base URL. Test environment:
	// https://test2.satim.dz/payment/rest
	APIURL string `env:"SATIM_API_URL" envDefault:"https://test2.satim.dz/payment/rest"`

	// Merchant credentials provided by the bank.
	Username   string `env:"SATIM_USERNAME,required,notEmpty"`
	Password   string `env:"SATIM_PASSWORD,required,notEmpty"`
	TerminalID string `env:"SATIM_TERMINAL_ID,required,notEmpty"`

	// Language is the default hosted-page language: FR, EN or AR.
	Language string `env:"SATIM_LANGUAGE" envDefault:"fr"`

	// Currency is the default 3-digit ISO 4217 code. 012 is DZD.
	Currency string `env:"SATIM_CURRENCY" envDefault:"012"`

	VerifySSL      bool          `env:"SATIM_HTTP_VERIFY_SSL" envDefault:"false"`
	Timeout        time.Duration `env:"SATIM_HTTP_TIMEOUT" envDefault:"30s"`
	ConnectTimeout time.Duration `env:"SATIM_HTTP_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the environment, with an optional .env
// file in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse satim config: %w", err)
	}
	return cfg, nil
}
