package alpaca

import (
	"fmt"
	"time"

	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/resilience"
	"github.com/kbukum/restkit/validation"
)

// Hosts of the Alpaca APIs.
const (
	PaperHost = "paper-api.alpaca.markets"
	LiveHost  = "api.alpaca.markets"
	DataHost  = "data.alpaca.markets"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = 200
)

// Config configures a Client. Credential keys follow the names Alpaca uses
// for its own environment variables, so APCA_API_KEY_ID and
// APCA_API_SECRET_KEY are picked up when loaded with the APCA prefix.
type Config struct {
	// Host is the trading API host. Defaults to the paper trading host.
	Host string `yaml:"host" mapstructure:"host" validate:"required,hostname_rfc1123|hostname_port"`
	// DataHost is the market data API host.
	DataHost string `yaml:"data_host" mapstructure:"data_host" validate:"required,hostname_rfc1123|hostname_port"`
	// Scheme is "https" unless talking to a local test server.
	Scheme string `yaml:"scheme" mapstructure:"scheme" validate:"oneof=http https"`

	KeyID     string `yaml:"api_key_id" mapstructure:"api_key_id" validate:"required"`
	SecretKey string `yaml:"api_secret_key" mapstructure:"api_secret_key" validate:"required"`

	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// RateLimit is the request quota per minute.
	RateLimit int `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
	// Retry enables retries of idempotent requests. Nil disables them.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
	TLS   *httpclient.TLSConfig   `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = PaperHost
	}
	if c.DataHost == "" {
		c.DataHost = DataHost
	}
	if c.Scheme == "" {
		c.Scheme = "https"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = defaultRateLimit
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("alpaca: %w", err)
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return fmt.Errorf("alpaca: %w", err)
		}
	}
	return nil
}

// Defaults returns the default values in the form accepted by
// config.WithDefaults.
func Defaults() map[string]any {
	return map[string]any{
		"host":       PaperHost,
		"data_host":  DataHost,
		"scheme":     "https",
		"timeout":    defaultTimeout,
		"rate_limit": defaultRateLimit,
	}
}

// String describes the configuration without credentials.
func (c Config) String() string {
	return fmt.Sprintf("alpaca.Config{host: %s, data_host: %s, scheme: %s, key_id: %s}",
		c.Host, c.DataHost, c.Scheme, redact(c.KeyID))
}

func redact(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "<redacted>"
}
