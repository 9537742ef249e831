package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kbukum/restkit/alpaca"
	"github.com/kbukum/restkit/config"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/version"
)

const (
	serviceName = "alpaca"
	envPrefix   = "APCA"
)

// cliConfig is the configuration of the alpaca command. The Alpaca settings
// sit at the top level so the standard APCA_API_KEY_ID and
// APCA_API_SECRET_KEY variables apply unchanged.
type cliConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	alpaca.Config        `yaml:",inline" mapstructure:",squash"`

	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

func (c *cliConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Config.ApplyDefaults()
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = version.Get().Short()
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
}

func (c *cliConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return c.Config.Validate()
}

func defaults() map[string]any {
	d := alpaca.Defaults()
	d["name"] = serviceName
	d["environment"] = "development"
	d["telemetry.insecure"] = true
	d["telemetry.sample_rate"] = 1.0
	d["telemetry.interval"] = observability.DefaultConfig(serviceName).Interval
	return d
}

// loadConfig reads config files and APCA_ environment variables, then
// applies the global flags on top.
func loadConfig(c *cli.Context) (*cliConfig, error) {
	opts := []config.LoaderOption{
		config.WithEnvPrefix(envPrefix),
		config.WithDefaults(defaults()),
	}
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	var cfg cliConfig
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("otlp-endpoint") {
		cfg.Telemetry.Endpoint = c.String("otlp-endpoint")
	}
	if c.Bool("live") {
		cfg.Host = alpaca.LiveHost
	}
	return &cfg, nil
}
