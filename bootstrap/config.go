package bootstrap

import (
	"github.com/kbukum/restkit/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig satisfies it through
// promoted methods, provided the embedding struct does not shadow them.
//
//	type CLIConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Alpaca alpaca.Config `yaml:"alpaca" mapstructure:"alpaca"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
