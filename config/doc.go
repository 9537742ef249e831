// Package config loads service configuration with Viper.
//
// Values come from a YAML file, a .env file loaded with godotenv, and the
// process environment, in increasing order of precedence. Environment
// variables are matched after stripping an optional prefix, and every
// nesting of the remaining name is tried, so ALPACA_RETRY_MAX_ATTEMPTS
// sets retry.max_attempts.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("alpaca", &cfg, config.WithEnvPrefix("ALPACA"))
package config
