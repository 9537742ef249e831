// Package logger provides structured logging over zerolog.
//
// Loggers are tagged with a component name and pick up the active
// OpenTelemetry trace and span ids from a context.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("alpaca")
//	log.Info("request sent", logger.Fields("method", "GET", "status", 200))
package logger
