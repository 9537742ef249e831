// Command alpaca queries the Alpaca trading and market data APIs and prints
// the responses as JSON.
//
// Usage:
//
//	alpaca account
//	alpaca asset AAPL
//	alpaca assets --status active --class us_equity
//	alpaca contracts --underlying AAPL --type call --limit 10
//	alpaca trades AAPL MSFT
//
// Credentials are read from APCA_API_KEY_ID and APCA_API_SECRET_KEY, a
// .env file, or a config file (./alpaca.yml, ./config.yml or the user
// config directory).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kbukum/restkit/version"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      serviceName,
		Usage:     "Query the Alpaca trading and market data APIs",
		Version:   version.Get().String(),
		Writer:    stdout,
		ErrWriter: stderr,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override logging.level (trace, debug, info, warn, error, disabled)",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print response bodies as received instead of decoding them",
			},
			&cli.StringFlag{
				Name:  "otlp-endpoint",
				Usage: "OTLP HTTP endpoint (host:port) for traces and metrics",
			},
			&cli.BoolFlag{
				Name:  "live",
				Usage: "Use the live trading API instead of paper trading",
			},
		},

		Commands: []*cli.Command{
			accountCommand(),
			assetCommand(),
			assetsCommand(),
			contractsCommand(),
			tradesCommand(),
			versionCommand(),
		},
	}
}
