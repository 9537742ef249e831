package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/kbukum/restkit/alpaca"
	"github.com/kbukum/restkit/alpaca/marketdata"
	"github.com/kbukum/restkit/alpaca/trading"
	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/bootstrap"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/version"
)

func accountCommand() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Show the account of the configured key",
		Action: func(c *cli.Context) error {
			return run[trading.AccountInfo](c, trading.Account{})
		},
	}
}

func assetCommand() *cli.Command {
	return &cli.Command{
		Name:      "asset",
		Usage:     "Show a single asset",
		ArgsUsage: "SYMBOL_OR_ASSET_ID",
		Action: func(c *cli.Context) error {
			ep, err := trading.NewAsset(trading.AssetParams{SymbolOrAssetID: c.Args().First()})
			if err != nil {
				return err
			}
			return run[trading.AssetInfo](c, ep)
		},
	}
}

func assetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "assets",
		Usage: "List assets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Usage: "active or inactive"},
			&cli.StringFlag{Name: "class", Usage: "us_equity, us_option or crypto"},
			&cli.StringFlag{Name: "exchange", Usage: "Exchange code such as NASDAQ"},
			&cli.StringSliceFlag{Name: "attribute", Usage: "Asset attribute filter (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			ep, err := trading.NewAssets(trading.AssetsParams{
				Status:     c.String("status"),
				AssetClass: c.String("class"),
				Exchange:   c.String("exchange"),
				Attributes: c.StringSlice("attribute"),
			})
			if err != nil {
				return err
			}
			return run[[]trading.AssetInfo](c, ep)
		},
	}
}

func contractsCommand() *cli.Command {
	return &cli.Command{
		Name:  "contracts",
		Usage: "List option contracts",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "underlying", Usage: "Underlying symbol (repeatable)"},
			&cli.StringFlag{Name: "status", Usage: "active or inactive"},
			&cli.StringFlag{Name: "type", Usage: "call or put"},
			&cli.TimestampFlag{Name: "expiration", Layout: time.DateOnly, Usage: "Expiration date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "strike-min", Usage: "Minimum strike price"},
			&cli.StringFlag{Name: "strike-max", Usage: "Maximum strike price"},
			&cli.IntFlag{Name: "limit", Usage: "Page size (1-10000)"},
			&cli.StringFlag{Name: "page-token", Usage: "Token of the page to fetch"},
		},
		Action: func(c *cli.Context) error {
			params := trading.OptionContractsParams{
				UnderlyingSymbols: c.StringSlice("underlying"),
				Status:            c.String("status"),
				Type:              c.String("type"),
				Limit:             c.Int("limit"),
				PageToken:         c.String("page-token"),
			}
			if ts := c.Timestamp("expiration"); ts != nil {
				params.ExpirationDate = *ts
			}
			var err error
			if params.StrikePriceGTE, err = decimalFlag(c, "strike-min"); err != nil {
				return err
			}
			if params.StrikePriceLTE, err = decimalFlag(c, "strike-max"); err != nil {
				return err
			}
			ep, err := trading.NewOptionsContracts(params)
			if err != nil {
				return err
			}
			return run[trading.OptionContractsPage](c, ep)
		},
	}
}

func tradesCommand() *cli.Command {
	return &cli.Command{
		Name:      "trades",
		Usage:     "Show the latest trade of each symbol",
		ArgsUsage: "SYMBOL...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "feed", Usage: "iex, sip or otc"},
		},
		Action: func(c *cli.Context) error {
			ep, err := marketdata.NewLatestTrades(marketdata.LatestTradesParams{
				Symbols: c.Args().Slice(),
				Feed:    c.String("feed"),
			})
			if err != nil {
				return err
			}
			return run[marketdata.LatestTradesResponse](c, ep)
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			return printJSON(c.App.Writer, version.Get())
		},
	}
}

func decimalFlag(c *cli.Context, name string) (*decimal.Decimal, error) {
	if !c.IsSet(name) {
		return nil, nil
	}
	d, err := decimal.NewFromString(c.String(name))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

// run executes ep within the application lifecycle and prints the result.
// With --raw the body is printed as received.
func run[T any](c *cli.Context, ep api.Endpoint) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	app.OnStart(func(ctx context.Context) error {
		shutdown, err := observability.Setup(ctx, app.Cfg.Telemetry)
		if err != nil {
			return err
		}
		app.OnStop(shutdown)
		return nil
	})

	var client *alpaca.Client
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*cliConfig]) error {
		var err error
		if client, err = alpaca.New(a.Cfg.Config, alpaca.WithLogger(a.Logger)); err != nil {
			return err
		}
		a.OnStop(client.Close)
		return nil
	})

	return app.RunTask(c.Context, func(ctx context.Context) error {
		if c.Bool("raw") {
			body, err := alpaca.QueryRaw(ctx, ep, client)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, string(body))
			return err
		}
		out, err := alpaca.Query[T](ctx, ep, client)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, out)
	})
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
