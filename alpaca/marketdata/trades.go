// Package marketdata defines endpoints of the Alpaca market data API. They
// resolve against api.URLBaseData, so the client must implement
// api.DataClient.
package marketdata

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/validation"
)

// Stock data feeds.
const (
	FeedIEX = "iex"
	FeedSIP = "sip"
	FeedOTC = "otc"
)

// LatestTradesParams selects the symbols to query.
type LatestTradesParams struct {
	Symbols []string `url:"symbols" validate:"required,min=1,dive,required"`
	// Feed defaults to the best feed the subscription allows.
	Feed string `url:"feed,omitempty" validate:"omitempty,oneof=iex sip otc"`
}

// LatestTrades queries the latest trade of each symbol.
type LatestTrades struct {
	params LatestTradesParams
}

// NewLatestTrades validates p and returns the endpoint.
func NewLatestTrades(p LatestTradesParams) (LatestTrades, error) {
	if err := validation.Validate(p); err != nil {
		return LatestTrades{}, err
	}
	return LatestTrades{params: p}, nil
}

func (LatestTrades) Method() string { return http.MethodGet }

func (LatestTrades) Path() string { return "stocks/trades/latest" }

func (LatestTrades) URLBase() api.URLBase { return api.URLBaseData }

func (LatestTrades) Body() (*api.Body, error) { return nil, nil }

// Parameters returns the symbols and, when set, the feed.
func (l LatestTrades) Parameters() *api.QueryParams {
	return (&api.QueryParams{}).PushStruct(l.params)
}

// Trade is a single trade print.
type Trade struct {
	Timestamp  time.Time       `json:"t"`
	Price      decimal.Decimal `json:"p"`
	Size       decimal.Decimal `json:"s"`
	Exchange   string          `json:"x"`
	ID         int64           `json:"i"`
	Conditions []string        `json:"c"`
	Tape       string          `json:"z"`
}

// LatestTradesResponse maps each requested symbol to its latest trade.
type LatestTradesResponse struct {
	Trades map[string]Trade `json:"trades"`
}
