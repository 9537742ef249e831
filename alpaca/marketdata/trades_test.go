package marketdata

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/api/apitest"
	"github.com/kbukum/restkit/validation"
)

func TestNewLatestTrades_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params LatestTradesParams
	}{
		{"no symbols", LatestTradesParams{}},
		{"empty symbol", LatestTradesParams{Symbols: []string{"AAPL", ""}}},
		{"bad feed", LatestTradesParams{Symbols: []string{"AAPL"}, Feed: "nasdaq"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLatestTrades(tt.params)
			if !errors.Is(err, validation.ErrInvalid) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLatestTrades_Query(t *testing.T) {
	client := apitest.NewDataClient("https://paper-api.alpaca.markets/v2/", "https://data.alpaca.markets/v2/")
	client.Respond(http.StatusOK, `{"trades":{"AAPL":{"t":"2024-05-01T19:59:59.123Z","x":"V","p":169.3,"s":100,"c":["@"],"i":52983525,"z":"C"}}}`)

	ep, err := NewLatestTrades(LatestTradesParams{Symbols: []string{"AAPL", "MSFT"}, Feed: FeedIEX})
	if err != nil {
		t.Fatalf("NewLatestTrades: %v", err)
	}
	got, err := api.Query[LatestTradesResponse, *apitest.Error](context.Background(), ep, client)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	trade, ok := got.Trades["AAPL"]
	if !ok {
		t.Fatalf("missing AAPL in %+v", got)
	}
	if !trade.Price.Equal(decimal.RequireFromString("169.3")) || trade.ID != 52983525 || trade.Tape != "C" {
		t.Errorf("unexpected trade %+v", trade)
	}

	want := "https://data.alpaca.markets/v2/stocks/trades/latest?symbols=AAPL%2CMSFT&feed=iex"
	if url := client.Requests()[0].URL; url != want {
		t.Errorf("url = %s, want %s", url, want)
	}
}

func TestLatestTrades_RequiresDataClient(t *testing.T) {
	client := apitest.NewClient("https://paper-api.alpaca.markets/v2/")
	ep, err := NewLatestTrades(LatestTradesParams{Symbols: []string{"AAPL"}})
	if err != nil {
		t.Fatal(err)
	}
	_, err = api.Query[LatestTradesResponse, *apitest.Error](context.Background(), ep, client)
	if !api.IsKind(err, api.KindUnsupportedURLBase) {
		t.Errorf("expected unsupported url base, got %v", err)
	}
	if len(client.Requests()) != 0 {
		t.Error("no request must be sent")
	}
}
