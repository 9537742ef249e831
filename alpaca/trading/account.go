package trading

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kbukum/restkit/api"
)

// Account queries the account of the calling user.
type Account struct {
	api.Defaults
}

// Method returns GET.
func (Account) Method() string { return http.MethodGet }

// Path returns "account".
func (Account) Path() string { return "account" }

// AccountInfo is the response of Account.
type AccountInfo struct {
	ID                    uuid.UUID       `json:"id"`
	AccountNumber         string          `json:"account_number"`
	Status                string          `json:"status"`
	CryptoStatus          string          `json:"crypto_status,omitempty"`
	Currency              string          `json:"currency"`
	Cash                  decimal.Decimal `json:"cash"`
	PortfolioValue        decimal.Decimal `json:"portfolio_value"`
	Equity                decimal.Decimal `json:"equity"`
	LastEquity            decimal.Decimal `json:"last_equity"`
	BuyingPower           decimal.Decimal `json:"buying_power"`
	RegTBuyingPower       decimal.Decimal `json:"regt_buying_power"`
	DaytradingBuyingPower decimal.Decimal `json:"daytrading_buying_power"`
	LongMarketValue       decimal.Decimal `json:"long_market_value"`
	ShortMarketValue      decimal.Decimal `json:"short_market_value"`
	InitialMargin         decimal.Decimal `json:"initial_margin"`
	MaintenanceMargin     decimal.Decimal `json:"maintenance_margin"`
	Multiplier            decimal.Decimal `json:"multiplier"`
	DaytradeCount         int             `json:"daytrade_count"`
	PatternDayTrader      bool            `json:"pattern_day_trader"`
	TradingBlocked        bool            `json:"trading_blocked"`
	TransfersBlocked      bool            `json:"transfers_blocked"`
	AccountBlocked        bool            `json:"account_blocked"`
	ShortingEnabled       bool            `json:"shorting_enabled"`
	OptionsTradingLevel   int             `json:"options_trading_level,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}
