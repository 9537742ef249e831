package trading

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/validation"
)

// Option contract types.
const (
	ContractCall = "call"
	ContractPut  = "put"
)

// OptionContractsParams filters option contracts. Zero values are not sent.
type OptionContractsParams struct {
	UnderlyingSymbols []string         `url:"underlying_symbols,omitempty" validate:"omitempty,dive,required"`
	Status            string           `url:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	ExpirationDate    time.Time        `url:"expiration_date,omitempty,date"`
	ExpirationDateGTE time.Time        `url:"expiration_date_gte,omitempty,date"`
	ExpirationDateLTE time.Time        `url:"expiration_date_lte,omitempty,date"`
	Type              string           `url:"type,omitempty" validate:"omitempty,oneof=call put"`
	StrikePriceGTE    *decimal.Decimal `url:"strike_price_gte,omitempty"`
	StrikePriceLTE    *decimal.Decimal `url:"strike_price_lte,omitempty"`
	Limit             int              `url:"limit,omitempty" validate:"omitempty,min=1,max=10000"`
	PageToken         string           `url:"page_token,omitempty"`
}

// OptionsContracts lists option contracts.
type OptionsContracts struct {
	api.Defaults
	params OptionContractsParams
}

// NewOptionsContracts validates p and returns the endpoint.
func NewOptionsContracts(p OptionContractsParams) (OptionsContracts, error) {
	v := validation.New().Merge("", validation.Validate(p))
	if !p.ExpirationDate.IsZero() && (!p.ExpirationDateGTE.IsZero() || !p.ExpirationDateLTE.IsZero()) {
		v.AddError("expiration_date", "must not be combined with a date range")
	}
	if p.StrikePriceGTE != nil && p.StrikePriceLTE != nil && p.StrikePriceGTE.GreaterThan(*p.StrikePriceLTE) {
		v.AddError("strike_price_gte", "must not exceed strike_price_lte")
	}
	if err := v.Err(); err != nil {
		return OptionsContracts{}, err
	}
	return OptionsContracts{params: p}, nil
}

// Method returns GET.
func (OptionsContracts) Method() string { return http.MethodGet }

// Path returns "options/contracts".
func (OptionsContracts) Path() string { return "options/contracts" }

// Parameters returns the filters that are set. Dates are sent as
// YYYY-MM-DD.
func (o OptionsContracts) Parameters() *api.QueryParams {
	return (&api.QueryParams{}).PushStruct(o.params)
}

// OptionContract describes a listed option contract.
type OptionContract struct {
	ID                uuid.UUID        `json:"id"`
	Symbol            string           `json:"symbol"`
	Name              string           `json:"name"`
	Status            string           `json:"status"`
	Tradable          bool             `json:"tradable"`
	ExpirationDate    string           `json:"expiration_date"`
	RootSymbol        string           `json:"root_symbol"`
	UnderlyingSymbol  string           `json:"underlying_symbol"`
	UnderlyingAssetID uuid.UUID        `json:"underlying_asset_id"`
	Type              string           `json:"type"`
	Style             string           `json:"style"`
	StrikePrice       decimal.Decimal  `json:"strike_price"`
	Size              decimal.Decimal  `json:"size"`
	OpenInterest      *decimal.Decimal `json:"open_interest,omitempty"`
	OpenInterestDate  string           `json:"open_interest_date,omitempty"`
	ClosePrice        *decimal.Decimal `json:"close_price,omitempty"`
	ClosePriceDate    string           `json:"close_price_date,omitempty"`
}

// OptionContractsPage is one page of OptionsContracts results.
type OptionContractsPage struct {
	OptionContracts []OptionContract `json:"option_contracts"`
	// NextPageToken is nil on the last page.
	NextPageToken *string `json:"next_page_token"`
}
