package trading

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/validation"
)

// Asset statuses.
const (
	AssetActive   = "active"
	AssetInactive = "inactive"
)

// AssetInfo describes a tradable asset.
type AssetInfo struct {
	ID                           uuid.UUID        `json:"id"`
	Class                        string           `json:"class"`
	Exchange                     string           `json:"exchange"`
	Symbol                       string           `json:"symbol"`
	Name                         string           `json:"name"`
	Status                       string           `json:"status"`
	Tradable                     bool             `json:"tradable"`
	Marginable                   bool             `json:"marginable"`
	Shortable                    bool             `json:"shortable"`
	EasyToBorrow                 bool             `json:"easy_to_borrow"`
	Fractionable                 bool             `json:"fractionable"`
	MaintenanceMarginRequirement *decimal.Decimal `json:"maintenance_margin_requirement,omitempty"`
	Attributes                   []string         `json:"attributes,omitempty"`
}

// AssetParams selects a single asset.
type AssetParams struct {
	// SymbolOrAssetID is a ticker symbol such as "AAPL" or an asset UUID.
	SymbolOrAssetID string `json:"symbol_or_asset_id" validate:"required"`
}

// Asset queries a single asset by symbol or id.
type Asset struct {
	api.Defaults
	symbolOrAssetID string
}

// NewAsset validates p and returns the endpoint.
func NewAsset(p AssetParams) (Asset, error) {
	if err := validation.Validate(p); err != nil {
		return Asset{}, err
	}
	return Asset{symbolOrAssetID: p.SymbolOrAssetID}, nil
}

// Method returns GET.
func (Asset) Method() string { return http.MethodGet }

// Path returns "assets/{symbol_or_asset_id}". Crypto pairs such as
// "BTC/USD" are escaped into a single segment.
func (a Asset) Path() string { return "assets/" + url.PathEscape(a.symbolOrAssetID) }

// AssetsParams filters the asset list. Empty fields are not sent.
type AssetsParams struct {
	Status     string   `url:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	AssetClass string   `url:"asset_class,omitempty" validate:"omitempty,oneof=us_equity us_option crypto"`
	Exchange   string   `url:"exchange,omitempty" validate:"omitempty,oneof=AMEX ARCA BATS NYSE NASDAQ NYSEARCA OTC"`
	Attributes []string `url:"attributes,omitempty"`
}

// Assets lists assets.
type Assets struct {
	params AssetsParams
}

// NewAssets validates p and returns the endpoint.
func NewAssets(p AssetsParams) (Assets, error) {
	if err := validation.Validate(p); err != nil {
		return Assets{}, err
	}
	return Assets{params: p}, nil
}

// Method returns GET.
func (Assets) Method() string { return http.MethodGet }

// Path returns "assets".
func (Assets) Path() string { return "assets" }

// URLBase returns api.URLBaseAPIV2.
func (Assets) URLBase() api.URLBase { return api.URLBaseAPIV2 }

// Parameters returns the non-empty filters.
func (a Assets) Parameters() *api.QueryParams {
	return (&api.QueryParams{}).PushStruct(a.params)
}

// Body returns no body.
func (Assets) Body() (*api.Body, error) { return nil, nil }
