package trading

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/validation"
)

// Order sides.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Order types.
const (
	OrderMarket       = "market"
	OrderLimit        = "limit"
	OrderStop         = "stop"
	OrderStopLimit    = "stop_limit"
	OrderTrailingStop = "trailing_stop"
)

// Time in force values.
const (
	TimeInForceDay = "day"
	TimeInForceGTC = "gtc"
	TimeInForceOPG = "opg"
	TimeInForceCLS = "cls"
	TimeInForceIOC = "ioc"
	TimeInForceFOK = "fok"
)

// OrderParams is the body of CreateOrder. Exactly one of Qty and Notional
// is set.
type OrderParams struct {
	Symbol        string           `json:"symbol" validate:"required"`
	Qty           *decimal.Decimal `json:"qty,omitempty" validate:"required_without=Notional,excluded_with=Notional"`
	Notional      *decimal.Decimal `json:"notional,omitempty"`
	Side          string           `json:"side" validate:"required,oneof=buy sell"`
	Type          string           `json:"type" validate:"required,oneof=market limit stop stop_limit trailing_stop"`
	TimeInForce   string           `json:"time_in_force" validate:"required,oneof=day gtc opg cls ioc fok"`
	LimitPrice    *decimal.Decimal `json:"limit_price,omitempty"`
	StopPrice     *decimal.Decimal `json:"stop_price,omitempty"`
	TrailPercent  *decimal.Decimal `json:"trail_percent,omitempty"`
	TrailPrice    *decimal.Decimal `json:"trail_price,omitempty"`
	ExtendedHours bool             `json:"extended_hours,omitempty"`
	// ClientOrderID makes the order idempotent. A random UUID is used when
	// empty.
	ClientOrderID string `json:"client_order_id,omitempty" validate:"omitempty,max=128"`
}

// CreateOrder submits a new order.
type CreateOrder struct {
	api.Defaults
	params OrderParams
}

// NewCreateOrder validates p and returns the endpoint.
func NewCreateOrder(p OrderParams) (CreateOrder, error) {
	v := validation.New().Merge("", validation.Validate(p))
	positive(v, "qty", p.Qty)
	positive(v, "notional", p.Notional)
	positive(v, "limit_price", p.LimitPrice)
	positive(v, "stop_price", p.StopPrice)

	switch p.Type {
	case OrderLimit:
		v.Custom(p.LimitPrice != nil, "limit_price", "is required for limit orders")
	case OrderStop:
		v.Custom(p.StopPrice != nil, "stop_price", "is required for stop orders")
	case OrderStopLimit:
		v.Custom(p.LimitPrice != nil, "limit_price", "is required for stop_limit orders")
		v.Custom(p.StopPrice != nil, "stop_price", "is required for stop_limit orders")
	case OrderTrailingStop:
		v.Custom((p.TrailPercent == nil) != (p.TrailPrice == nil), "trail_price", "exactly one of trail_price and trail_percent is required")
	}
	if p.Notional != nil {
		v.Custom(p.Type == OrderMarket && p.TimeInForce == TimeInForceDay, "notional", "is only allowed for market day orders")
	}
	if err := v.Err(); err != nil {
		return CreateOrder{}, err
	}

	if p.ClientOrderID == "" {
		p.ClientOrderID = uuid.NewString()
	}
	return CreateOrder{params: p}, nil
}

func positive(v *validation.Validator, field string, d *decimal.Decimal) {
	if d != nil {
		v.Custom(d.IsPositive(), field, "must be greater than 0")
	}
}

// ClientOrderID returns the client order id sent with the order.
func (o CreateOrder) ClientOrderID() string { return o.params.ClientOrderID }

// Method returns POST.
func (CreateOrder) Method() string { return http.MethodPost }

// Path returns "orders".
func (CreateOrder) Path() string { return "orders" }

// Body returns the order as JSON.
func (o CreateOrder) Body() (*api.Body, error) { return api.JSONBody(o.params) }

// Order is an order as reported by the API.
type Order struct {
	ID             uuid.UUID        `json:"id"`
	ClientOrderID  string           `json:"client_order_id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at"`
	SubmittedAt    *time.Time       `json:"submitted_at"`
	FilledAt       *time.Time       `json:"filled_at"`
	CanceledAt     *time.Time       `json:"canceled_at"`
	AssetID        uuid.UUID        `json:"asset_id"`
	Symbol         string           `json:"symbol"`
	AssetClass     string           `json:"asset_class"`
	Qty            *decimal.Decimal `json:"qty"`
	Notional       *decimal.Decimal `json:"notional"`
	FilledQty      decimal.Decimal  `json:"filled_qty"`
	FilledAvgPrice *decimal.Decimal `json:"filled_avg_price"`
	Type           string           `json:"type"`
	Side           string           `json:"side"`
	TimeInForce    string           `json:"time_in_force"`
	LimitPrice     *decimal.Decimal `json:"limit_price"`
	StopPrice      *decimal.Decimal `json:"stop_price"`
	Status         string           `json:"status"`
	ExtendedHours  bool             `json:"extended_hours"`
}
