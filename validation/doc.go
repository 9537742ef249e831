// Package validation checks configuration structs and request builders.
//
// Struct tag validation uses go-playground/validator:
//
//	type AssetParams struct {
//	    Symbol string `json:"symbol" validate:"required"`
//	}
//	err := validation.Validate(params)
//
// Rules that span several fields are checked programmatically:
//
//	v := validation.New()
//	v.Custom(qty != nil || notional != nil, "qty", "qty or notional is required")
//	err := v.Err()
//
// Both return an *Error listing every failing field.
package validation
