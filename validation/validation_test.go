package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"AAPL", false},
		{"", true},
		{"   ", true},
	}
	for _, tt := range tests {
		v := New().Required("symbol", tt.value)
		if v.HasErrors() != tt.wantErr {
			t.Errorf("Required(%q): HasErrors = %v, want %v", tt.value, v.HasErrors(), tt.wantErr)
		}
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{uuid.New().String(), ""},
		{"", "is required"},
		{"not-a-uuid", "must be a valid UUID"},
		{uuid.Nil.String(), "must not be empty"},
	}
	for _, tt := range tests {
		v := New().RequiredUUID("id", tt.value)
		if tt.want == "" {
			if v.HasErrors() {
				t.Errorf("RequiredUUID(%q): unexpected errors %v", tt.value, v.Errors())
			}
			continue
		}
		if !v.HasErrors() || v.Errors()[0].Message != tt.want {
			t.Errorf("RequiredUUID(%q): got %v, want %q", tt.value, v.Errors(), tt.want)
		}
	}
}

func TestValidatorRange(t *testing.T) {
	if New().Range("limit", 5, 1, 10).HasErrors() {
		t.Error("5 should be within 1..10")
	}
	if !New().Range("limit", 0, 1, 10).HasErrors() {
		t.Error("0 should be outside 1..10")
	}
	if !New().Range("limit", 11, 1, 10).HasErrors() {
		t.Error("11 should be outside 1..10")
	}
}

func TestValidatorOneOf(t *testing.T) {
	if New().OneOf("side", "buy", "buy", "sell").HasErrors() {
		t.Error("buy should be allowed")
	}
	if New().OneOf("side", "", "buy", "sell").HasErrors() {
		t.Error("empty value should be skipped")
	}
	v := New().OneOf("side", "hold", "buy", "sell")
	if !v.HasErrors() || v.Errors()[0].Message != "must be one of: buy, sell" {
		t.Errorf("unexpected errors: %v", v.Errors())
	}
}

func TestValidatorCustomAndErr(t *testing.T) {
	v := New().
		Custom(true, "qty", "never added").
		Custom(false, "qty", "qty or notional is required").
		Required("symbol", "")

	err := v.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Error("expected errors.Is(err, ErrInvalid)")
	}
	want := "validation: qty: qty or notional is required; symbol: is required"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	if New().Err() != nil {
		t.Error("empty validator should return nil")
	}
}

func TestValidatorMerge(t *testing.T) {
	type params struct {
		Symbol string `json:"symbol" validate:"required"`
	}
	v := New().
		Merge("params", Validate(params{})).
		Merge("other", fmt.Errorf("plain")).
		Merge("none", nil)

	errs := v.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs[0].Field != "symbol" || errs[1].Field != "other" || errs[1].Message != "plain" {
		t.Errorf("unexpected merge result: %v", errs)
	}
}

type orderParams struct {
	Symbol   string   `json:"symbol" validate:"required"`
	Side     string   `json:"side" validate:"required,oneof=buy sell"`
	Limit    int      `json:"limit" validate:"omitempty,min=1,max=500"`
	Qty      *float64 `json:"qty" validate:"required_without=Notional"`
	Notional *float64 `json:"notional"`
	Host     string   `mapstructure:"host" validate:"omitempty,hostname"`
}

func TestValidate(t *testing.T) {
	one := 1.0
	tests := []struct {
		name   string
		params orderParams
		want   map[string]string
	}{
		{
			name:   "valid",
			params: orderParams{Symbol: "AAPL", Side: "buy", Qty: &one},
		},
		{
			name:   "missing fields",
			params: orderParams{},
			want: map[string]string{
				"symbol": "is required",
				"side":   "is required",
				"qty":    "is required when notional is not set",
			},
		},
		{
			name:   "bad values",
			params: orderParams{Symbol: "AAPL", Side: "hold", Limit: 501, Notional: &one, Host: "not a host"},
			want: map[string]string{
				"side":  "must be one of: buy, sell",
				"limit": "must be at most 500",
				"host":  "must be a valid host name",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.params)
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *Error
			if !errors.As(err, &ve) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if len(ve.Fields) != len(tt.want) {
				t.Errorf("expected %d fields, got %v", len(tt.want), ve.Fields)
			}
			for field, msg := range tt.want {
				if got, ok := ve.Field(field); !ok || got != msg {
					t.Errorf("%s: got %q, want %q", field, got, msg)
				}
			}
		})
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	err := Validate("nope")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidateUUID(t *testing.T) {
	id := uuid.New()
	got, err := ValidateUUID("id", id.String())
	if err != nil || got != id {
		t.Errorf("ValidateUUID() = %v, %v", got, err)
	}
	if _, err := ValidateUUID("id", "bad"); err == nil || !strings.Contains(err.Error(), "id: must be a valid UUID") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Notional":   "notional",
		"AssetClass": "asset_class",
		"qty":        "qty",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
