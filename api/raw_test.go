package api_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/api/apitest"
)

type contractsEndpoint struct{ api.Defaults }

func (contractsEndpoint) Method() string { return http.MethodGet }
func (contractsEndpoint) Path() string   { return "options/contracts" }

func TestQueryRaw_ReturnsBodyUnchanged(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"json", `{"option_contracts":[],"next_page_token":null}`},
		{"not json", "plain text"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := apitest.NewClient(testRoot)
			client.Respond(http.StatusOK, tt.body)

			got, err := api.QueryRaw[*apitest.Error](context.Background(), contractsEndpoint{}, client)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, []byte(tt.body)) {
				t.Errorf("expected %q, got %q", tt.body, got)
			}
		})
	}
}

func TestQueryRaw_ErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json string", `"insufficient permissions"`, "insufficient permissions"},
		{"message object", `{"code":40410000,"message":"contract not found"}`, "contract not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := apitest.NewClient(testRoot)
			client.Respond(http.StatusForbidden, tt.body)

			_, err := api.QueryRaw[*apitest.Error](context.Background(), contractsEndpoint{}, client)
			apiErr := asAPIError(t, err)
			if apiErr.Kind != api.KindServiceMessage {
				t.Fatalf("expected service message, got %s", apiErr.Kind)
			}
			if apiErr.Message != tt.want {
				t.Errorf("expected %q, got %q", tt.want, apiErr.Message)
			}
		})
	}
}

func TestQueryRaw_OpaqueError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "Bad Gateway"},
		{"json without message", `{"code":500}`},
		{"null", "null"},
		{"number", "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := apitest.NewClient(testRoot)
			client.Respond(http.StatusBadGateway, tt.body)

			_, err := api.QueryRaw[*apitest.Error](context.Background(), contractsEndpoint{}, client)
			apiErr := asAPIError(t, err)
			if apiErr.Kind != api.KindService {
				t.Fatalf("expected service error, got %s", apiErr.Kind)
			}
			if apiErr.StatusCode != http.StatusBadGateway || string(apiErr.Data) != tt.body {
				t.Errorf("got status=%d data=%q", apiErr.StatusCode, apiErr.Data)
			}
		})
	}
}

func TestQueryRaw_MovedPermanently(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind api.Kind
	}{
		{"message body", `"moved"`, api.KindServiceMessage},
		{"opaque body", "Moved Permanently", api.KindService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := apitest.NewClient(testRoot)
			client.Respond(http.StatusMovedPermanently, tt.body, "Location", "https://new.example.com/v2/options/contracts")

			_, err := api.QueryRaw[*apitest.Error](context.Background(), contractsEndpoint{}, client)
			apiErr := asAPIError(t, err)
			if apiErr.Kind != tt.wantKind {
				t.Fatalf("expected %s, got %s", tt.wantKind, apiErr.Kind)
			}
			switch tt.wantKind {
			case api.KindServiceMessage:
				if apiErr.Message != "moved" {
					t.Errorf("unexpected message %q", apiErr.Message)
				}
			case api.KindService:
				if apiErr.StatusCode != http.StatusMovedPermanently || string(apiErr.Data) != tt.body {
					t.Errorf("got status=%d data=%q", apiErr.StatusCode, apiErr.Data)
				}
			}
		})
	}
}

func TestQueryRaw_TransportFailure(t *testing.T) {
	client := apitest.NewClient(testRoot)
	client.Fail("tls handshake timeout")

	_, err := api.QueryRaw[*apitest.Error](context.Background(), contractsEndpoint{}, client)
	if !api.IsKind(err, api.KindClient) {
		t.Fatalf("expected client error, got %v", err)
	}
}
