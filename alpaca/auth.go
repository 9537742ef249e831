package alpaca

import (
	"github.com/kbukum/restkit/api"
	"github.com/kbukum/restkit/httpclient"
)

// Header names of the Alpaca key pair.
const (
	HeaderKeyID     = "APCA-API-KEY-ID"
	HeaderSecretKey = "APCA-API-SECRET-KEY"
)

// SecretTokens returns the authentication Alpaca expects: the key pair in
// its two headers, both marked secret, and a JSON Accept header.
func SecretTokens(keyID, secretKey string) *httpclient.AuthConfig {
	return httpclient.HeaderAuth(
		httpclient.Header{Name: HeaderKeyID, Value: keyID, Secret: true},
		httpclient.Header{Name: HeaderSecretKey, Value: secretKey, Secret: true},
		httpclient.Header{Name: "Accept", Value: api.ContentTypeJSON},
	)
}
