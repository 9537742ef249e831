package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig configures the transport's TLS client settings.
type TLSConfig struct {
	// CAFile is a PEM bundle that replaces the system roots when set.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`
	// CertFile and KeyFile hold a client certificate for mTLS.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`
	// ServerName overrides the name used for certificate verification.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`
	// MinVersion is "1.2" (default) or "1.3".
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
	// SkipVerify disables server certificate verification. Never use it
	// against a live trading endpoint.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`
}

// Validate checks that the settings are consistent. Files are not read.
func (c *TLSConfig) Validate() error {
	if c == nil {
		return nil
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return fmt.Errorf("httpclient: tls: cert_file and key_file must be set together")
	}
	if _, err := c.minVersion(); err != nil {
		return err
	}
	return nil
}

// Build creates a *tls.Config, or nil when no setting differs from the
// transport defaults.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if c == nil || *c == (TLSConfig{}) {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	minVersion, _ := c.minVersion()
	cfg := &tls.Config{
		ServerName:         c.ServerName,
		MinVersion:         minVersion,
		InsecureSkipVerify: c.SkipVerify,
	}

	if c.CAFile != "" {
		pem, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, fmt.Errorf("httpclient: tls: read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("httpclient: tls: no certificates found in %s", c.CAFile)
		}
		cfg.RootCAs = pool
	}

	if c.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("httpclient: tls: load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

func (c *TLSConfig) minVersion() (uint16, error) {
	switch c.MinVersion {
	case "", "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("httpclient: tls: unsupported min_version %q", c.MinVersion)
	}
}
