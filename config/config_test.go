package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Host          string        `mapstructure:"host"`
	DataHost      string        `mapstructure:"data_host"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Retry         struct {
		MaxAttempts int `mapstructure:"max_attempts"`
	} `mapstructure:"retry"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestServiceConfig(t *testing.T) {
	cfg := ServiceConfig{Name: "svc"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		cfg    ServiceConfig
		errMsg string
	}{
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
name: alpaca
environment: staging
host: paper-api.alpaca.markets
timeout: 5s
retry:
  max_attempts: 4
logging:
  level: debug
`)

	var cfg testConfig
	if err := LoadConfig("alpaca", &cfg, WithConfigFile(path), WithFileSystem(&mockFS{exists: true})); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "alpaca" || cfg.Environment != "staging" {
		t.Errorf("service config not loaded: %+v", cfg.ServiceConfig)
	}
	if cfg.Host != "paper-api.alpaca.markets" || cfg.Timeout != 5*time.Second || cfg.Retry.MaxAttempts != 4 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("nested logging config not loaded: %+v", cfg.Logging)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "host: from-file\nretry:\n  max_attempts: 2\n")
	t.Setenv("TESTAPP_HOST", "from-env")
	t.Setenv("TESTAPP_DATA_HOST", "data.example.com")
	t.Setenv("TESTAPP_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("HOST", "unprefixed")

	var cfg testConfig
	err := LoadConfig("alpaca", &cfg,
		WithConfigFile(path),
		WithEnvPrefix("testapp"),
		WithFileSystem(&mockFS{exists: true}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Host != "from-env" || cfg.DataHost != "data.example.com" || cfg.Retry.MaxAttempts != 7 {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("alpaca", &cfg,
		WithEnvPrefix("NOPE_NOT_SET"),
		WithDefaults(map[string]any{"host": "api.alpaca.markets", "timeout": "30s"}),
		WithFileSystem(&mockFS{}),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Host != "api.alpaca.markets" || cfg.Timeout != 30*time.Second {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("alpaca", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "host: [unterminated\n")
	var cfg testConfig
	if err := LoadConfig("alpaca", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "ENVFILETEST_HOST=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("ENVFILETEST_HOST") })

	var cfg testConfig
	if err := LoadConfig("alpaca", &cfg, WithEnvFile(envPath), WithEnvPrefix("ENVFILETEST")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Host != "from-dotenv" {
		t.Errorf("expected host from .env, got %q", cfg.Host)
	}
}

func TestResolver_ResolveFiles(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]bool
		opts  LoaderConfig
		want  ResolvedFiles
	}{
		{
			name:  "service file wins",
			files: map[string]bool{"./alpaca.yml": true, "./config.yml": true, ".env": true},
			want:  ResolvedFiles{ConfigFile: "./alpaca.yml", EnvFile: ".env"},
		},
		{
			name:  "cmd directory",
			files: map[string]bool{filepath.Join("cmd", "alpaca", "config.yml"): true},
			want:  ResolvedFiles{ConfigFile: filepath.Join("cmd", "alpaca", "config.yml")},
		},
		{
			name:  "user config dir",
			files: map[string]bool{filepath.Join("/home/u/.config", "alpaca", "config.yml"): true},
			want:  ResolvedFiles{ConfigFile: filepath.Join("/home/u/.config", "alpaca", "config.yml")},
		},
		{
			name:  "explicit paths kept",
			files: map[string]bool{"./config.yml": true},
			opts:  LoaderConfig{ConfigFile: "/etc/a.yml", EnvFile: "/etc/a.env"},
			want:  ResolvedFiles{ConfigFile: "/etc/a.yml", EnvFile: "/etc/a.env"},
		},
		{
			name: "nothing found",
			want: ResolvedFiles{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{FileSystem: &mockFS{files: tt.files}}
			if got := r.ResolveFiles("alpaca", tt.opts); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("RETRY_MAX_ATTEMPTS")
	want := []string{"retry_max_attempts", "retry.max_attempts", "retry_max.attempts"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := envKeyVariants("HOST"); !reflect.DeepEqual(got, []string{"host"}) {
		t.Errorf("got %v", got)
	}
}

// mockFS reports files from a map, or every file when exists is set.
type mockFS struct {
	files  map[string]bool
	exists bool
}

func (m *mockFS) Exists(path string) bool {
	return m.exists || m.files[path]
}

func (m *mockFS) LoadEnv(string) error { return nil }

func (m *mockFS) UserConfigDir() (string, error) { return "/home/u/.config", nil }
