package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source.UsersURL() != "http://localhost:3000/users" {
		t.Errorf("UsersURL() = %s, want http://localhost:3000/users", cfg.Source.UsersURL())
	}
	if cfg.Source.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Source.Timeout, DefaultTimeout)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %s, want %s", cfg.Server.Addr, DefaultServerAddr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("USERDATA_BASE_URL", "https://jsonplaceholder.typicode.com")
	t.Setenv("USERDATA_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MOCK_SERVER_BURST", "10")
	t.Setenv("MOCK_SERVER_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source.UsersURL() != "https://jsonplaceholder.typicode.com/users" {
		t.Errorf("UsersURL() = %s", cfg.Source.UsersURL())
	}
	if cfg.Source.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Source.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Server.Burst != 10 {
		t.Errorf("Server.Burst = %d, want 10", cfg.Server.Burst)
	}
	if got := strings.Join(cfg.Server.AllowedOrigins, "|"); got != "http://a.test|http://b.test" {
		t.Errorf("AllowedOrigins = %s", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{
			name:    "bad base url",
			key:     "USERDATA_BASE_URL",
			value:   "not a url",
			wantMsg: "USERDATA_BASE_URL must be a valid URL",
		},
		{
			name:    "users path without slash",
			key:     "USERDATA_USERS_PATH",
			value:   "users",
			wantMsg: "USERDATA_USERS_PATH",
		},
		{
			name:    "unknown log format",
			key:     "LOG_FORMAT",
			value:   "xml",
			wantMsg: "LOG_FORMAT must be one of",
		},
		{
			name:    "bad server address",
			key:     "MOCK_SERVER_ADDR",
			value:   "localhost",
			wantMsg: "MOCK_SERVER_ADDR must be a host:port address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}
