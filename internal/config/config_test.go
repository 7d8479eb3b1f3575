package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid defaults",
			config: Config{
				APIBaseURL:     "http://localhost:8080/api",
				RequestTimeout: 15 * time.Second,
				StateDir:       "/tmp/pennywise",
				LogLevel:       "info",
			},
			wantErr: false,
		},
		{
			name: "https base URL",
			config: Config{
				APIBaseURL:     "https://pennywise.example.com/api",
				RequestTimeout: 30 * time.Second,
				StateDir:       "/tmp/pennywise",
				LogLevel:       "debug",
			},
			wantErr: false,
		},
		{
			name: "invalid URL scheme",
			config: Config{
				APIBaseURL:     "ftp://localhost/api",
				RequestTimeout: 15 * time.Second,
				StateDir:       "/tmp/pennywise",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "invalid API base URL scheme 'ftp'",
		},
		{
			name: "timeout too short",
			config: Config{
				APIBaseURL:     "http://localhost:8080/api",
				RequestTimeout: 100 * time.Millisecond,
				StateDir:       "/tmp/pennywise",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name: "timeout too long",
			config: Config{
				APIBaseURL:     "http://localhost:8080/api",
				RequestTimeout: 10 * time.Minute,
				StateDir:       "/tmp/pennywise",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
		{
			name: "empty state dir",
			config: Config{
				APIBaseURL:     "http://localhost:8080/api",
				RequestTimeout: 15 * time.Second,
				StateDir:       "",
				LogLevel:       "info",
			},
			wantErr:     true,
			errorString: "state directory cannot be empty",
		},
		{
			name: "unknown log level",
			config: Config{
				APIBaseURL:     "http://localhost:8080/api",
				RequestTimeout: 15 * time.Second,
				StateDir:       "/tmp/pennywise",
				LogLevel:       "verbose",
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PENNYWISE_API_URL", "")
	t.Setenv("PENNYWISE_HTTP_TIMEOUT", "")
	t.Setenv("PENNYWISE_DIR", "")
	t.Setenv("PENNYWISE_LOG_FILE", "")
	t.Setenv("PENNYWISE_LOG_LEVEL", "")

	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.StateDir == "" {
		t.Error("StateDir should never be empty")
	}
	if cfg.LogFile == "" {
		t.Error("LogFile should default to a file under the state dir")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PENNYWISE_API_URL", "https://api.example.com/api")
	t.Setenv("PENNYWISE_HTTP_TIMEOUT", "45s")
	t.Setenv("PENNYWISE_DIR", "/tmp/pw-test")

	cfg := Load()

	if cfg.APIBaseURL != "https://api.example.com/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("RequestTimeout = %v, want 45s", cfg.RequestTimeout)
	}
	if cfg.StateDir != "/tmp/pw-test" {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
}
