package internal

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Database.DSN = "postgres://localhost:5432/wunjo"
	cfg.Storage.Endpoint = "http://localhost:9000"
	cfg.Storage.AccessKey = "minio"
	cfg.Storage.SecretKey = "minio123"
	return cfg
}

func TestConfig_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config should pass: %v", err)
	}
}

func TestConfig_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing dsn should fail")
	}
}

func TestConfig_MissingStorageCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.AccessKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing access key should fail")
	}
}

func TestVaultConfig_DefaultDirs(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Vault.ContentsDir != "01_Contents" || cfg.Vault.EventsDir != "02_Events" || cfg.Vault.DaysDir != "03_Days" {
		t.Errorf("unexpected defaults: %+v", cfg.Vault)
	}
}

func TestVaultConfig_MissingDir(t *testing.T) {
	cfg := validConfig()
	cfg.Vault.EventsDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing events dir should fail")
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	cfg := validConfig()
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 0 should fail")
	}
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("port above range should fail")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
