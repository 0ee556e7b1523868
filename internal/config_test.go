package internal

import (
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
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
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLibraryConfig_BadPattern(t *testing.T) {
	cfg := LibraryConfig{Path: "./library", Pattern: "[a-"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid glob should fail validation")
	}
	if !strings.Contains(err.Error(), "glob") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLibraryConfig_MissingPath(t *testing.T) {
	cfg := LibraryConfig{Pattern: "**/*.yaml"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty path should fail validation")
	}
}

func TestSessionConfig_TTLTooShort(t *testing.T) {
	cfg := SessionConfig{TTL: time.Second, PruneInterval: time.Minute}
	if err := cfg.Validate(); err == nil {
		t.Fatal("ttl below a minute should fail validation")
	}
}

func TestFullConfig_OutputRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Output.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch missing output path")
	}
}
