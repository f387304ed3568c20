package config

import (
	"flag"
	"os"
	"strings"
	"testing"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	old := os.Args
	os.Args = []string{old[0]}
	t.Cleanup(func() { os.Args = old })
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	// подавляем вывод парсера флагов в тестах
	flag.CommandLine.SetOutput(os.Stderr)
}

// unsetEnv удаляет переменные окружения из списка, восстанавливая их после теста.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	unsetEnv(t,
		"DATABASE_URI", "AUTH_SECRET", "BASE_URL", "ENABLE_HTTPS",
		"JWT_ACCESS_MIN", "JWT_REFRESH_DAYS", "CODE_EXP_MIN", "MAX_CODE_ATTEMPTS",
		"SMTP_PORT", "SMTP_USER", "SMTP_FROM", "SMTP_SECURITY",
		"TOKEN_BACKEND", "TOKEN_FILE", "CLIENT_DB_PATH", "AFTER_LOGIN_URL",
	)

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("BaseURL default expected 'localhost:8081', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Fatalf("ServerURL default expected 'http://localhost:8081', got %q", cfg.ServerURL)
	}
	if cfg.AccessTokenMin != 60 || cfg.RefreshTokenDay != 7 {
		t.Fatalf("token lifetimes default expected 60m/7d, got %d/%d", cfg.AccessTokenMin, cfg.RefreshTokenDay)
	}
	if cfg.CodeExpMin != 15 || cfg.MaxCodeAttempts != 6 {
		t.Fatalf("code defaults expected 15/6, got %d/%d", cfg.CodeExpMin, cfg.MaxCodeAttempts)
	}
	if cfg.TokenBackend != BackendFile {
		t.Fatalf("TokenBackend default expected %q, got %q", BackendFile, cfg.TokenBackend)
	}
	if cfg.AfterLoginURL != "/dashboard" {
		t.Fatalf("AfterLoginURL default expected '/dashboard', got %q", cfg.AfterLoginURL)
	}
	if cfg.SMTPFrom != "no-reply@authkit" || cfg.SMTPSecurity != "starttls" || cfg.SMTPPort != 587 {
		t.Fatalf("smtp defaults unexpected: from=%q security=%q port=%d", cfg.SMTPFrom, cfg.SMTPSecurity, cfg.SMTPPort)
	}
	if cfg.TokenFile == "" || cfg.ClientDBPath == "" {
		t.Fatalf("client defaults must be non-empty: TokenFile=%q, ClientDBPath=%q", cfg.TokenFile, cfg.ClientDBPath)
	}
}

func TestNewConfig_BaseURLAndHTTPS(t *testing.T) {
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("JWT_ACCESS_MIN", "5")
	t.Setenv("TOKEN_BACKEND", "keyring")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "example.com:443" {
		t.Fatalf("BaseURL expected 'example.com:443', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected 'https://example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.AccessTokenMin != 5 {
		t.Fatalf("AccessTokenMin expected 5, got %d", cfg.AccessTokenMin)
	}
	if cfg.TokenBackend != BackendKeyring {
		t.Fatalf("TokenBackend expected keyring, got %q", cfg.TokenBackend)
	}
}

func TestNewConfig_InvalidValuesFallback(t *testing.T) {
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8081
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("ENABLE_HTTPS", "false")
	t.Setenv("TOKEN_BACKEND", "floppy")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8081', got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://localhost:8081") {
		t.Fatalf("ServerURL must reflect fallback base, got %q", cfg.ServerURL)
	}
	if cfg.TokenBackend != BackendFile {
		t.Fatalf("unknown backend must fallback to file, got %q", cfg.TokenBackend)
	}
}
