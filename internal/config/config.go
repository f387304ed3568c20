package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN     string `env:"DATABASE_URI"`
	ServerDBPath    string `env:"SERVER_DB_PATH"`
	AuthSecret      string `env:"AUTH_SECRET"`
	AccessTokenMin  int    `env:"JWT_ACCESS_MIN" envDefault:"60"`
	RefreshTokenDay int    `env:"JWT_REFRESH_DAYS" envDefault:"7"`
	CodeExpMin      int    `env:"CODE_EXP_MIN" envDefault:"15"`
	MaxCodeAttempts int    `env:"MAX_CODE_ATTEMPTS" envDefault:"6"`
	DebugEmailCodes bool   `env:"DEBUG_EMAIL_CODES"`

	// Outgoing mail (empty host → codes are only logged)
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPSecurity string `env:"SMTP_SECURITY" envDefault:"starttls"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL     string `env:"-"`
	TokenBackend  string `env:"TOKEN_BACKEND"`
	TokenFile     string `env:"TOKEN_FILE"`
	ClientDBPath  string `env:"CLIENT_DB_PATH"`
	AfterLoginURL string `env:"AFTER_LOGIN_URL"`
	Verbose       bool   `env:"VERBOSE"`
	Version       bool   `env:"-"` // show client version and exit (flag only)
}

// Token storage backends understood by the client.
const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
	BackendSQLite  = "sqlite"
)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres DSN (empty: local sqlite file)")
	flag.StringVar(&cfg.ServerDBPath, "server-db", cfg.ServerDBPath, "path to server SQLite DB when no DSN is given")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "secret used to sign JWTs")
	flag.BoolVar(&cfg.DebugEmailCodes, "debug-codes", cfg.DebugEmailCodes, "log raw email codes (development only)")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the auth server as host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "use https scheme for the server URL")
	// Client flags
	flag.StringVar(&cfg.TokenBackend, "token-backend", cfg.TokenBackend, "access token storage: file, keyring or sqlite")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to access token file (file backend)")
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "path to client SQLite DB (sqlite backend)")
	flag.StringVar(&cfg.AfterLoginURL, "after-login", cfg.AfterLoginURL, "location to navigate to after login")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log outgoing requests")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.AccessTokenMin <= 0 {
		cfg.AccessTokenMin = 60
	}
	if cfg.RefreshTokenDay <= 0 {
		cfg.RefreshTokenDay = 7
	}
	if cfg.CodeExpMin <= 0 {
		cfg.CodeExpMin = 15
	}
	if cfg.MaxCodeAttempts <= 0 {
		cfg.MaxCodeAttempts = 6
	}

	switch cfg.TokenBackend {
	case BackendFile, BackendKeyring, BackendSQLite:
	default:
		cfg.TokenBackend = BackendFile
	}
	if cfg.AfterLoginURL == "" {
		cfg.AfterLoginURL = "/dashboard"
	}
	if cfg.SMTPPort <= 0 {
		cfg.SMTPPort = 587
	}
	if cfg.SMTPSecurity == "" {
		cfg.SMTPSecurity = "starttls"
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = "no-reply@authkit"
	}

	home, _ := os.UserHomeDir()
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(home, ".authkit_access")
	}
	if cfg.ClientDBPath == "" {
		cfg.ClientDBPath = filepath.Join(home, "authkit.db")
	}
	if cfg.ServerDBPath == "" {
		cfg.ServerDBPath = "authkit-server.db"
	}
}
