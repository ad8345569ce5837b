package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RedisURL        string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	Location        *time.Location
	CartPagePath    string
	SessionTTL      time.Duration
	CookieSecure    bool
	RateLimitRPS    float64
	RateLimitBurst  int
	DashboardMonths int
	Mail            MailConfig
	Push            PushConfig
	Notify          NotifyConfig
	Staff           StaffAccount
}

// StaffAccount is provisioned on startup when Login and Password are set.
type StaffAccount struct {
	Login    string
	Email    string
	Password string
	Role     string
}

// MailConfig selects e-mail transport and its credentials.
type MailConfig struct {
	Transport  string
	From       string
	Recipients []string
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	APIURL     string
	APIKey     string
}

// PushConfig enables SNS push delivery.
type PushConfig struct {
	Enabled  bool
	Region   string
	Endpoint string
}

// NotifyConfig bounds notification delivery.
type NotifyConfig struct {
	Timeout   time.Duration
	Workers   int
	QueueSize int
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultTimezone        = "Europe/Zurich"
	defaultCartPagePath    = "/cart"
	defaultSessionTTL      = 30 * time.Minute
	defaultRateLimitRPS    = 5
	defaultRateLimitBurst  = 10
	defaultDashboardMonths = 6
	defaultMailTransport   = "log"
	defaultMailFrom        = "orders@sushibar.local"
	defaultSMTPPort        = 587
	defaultNotifyTimeout   = 5 * time.Second
	defaultNotifyWorkers   = 2
	defaultNotifyQueue     = 64
	defaultStaffRole       = "management"
)

// Load parses configuration from flags and environment variables.
// Values from a local .env file are applied first without overriding the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisURL:        getString(lookup, "REDIS_URL", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		CartPagePath:    getString(lookup, "CART_PAGE_PATH", defaultCartPagePath),
		SessionTTL:      getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		CookieSecure:    getBool(lookup, "COOKIE_SECURE", false),
		RateLimitRPS:    getFloat(lookup, "RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:  getInt(lookup, "RATE_LIMIT_BURST", defaultRateLimitBurst),
		DashboardMonths: getInt(lookup, "DASHBOARD_MONTHS", defaultDashboardMonths),
		Mail: MailConfig{
			Transport:  strings.ToLower(getString(lookup, "MAIL_TRANSPORT", defaultMailTransport)),
			From:       getString(lookup, "MAIL_FROM", defaultMailFrom),
			Recipients: splitList(getString(lookup, "MAIL_RECIPIENTS", "")),
			SMTPHost:   getString(lookup, "SMTP_HOST", ""),
			SMTPPort:   getInt(lookup, "SMTP_PORT", defaultSMTPPort),
			SMTPUser:   getString(lookup, "SMTP_USER", ""),
			SMTPPass:   getString(lookup, "SMTP_PASS", ""),
			APIURL:     getString(lookup, "MAIL_API_URL", ""),
			APIKey:     getString(lookup, "MAIL_API_KEY", ""),
		},
		Push: PushConfig{
			Enabled:  getBool(lookup, "PUSH_ENABLED", false),
			Region:   getString(lookup, "AWS_REGION", ""),
			Endpoint: getString(lookup, "AWS_ENDPOINT", ""),
		},
		Staff: StaffAccount{
			Login:    getString(lookup, "STAFF_LOGIN", ""),
			Email:    getString(lookup, "STAFF_EMAIL", ""),
			Password: getString(lookup, "STAFF_PASSWORD", ""),
			Role:     strings.ToLower(getString(lookup, "STAFF_ROLE", defaultStaffRole)),
		},
		Notify: NotifyConfig{
			Timeout:   getDuration(lookup, "NOTIFY_TIMEOUT", defaultNotifyTimeout),
			Workers:   getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
			QueueSize: getInt(lookup, "NOTIFY_QUEUE", defaultNotifyQueue),
		},
	}

	fs := flag.NewFlagSet("sushibar", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		timezone           = getString(lookup, "TIMEZONE", defaultTimezone)
		recipients         = strings.Join(cfg.Mail.Recipients, ",")
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		notifyTimeoutStr   = cfg.Notify.Timeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for visitor sessions")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&timezone, "tz", timezone, "Restaurant time zone")
	fs.StringVar(&cfg.Mail.Transport, "mail-transport", cfg.Mail.Transport, "E-mail transport (smtp, api, log)")
	fs.StringVar(&recipients, "mail-recipients", recipients, "Comma separated staff recipients")
	fs.StringVar(&notifyTimeoutStr, "notify-timeout", notifyTimeoutStr, "Per-notification delivery timeout")
	fs.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "Mark auth cookie as Secure")
	fs.StringVar(&cfg.Staff.Login, "staff-login", cfg.Staff.Login, "Login of the staff account seeded on startup")
	fs.IntVar(&cfg.Notify.Workers, "notify-workers", cfg.Notify.Workers, "Number of notification workers")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.Notify.Timeout, err = time.ParseDuration(notifyTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid notify timeout: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	cfg.Mail.Recipients = splitList(recipients)
	cfg.Mail.Transport = strings.ToLower(cfg.Mail.Transport)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateLimitRPS
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.DashboardMonths <= 0 {
		cfg.DashboardMonths = defaultDashboardMonths
	}

	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = defaultNotifyTimeout
	}

	if cfg.Notify.Workers <= 0 {
		cfg.Notify.Workers = defaultNotifyWorkers
	}

	if cfg.Notify.QueueSize <= 0 {
		cfg.Notify.QueueSize = defaultNotifyQueue
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	switch cfg.Staff.Role {
	case "staff", "management":
	default:
		return nil, fmt.Errorf("staff role must be staff or management, got %q", cfg.Staff.Role)
	}

	if (cfg.Staff.Login == "") != (cfg.Staff.Password == "") {
		return nil, fmt.Errorf("staff login and password must be provided together")
	}

	switch cfg.Mail.Transport {
	case "log":
	case "smtp":
		if cfg.Mail.SMTPHost == "" {
			return nil, fmt.Errorf("smtp host must be provided for smtp transport")
		}
	case "api":
		if cfg.Mail.APIURL == "" {
			return nil, fmt.Errorf("mail api url must be provided for api transport")
		}
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Mail.Transport)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
