package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	PaymentAddress  string
	PaymentAPIKey   string
	PaymentCurrency string
	TokenSecret     string

	IntentPollInterval time.Duration
	WorkerPoolSize     int
	MaxIntentsBatch    int
	ShutdownTimeout    time.Duration
	LookupTimeout      time.Duration
	ContentGrantTTL    time.Duration
	AuthRatePerSecond  float64
	AuthRateBurst      int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

const (
	defaultRunAddress         = ":8080"
	defaultTokenSecret        = "change-me-in-production"
	defaultPaymentCurrency    = "usd"
	defaultIntentPollInterval = 3 * time.Second
	defaultWorkerPoolSize     = 4
	defaultMaxIntentsBatch    = 32
	defaultShutdownTimeout    = 10 * time.Second
	defaultLookupTimeout      = 3 * time.Second
	defaultContentGrantTTL    = 2 * time.Minute
	defaultAuthRatePerSecond  = 5
	defaultAuthRateBurst      = 10
)

// Load parses configuration from a .env file (when present), environment
// variables, and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		PaymentAddress:     getString(lookup, "PAYMENT_SYSTEM_ADDRESS", ""),
		PaymentAPIKey:      getString(lookup, "PAYMENT_API_KEY", ""),
		PaymentCurrency:    getString(lookup, "PAYMENT_CURRENCY", defaultPaymentCurrency),
		TokenSecret:        getString(lookup, "AUTH_SECRET", defaultTokenSecret),
		IntentPollInterval: getDuration(lookup, "INTENT_POLL_INTERVAL", defaultIntentPollInterval),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxIntentsBatch:    getInt(lookup, "POLL_BATCH_SIZE", defaultMaxIntentsBatch),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LookupTimeout:      getDuration(lookup, "CATALOG_LOOKUP_TIMEOUT", defaultLookupTimeout),
		ContentGrantTTL:    getDuration(lookup, "CONTENT_GRANT_TTL", defaultContentGrantTTL),
		AuthRatePerSecond:  getFloat(lookup, "AUTH_RATE_PER_SECOND", defaultAuthRatePerSecond),
		AuthRateBurst:      getInt(lookup, "AUTH_RATE_BURST", defaultAuthRateBurst),
		SMTPHost:           getString(lookup, "SMTP_HOST", ""),
		SMTPPort:           getInt(lookup, "SMTP_PORT", 587),
		SMTPUser:           getString(lookup, "SMTP_USER", ""),
		SMTPPass:           getString(lookup, "SMTP_PASS", ""),
		MailFrom:           getString(lookup, "MAIL_FROM", ""),
	}

	fs := flag.NewFlagSet("ebiblio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.IntentPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		lookupTimeoutStr   = cfg.LookupTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentAddress, "p", cfg.PaymentAddress, "Payment processor base URL")
	fs.StringVar(&cfg.PaymentAPIKey, "payment-key", cfg.PaymentAPIKey, "Payment processor API key")
	fs.StringVar(&cfg.PaymentCurrency, "currency", cfg.PaymentCurrency, "Default charge currency")
	fs.StringVar(&cfg.TokenSecret, "auth-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent intent workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between payment status polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&lookupTimeoutStr, "lookup-timeout", lookupTimeoutStr, "Timeout per catalog backfill lookup")
	fs.IntVar(&cfg.MaxIntentsBatch, "poll-batch", cfg.MaxIntentsBatch, "Maximum intents per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.IntentPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.LookupTimeout, err = time.ParseDuration(lookupTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid lookup timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxIntentsBatch <= 0 {
		cfg.MaxIntentsBatch = defaultMaxIntentsBatch
	}

	if cfg.IntentPollInterval <= 0 {
		cfg.IntentPollInterval = defaultIntentPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = defaultLookupTimeout
	}

	if cfg.ContentGrantTTL <= 0 {
		cfg.ContentGrantTTL = defaultContentGrantTTL
	}

	if cfg.AuthRatePerSecond <= 0 {
		cfg.AuthRatePerSecond = defaultAuthRatePerSecond
	}

	if cfg.AuthRateBurst <= 0 {
		cfg.AuthRateBurst = defaultAuthRateBurst
	}

	if len(cfg.PaymentCurrency) != 3 {
		return nil, fmt.Errorf("invalid default currency %q", cfg.PaymentCurrency)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentAddress == "" {
		return nil, fmt.Errorf("payment processor address must be provided")
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

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
