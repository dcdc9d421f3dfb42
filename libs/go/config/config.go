package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
	"go.uber.org/multierr"
)

// Config holds all runtime configuration
type Config struct {
	Server    ServerConfig
	Issuer    layout.IssuerProfile
	Money     MoneyConfig
	Export    ExportConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Stage          string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type MoneyConfig struct {
	CurrencyCode string
	NumberLocale string
}

// ExportConfig selects and addresses the bookkeeping row sink
type ExportConfig struct {
	Enabled         bool
	Sink            string
	ScriptURL       string
	SummaryURL      string
	Token           string
	TokenSecretARN  string
	QueueURL        string
	SummaryQueueURL string
	Timezone        string
	Timeout         time.Duration
	MaxRetries      int
}

func (e ExportConfig) destination() string {
	if e.Sink == constants.SQSSinkKind {
		return e.QueueURL
	}
	return e.ScriptURL
}

type EmailConfig struct {
	APIKey   string
	From     string
	FromName string
}

// Enabled reports whether documents can be emailed
func (e EmailConfig) Enabled() bool {
	return e.APIKey != "" && e.From != ""
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Stage:          getEnv("STAGE", helpers.StageLocal),
			Port:           getEnv("PORT", "8080"),
			ReadTimeout:    getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders: getEnvList("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "X-Correlation-ID", "X-API-Key"}),
		},
		Issuer: layout.IssuerProfile{
			Name:       getEnv("COMPANY_NAME", "Ledgerprint Works"),
			Address:    getEnv("COMPANY_ADDRESS", ""),
			City:       getEnv("COMPANY_CITY", ""),
			PostalCode: getEnv("COMPANY_POSTAL_CODE", ""),
			Phone:      getEnv("COMPANY_PHONE", ""),
			Email:      getEnv("COMPANY_EMAIL", ""),
			FooterNote: getEnv("COMPANY_FOOTER_NOTE", constants.DefaultFooterNote),
		},
		Money: MoneyConfig{
			CurrencyCode: strings.ToUpper(getEnv("CURRENCY_CODE", constants.DefaultCurrencyCode)),
			NumberLocale: getEnv("NUMBER_LOCALE", constants.DefaultNumberLocale),
		},
		Export: ExportConfig{
			Sink:            strings.ToLower(getEnv("EXPORT_SINK", constants.HTTPSinkKind)),
			ScriptURL:       getEnv("SHEETS_SCRIPT_URL", constants.DefaultSheetsScriptURL),
			SummaryURL:      getEnv("SHEETS_SUMMARY_URL", ""),
			Token:           getEnv("SHEETS_TOKEN", ""),
			TokenSecretARN:  getEnv("SHEETS_TOKEN_SECRET_ARN", ""),
			QueueURL:        getEnv("EXPORT_SQS_QUEUE_URL", ""),
			SummaryQueueURL: getEnv("EXPORT_SQS_SUMMARY_QUEUE_URL", ""),
			Timezone:        getEnv("EXPORT_TIMEZONE", constants.DefaultExportTimezone),
			Timeout:         getEnvDuration("EXPORT_TIMEOUT", 0),
			MaxRetries:      getEnvInt("EXPORT_MAX_RETRIES", 0),
		},
		Email: EmailConfig{
			APIKey:   getEnv("RESEND_API_KEY", ""),
			From:     getEnv("EMAIL_FROM", ""),
			FromName: getEnv("EMAIL_FROM_NAME", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvInt("RATE_LIMIT_RPS", 20),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 40),
		},
	}
	// export is on by default only when the selected sink has somewhere to deliver
	cfg.Export.Enabled = getEnvBool("EXPORT_ENABLED", cfg.Export.destination() != "")
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = cfg.Issuer.Name
	}
	return cfg
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var err error
	if !helpers.IsValidStage(c.Server.Stage) {
		err = multierr.Append(err, fmt.Errorf("invalid STAGE %q", c.Server.Stage))
	}
	if strings.TrimSpace(c.Issuer.Name) == "" {
		err = multierr.Append(err, fmt.Errorf("COMPANY_NAME must not be empty"))
	}
	if len(c.Money.CurrencyCode) != 3 {
		err = multierr.Append(err, fmt.Errorf("CURRENCY_CODE must be a 3-letter code, got %q", c.Money.CurrencyCode))
	}
	if c.Export.Enabled {
		switch c.Export.Sink {
		case constants.HTTPSinkKind:
			if !isAbsoluteURL(c.Export.ScriptURL) {
				err = multierr.Append(err, fmt.Errorf("SHEETS_SCRIPT_URL must be an absolute URL when EXPORT_SINK=http, got %q", c.Export.ScriptURL))
			}
			if c.Export.SummaryURL != "" && !isAbsoluteURL(c.Export.SummaryURL) {
				err = multierr.Append(err, fmt.Errorf("SHEETS_SUMMARY_URL must be an absolute URL, got %q", c.Export.SummaryURL))
			}
		case constants.SQSSinkKind:
			if c.Export.QueueURL == "" {
				err = multierr.Append(err, fmt.Errorf("EXPORT_SQS_QUEUE_URL is required when EXPORT_SINK=sqs"))
			}
		default:
			err = multierr.Append(err, fmt.Errorf("unknown EXPORT_SINK %q", c.Export.Sink))
		}
	}
	if c.Export.MaxRetries < 0 {
		err = multierr.Append(err, fmt.Errorf("EXPORT_MAX_RETRIES must not be negative"))
	}
	if c.Email.APIKey != "" && !helpers.IsEmailValid(c.Email.From) {
		err = multierr.Append(err, fmt.Errorf("EMAIL_FROM must be a valid address when RESEND_API_KEY is set"))
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		err = multierr.Append(err, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	return err
}

// IsDevelopment reports whether verbose request logging applies
func (c *Config) IsDevelopment() bool {
	return c.Server.Stage != helpers.StageProd
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
