package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Currency  CurrencyConfig
	Notify    NotifyConfig
	Reporting ReportingConfig
	LogMode   string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig locates the flat-file durable store.
type StorageConfig struct {
	DataDir   string
	MenuFile  string
	SalesFile string
}

// CurrencyConfig controls how monetary amounts are displayed.
type CurrencyConfig struct {
	Code string
}

// NotifyConfig holds webhook notification settings. An empty WebhookURL
// disables outbound notifications entirely.
type NotifyConfig struct {
	WebhookURL        string
	AuthToken         string
	LowStockThreshold int
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	threshold, err := getenvInt("LOW_STOCK_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			DataDir:   getenvWithDefault("DATA_DIR", "./data"),
			MenuFile:  getenvWithDefault("MENU_FILE", "menu.txt"),
			SalesFile: getenvWithDefault("SALES_FILE", "sales.txt"),
		},
		Currency: CurrencyConfig{
			Code: getenvWithDefault("CURRENCY_CODE", "BDT"),
		},
		Notify: NotifyConfig{
			WebhookURL:        os.Getenv("NOTIFY_WEBHOOK_URL"),
			AuthToken:         os.Getenv("NOTIFY_AUTH_TOKEN"),
			LowStockThreshold: threshold,
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 22 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Dhaka"),
		},
		LogMode: getenvWithDefault("LOG_MODE", "production"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Storage.DataDir == "":
		return errors.New("DATA_DIR must be provided")
	case c.Storage.MenuFile == "":
		return errors.New("MENU_FILE must be provided")
	case c.Storage.SalesFile == "":
		return errors.New("SALES_FILE must be provided")
	}

	if c.Storage.MenuFile == c.Storage.SalesFile {
		return errors.New("MENU_FILE and SALES_FILE must name different files")
	}

	if c.Currency.Code == "" {
		return errors.New("CURRENCY_CODE must not be empty")
	}

	if c.Notify.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD must not be negative")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.LogMode != "production" && c.LogMode != "development" {
		return fmt.Errorf("LOG_MODE must be production or development, got %q", c.LogMode)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
