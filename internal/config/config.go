package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Stock and storage backends accepted by the configuration.
const (
	StockSourceHerd   = "herd"
	StockSourceRemote = "remote"

	OrderBackendRemote  = "remote"
	OrderBackendMongoDB = "mongodb"
	OrderBackendMemory  = "memory"

	LedgerBackendMemory = "memory"
	LedgerBackendRedis  = "redis"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	YakShop   YakShopConfig
	Pricing   PricingConfig
	Storage   StorageConfig
	Redis     RedisConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// YakShopConfig points at the upstream herd/stock/orders API.
type YakShopConfig struct {
	BaseURL     string
	Timeout     time.Duration
	StockSource string
}

// PricingConfig holds per-unit prices and the per-field order bound.
type PricingConfig struct {
	MilkPricePerLiter float64
	WoolPricePerSkin  float64
	MaxOrderUnits     float64
}

// StorageConfig selects where orders and the stock ledger live.
type StorageConfig struct {
	OrderBackend  string
	LedgerBackend string
}

// RedisConfig holds settings for the Redis ledger.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration required to export reports to Google
// Sheets. Export is disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the spreadsheet export is configured.
func (s SheetsConfig) Enabled() bool {
	return s.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule     string
	StockRefreshCron string
	Timezone         string
}

// Location resolves the configured timezone.
func (r ReportingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
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
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	timeout, err := getenvDuration("YAKSHOP_API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	milkPrice, err := getenvFloat("MILK_PRICE_PER_LITER", 30)
	if err != nil {
		return nil, err
	}
	woolPrice, err := getenvFloat("WOOL_PRICE_PER_SKIN", 500)
	if err != nil {
		return nil, err
	}
	maxUnits, err := getenvFloat("MAX_ORDER_UNITS", 1000)
	if err != nil {
		return nil, err
	}
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		YakShop: YakShopConfig{
			BaseURL:     getenvWithDefault("YAKSHOP_API_URL", "https://yakshop-db.onrender.com"),
			Timeout:     timeout,
			StockSource: getenvWithDefault("STOCK_SOURCE", StockSourceHerd),
		},
		Pricing: PricingConfig{
			MilkPricePerLiter: milkPrice,
			WoolPricePerSkin:  woolPrice,
			MaxOrderUnits:     maxUnits,
		},
		Storage: StorageConfig{
			OrderBackend:  getenvWithDefault("ORDER_BACKEND", OrderBackendRemote),
			LedgerBackend: getenvWithDefault("LEDGER_BACKEND", LedgerBackendMemory),
		},
		Redis: RedisConfig{
			Addr:     getenvWithDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "yakshop"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule:     getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			StockRefreshCron: getenvWithDefault("STOCK_REFRESH_CRON", "*/15 * * * *"),
			Timezone:         getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
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

	if c.YakShop.BaseURL == "" {
		return errors.New("YAKSHOP_API_URL must not be empty")
	}

	switch c.YakShop.StockSource {
	case StockSourceHerd, StockSourceRemote:
	default:
		return fmt.Errorf("STOCK_SOURCE must be %q or %q, got %q", StockSourceHerd, StockSourceRemote, c.YakShop.StockSource)
	}

	switch {
	case c.Pricing.MilkPricePerLiter < 0:
		return errors.New("MILK_PRICE_PER_LITER must not be negative")
	case c.Pricing.WoolPricePerSkin < 0:
		return errors.New("WOOL_PRICE_PER_SKIN must not be negative")
	case c.Pricing.MaxOrderUnits <= 0:
		return errors.New("MAX_ORDER_UNITS must be positive")
	}

	switch c.Storage.OrderBackend {
	case OrderBackendRemote, OrderBackendMemory:
	case OrderBackendMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when ORDER_BACKEND=mongodb")
		}
	default:
		return fmt.Errorf("unsupported ORDER_BACKEND %q", c.Storage.OrderBackend)
	}

	switch c.Storage.LedgerBackend {
	case LedgerBackendMemory:
	case LedgerBackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR must be provided when LEDGER_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unsupported LEDGER_BACKEND %q", c.Storage.LedgerBackend)
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.Sheets.Enabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided with GOOGLE_SHEET_DATABASE_ID")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.StockRefreshCron == "" {
		return errors.New("STOCK_REFRESH_CRON must be provided")
	}

	if _, err := c.Reporting.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return i, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
