package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data source kinds accepted by DATA_SOURCE.
const (
	SourceAuto      = "auto"
	SourceSeed      = "seed"
	SourcePostgrest = "postgrest"
	SourceMongoDB   = "mongodb"
	SourceBolt      = "bolt"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Data      DataConfig
	Supabase  SupabaseConfig
	MongoDB   MongoDBConfig
	Bolt      BoltConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	Settings  Settings
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the logger level and encoder.
type LogConfig struct {
	Level       string
	Development bool
}

// DataConfig selects the record source backing every store.
type DataConfig struct {
	Source string
	// SeedEmptyRemote inserts the seed records into remote tables that load empty.
	SeedEmptyRemote bool
}

// SupabaseConfig contains the PostgREST endpoint and credentials.
type SupabaseConfig struct {
	URL         string
	AnonKey     string
	TablePrefix string
}

// Configured reports whether real credentials were supplied. Empty values
// and the placeholder credentials shipped in sample env files do not count.
func (s SupabaseConfig) Configured() bool {
	if s.URL == "" || s.AnonKey == "" {
		return false
	}
	return !strings.Contains(s.URL, "placeholder") && !strings.Contains(s.AnonKey, "placeholder")
}

// Table returns the prefixed table name.
func (s SupabaseConfig) Table(name string) string {
	return s.TablePrefix + name
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// BoltConfig locates the embedded database file.
type BoltConfig struct {
	Path string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether report export to Google Sheets is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule         string
	LowStockCronSchedule string
	Timezone             string
}

// Location resolves the reporting timezone.
func (r ReportingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

// Settings are the application preferences exposed to clients.
type Settings struct {
	CompanyName       string `json:"company_name"`
	CurrencySymbol    string `json:"currency_symbol"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	DateFormat        string `json:"date_format"`
	Timezone          string `json:"timezone"`
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

	threshold, err := getenvInt("LOW_STOCK_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}
	seedEmpty, err := getenvBool("SEED_EMPTY_REMOTE", true)
	if err != nil {
		return nil, err
	}
	development, err := getenvBool("LOG_DEVELOPMENT", false)
	if err != nil {
		return nil, err
	}

	timezone := getenvWithDefault("TIMEZONE", "UTC")

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level:       getenvWithDefault("LOG_LEVEL", "info"),
			Development: development,
		},
		Data: DataConfig{
			Source:          strings.ToLower(getenvWithDefault("DATA_SOURCE", SourceAuto)),
			SeedEmptyRemote: seedEmpty,
		},
		Supabase: SupabaseConfig{
			URL:         os.Getenv("SUPABASE_URL"),
			AnonKey:     os.Getenv("SUPABASE_ANON_KEY"),
			TablePrefix: getenvWithDefault("SUPABASE_TABLE_PREFIX", "app_eb818_"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "stockroom"),
		},
		Bolt: BoltConfig{
			Path: getenvWithDefault("BOLT_PATH", "data/stockroom.db"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule:         getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			LowStockCronSchedule: getenvWithDefault("LOW_STOCK_CRON_SCHEDULE", "0 8 * * *"),
			Timezone:             timezone,
		},
		Settings: Settings{
			CompanyName:       getenvWithDefault("COMPANY_NAME", "My Company"),
			CurrencySymbol:    getenvWithDefault("CURRENCY_SYMBOL", "$"),
			LowStockThreshold: threshold,
			DateFormat:        getenvWithDefault("DATE_FORMAT", "MM/DD/YYYY"),
			Timezone:          timezone,
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

	switch c.Data.Source {
	case SourceAuto, SourceSeed:
	case SourcePostgrest:
		if !c.Supabase.Configured() {
			return errors.New("SUPABASE_URL and SUPABASE_ANON_KEY must be provided for DATA_SOURCE=postgrest")
		}
	case SourceMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided for DATA_SOURCE=mongodb")
		}
	case SourceBolt:
		if c.Bolt.Path == "" {
			return errors.New("BOLT_PATH must be provided for DATA_SOURCE=bolt")
		}
	default:
		return fmt.Errorf("DATA_SOURCE %q must be one of auto, seed, postgrest, mongodb, bolt", c.Data.Source)
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := c.Reporting.Location(); err != nil {
		return err
	}

	if c.Settings.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD must not be negative")
	}

	return nil
}

// SourceKind resolves DATA_SOURCE=auto: PostgREST when real Supabase
// credentials are set, then MongoDB when a URI is set, else the seed data.
func (c *Config) SourceKind() string {
	if c.Data.Source != SourceAuto {
		return c.Data.Source
	}
	switch {
	case c.Supabase.Configured():
		return SourcePostgrest
	case c.MongoDB.URI != "":
		return SourceMongoDB
	default:
		return SourceSeed
	}
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
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
