package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for a report run
type Config struct {
	DBPath  string // empty disables the run ledger
	Input   InputConfig
	HTTP    HTTPConfig
	Filter  FilterConfig
	Images  ImagesConfig
	Report  ReportConfig
	History HistoryConfig
	Log     LogConfig
}

// InputConfig holds where pages come from
type InputConfig struct {
	Dir  string   // directory of saved departures boards
	URLs []string // aircraft history pages
}

// HTTPConfig holds settings shared by page and image downloads
type HTTPConfig struct {
	UserAgent string
	Timeout   time.Duration // zero keeps the transport default
}

// FilterConfig holds the admission keywords
type FilterConfig struct {
	Include []string // aircraft model fragments to keep
	Exclude []string // aircraft model fragments to drop
	Search  string   // place name matched against origin and destination
}

// ImagesConfig holds the logo cache settings
type ImagesConfig struct {
	Dir string
}

// ReportConfig holds artifact settings
type ReportConfig struct {
	XLSXPath      string
	CSVPath       string
	OnConflict    string // "suffix", "rotate" or empty for the variant default
	ThumbnailSize int
	ColumnPadding int
}

// HistoryConfig holds settings of the history command
type HistoryConfig struct {
	Limit int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from configPath, or from the usual search paths
// when it is empty, and then from environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("db_path", "flight_report.db")
	v.SetDefault("input.dir", ".")
	v.SetDefault("input.urls", []string{})
	v.SetDefault("http.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("http.timeout", "0s")
	v.SetDefault("filter.include", []string{"74", "75", "76", "77", "78", "33", "35", "36", "38"})
	v.SetDefault("filter.exclude", []string{"738", "733", "B38M"})
	v.SetDefault("filter.search", "shenzhen")
	v.SetDefault("images.dir", "images")
	v.SetDefault("report.xlsx_path", "extracted_flight_info.xlsx")
	v.SetDefault("report.csv_path", "output.csv")
	v.SetDefault("report.on_conflict", "")
	v.SetDefault("report.thumbnail_size", 50)
	v.SetDefault("report.column_padding", 2)
	v.SetDefault("history.limit", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Set config file name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Set config file search paths
	v.AddConfigPath("/etc/flight_report")
	v.AddConfigPath(".")

	if configPath == "" {
		configPath = os.Getenv("FLIGHT_REPORT_CONFIG_PATH")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults + env vars
	}

	// Set environment variable prefix
	v.SetEnvPrefix("FLIGHT_REPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		DBPath: v.GetString("db_path"),
		Input: InputConfig{
			Dir:  v.GetString("input.dir"),
			URLs: v.GetStringSlice("input.urls"),
		},
		HTTP: HTTPConfig{
			UserAgent: v.GetString("http.user_agent"),
			Timeout:   v.GetDuration("http.timeout"),
		},
		Filter: FilterConfig{
			Include: v.GetStringSlice("filter.include"),
			Exclude: v.GetStringSlice("filter.exclude"),
			Search:  v.GetString("filter.search"),
		},
		Images: ImagesConfig{
			Dir: v.GetString("images.dir"),
		},
		Report: ReportConfig{
			XLSXPath:      v.GetString("report.xlsx_path"),
			CSVPath:       v.GetString("report.csv_path"),
			OnConflict:    normalize(v.GetString("report.on_conflict")),
			ThumbnailSize: v.GetInt("report.thumbnail_size"),
			ColumnPadding: v.GetInt("report.column_padding"),
		},
		History: HistoryConfig{
			Limit: v.GetInt("history.limit"),
		},
		Log: LogConfig{
			Level:  normalize(v.GetString("log.level")),
			Format: normalize(v.GetString("log.format")),
		},
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// normalize folds enum-like values so that consumers can compare them directly
func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.Images.Dir == "" {
		return fmt.Errorf("images.dir is required")
	}

	if cfg.Report.XLSXPath == "" || cfg.Report.CSVPath == "" {
		return fmt.Errorf("report.xlsx_path and report.csv_path are required")
	}

	if cfg.Report.ThumbnailSize <= 0 {
		return fmt.Errorf("report.thumbnail_size must be greater than 0")
	}

	if cfg.Report.ColumnPadding < 0 {
		return fmt.Errorf("report.column_padding must not be negative")
	}

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}

	if cfg.History.Limit <= 0 {
		return fmt.Errorf("history.limit must be greater than 0")
	}

	validConflicts := map[string]bool{
		"":       true,
		"suffix": true,
		"rotate": true,
	}
	if !validConflicts[cfg.Report.OnConflict] {
		return fmt.Errorf("invalid report.on_conflict: %s (must be suffix or rotate)", cfg.Report.OnConflict)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[cfg.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
