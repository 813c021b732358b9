package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FLIGHT_REPORT_CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "flight_report.db", cfg.DBPath)
	assert.Equal(t, ".", cfg.Input.Dir)
	assert.Empty(t, cfg.Input.URLs)
	assert.Equal(t, []string{"74", "75", "76", "77", "78", "33", "35", "36", "38"}, cfg.Filter.Include)
	assert.Equal(t, []string{"738", "733", "B38M"}, cfg.Filter.Exclude)
	assert.Equal(t, "shenzhen", cfg.Filter.Search)
	assert.Equal(t, "images", cfg.Images.Dir)
	assert.Equal(t, "extracted_flight_info.xlsx", cfg.Report.XLSXPath)
	assert.Equal(t, "output.csv", cfg.Report.CSVPath)
	assert.Equal(t, 50, cfg.Report.ThumbnailSize)
	assert.Equal(t, 2, cfg.Report.ColumnPadding)
	assert.Equal(t, time.Duration(0), cfg.HTTP.Timeout)
	assert.Contains(t, cfg.HTTP.UserAgent, "Mozilla/5.0")
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: ""
input:
  urls:
    - https://www.flightradar24.com/data/aircraft/b-5976
    - https://www.flightradar24.com/data/aircraft/b-6507
http:
  timeout: 30s
filter:
  search: guangzhou
  include: ["35"]
report:
  csv_path: reports/history.csv
  on_conflict: suffix
log:
  level: debug
  format: json
`), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, []string{
		"https://www.flightradar24.com/data/aircraft/b-5976",
		"https://www.flightradar24.com/data/aircraft/b-6507",
	}, cfg.Input.URLs)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "guangzhou", cfg.Filter.Search)
	assert.Equal(t, []string{"35"}, cfg.Filter.Include)
	assert.Equal(t, "reports/history.csv", cfg.Report.CSVPath)
	assert.Equal(t, "suffix", cfg.Report.OnConflict)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FLIGHT_REPORT_CONFIG_PATH", "")
	t.Setenv("FLIGHT_REPORT_FILTER_SEARCH", "hong kong")
	t.Setenv("FLIGHT_REPORT_IMAGES_DIR", "/tmp/logos")
	t.Setenv("FLIGHT_REPORT_REPORT_THUMBNAIL_SIZE", "64")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "hong kong", cfg.Filter.Search)
	assert.Equal(t, "/tmp/logos", cfg.Images.Dir)
	assert.Equal(t, 64, cfg.Report.ThumbnailSize)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Images:  ImagesConfig{Dir: "images"},
			Report:  ReportConfig{XLSXPath: "a.xlsx", CSVPath: "a.csv", ThumbnailSize: 50, ColumnPadding: 2},
			History: HistoryConfig{Limit: 20},
			Log:     LogConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no image dir", mutate: func(c *Config) { c.Images.Dir = "" }, wantErr: "images.dir"},
		{name: "no csv path", mutate: func(c *Config) { c.Report.CSVPath = "" }, wantErr: "report.csv_path"},
		{name: "zero thumbnail", mutate: func(c *Config) { c.Report.ThumbnailSize = 0 }, wantErr: "thumbnail_size"},
		{name: "negative padding", mutate: func(c *Config) { c.Report.ColumnPadding = -1 }, wantErr: "column_padding"},
		{name: "negative timeout", mutate: func(c *Config) { c.HTTP.Timeout = -time.Second }, wantErr: "http.timeout"},
		{name: "zero history limit", mutate: func(c *Config) { c.History.Limit = 0 }, wantErr: "history.limit"},
		{name: "bad conflict policy", mutate: func(c *Config) { c.Report.OnConflict = "overwrite" }, wantErr: "on_conflict"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log level"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_EnvConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter:\n  search: chengdu\n"), 0644))
	t.Setenv("FLIGHT_REPORT_CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "chengdu", cfg.Filter.Search)
}

func TestLoad_NormalizesCase(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantConflict string
		wantLevel    string
		wantFormat   string
	}{
		{
			name:         "title case",
			body:         "report:\n  on_conflict: Suffix\nlog:\n  level: Debug\n  format: Json\n",
			wantConflict: "suffix",
			wantLevel:    "debug",
			wantFormat:   "json",
		},
		{
			name:         "upper case with spaces",
			body:         "report:\n  on_conflict: \" ROTATE \"\nlog:\n  level: WARN\n  format: TEXT\n",
			wantConflict: "rotate",
			wantLevel:    "warn",
			wantFormat:   "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantConflict, cfg.Report.OnConflict)
			assert.Equal(t, tt.wantLevel, cfg.Log.Level)
			assert.Equal(t, tt.wantFormat, cfg.Log.Format)
		})
	}
}
