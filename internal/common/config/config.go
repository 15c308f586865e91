// internal/common/config/config.go
package config

import (
	"fmt"

	"keyword-insights/internal/models"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig            `mapstructure:"app"`
	GSC           GSCConfig            `mapstructure:"gsc"`
	Database      DatabaseConfig       `mapstructure:"database"`
	Scoring       models.ScoringConfig `mapstructure:"scoring"`
	Analysis      AnalysisConfig       `mapstructure:"analysis"`
	Export        ExportConfig         `mapstructure:"export"`
	Notifications NotificationConfig   `mapstructure:"notifications"`
	Logging       LoggingConfig        `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

// GSCConfig holds the Search Console connection settings.
type GSCConfig struct {
	SiteURL      string `mapstructure:"site_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
	BaseURL      string `mapstructure:"base_url"`
	TokenURL     string `mapstructure:"token_url"`
	PageSize     int    `mapstructure:"page_size"`
	Timeout      int    `mapstructure:"timeout"`   // milliseconds
	CacheTTL     int    `mapstructure:"cache_ttl"` // milliseconds, 0 disables caching
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	Addresses   []string `mapstructure:"addresses"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	SSLEnabled  bool     `mapstructure:"ssl_enabled"`
	URL         string   `mapstructure:"url"` // Single URL for backwards compatibility
	IndexPrefix string   `mapstructure:"index_prefix"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AnalysisConfig controls which channels run and how.
type AnalysisConfig struct {
	Channels              []string `mapstructure:"channels"`
	FetchDays             int      `mapstructure:"fetch_days"`
	Workers               int      `mapstructure:"workers"`
	Interval              int      `mapstructure:"interval"` // milliseconds, 0 runs once and exits
	BenchmarkRegistryPath string   `mapstructure:"benchmark_registry_path"`
}

// ExportConfig controls the CSV report writer.
type ExportConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

// NotificationConfig holds settings for the run digest delivery.
type NotificationConfig struct {
	AWS   AWSConfig   `mapstructure:"aws"`
	Email EmailConfig `mapstructure:"email"`
	SMS   SMSConfig   `mapstructure:"sms"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

type EmailConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	FromEmail string   `mapstructure:"from_email"`
	ToEmails  []string `mapstructure:"to_emails"`
	TopN      int      `mapstructure:"top_n"`
}

type SMSConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TopicARN string `mapstructure:"topic_arn"`
	// SMS alert fires when a run produces at least this many
	// high-priority opportunities.
	PriorityThreshold int `mapstructure:"priority_threshold"`
}

// --- Logging Configuration ---
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
