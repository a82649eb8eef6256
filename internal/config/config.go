package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/world-conquest/internal/domain"
)

// Feed sources understood by the observer
const (
	FEED_SOURCE_NATS      = "nats"
	FEED_SOURCE_WEBSOCKET = "websocket"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g., "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g., "10m", "30m"
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL             string        `mapstructure:"url"`
	StreamName      string        `mapstructure:"stream_name"`
	ConsumerName    string        `mapstructure:"consumer_name"`
	MaxReconnects   int           `mapstructure:"max_reconnects"`
	ReconnectWait   time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName  string        `mapstructure:"connection_name"`
	AckWait         time.Duration `mapstructure:"ack_wait"`
	MaxDeliver      int           `mapstructure:"max_deliver"`
	MaxAge          time.Duration `mapstructure:"max_age"`
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// WriteRateLimit is the per-client POST/PUT rate in requests per second. Zero disables it.
	WriteRateLimit float64 `mapstructure:"write_rate_limit"`
	WriteBurst     int     `mapstructure:"write_burst"`
}

// BattleConfig holds battle resolution configuration
type BattleConfig struct {
	OddsTrials int `mapstructure:"odds_trials"`
	// Seed makes dice rolls reproducible. Zero seeds from the clock.
	Seed int64 `mapstructure:"seed"`
}

// FeedConfig holds the websocket change feed configuration
type FeedConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	SendBuffer   int           `mapstructure:"send_buffer"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PingInterval time.Duration `mapstructure:"ping_interval"`
}

// EmitterConfig holds the changes journal relay configuration
type EmitterConfig struct {
	FeedName     string        `mapstructure:"feed_name"`
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	StartCursor  int64         `mapstructure:"start_cursor"`
}

// SyncConfig holds the state sync client configuration
type SyncConfig struct {
	QueueSize        int `mapstructure:"queue_size"`
	FetchConcurrency int `mapstructure:"fetch_concurrency"`
	WarningBuffer    int `mapstructure:"warning_buffer"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Battle     BattleConfig   `mapstructure:"battle"`
	Feed       FeedConfig     `mapstructure:"feed"`
	Emitter    EmitterConfig  `mapstructure:"emitter"`
}

// ObserverConfig holds configuration for the observer, a headless sync client
type ObserverConfig struct {
	BaseConfig  `mapstructure:",squash"`
	APIURL      string        `mapstructure:"api_url"`
	Period      domain.Period `mapstructure:"period"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// FeedSource is either "nats" or "websocket"
	FeedSource      string        `mapstructure:"feed_source"`
	FeedURL         string        `mapstructure:"feed_url"`
	FeedReadTimeout time.Duration `mapstructure:"feed_read_timeout"`
	Tables          []string      `mapstructure:"tables"`
	NATS            NATSConfig    `mapstructure:"nats"`
	Sync            SyncConfig    `mapstructure:"sync"`
}

// FeedTables parses the configured table filter
func (c *ObserverConfig) FeedTables() ([]domain.Table, error) {
	tables := make([]domain.Table, 0, len(c.Tables))
	for _, name := range c.Tables {
		t := domain.Table(strings.TrimSpace(name))
		if !domain.IsValidTable(t) {
			return nil, fmt.Errorf("unknown table: %s", name)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.write_rate_limit", 5)
	v.SetDefault("server.write_burst", 20)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "GAME_CHANGES")
	v.SetDefault("nats.connection_name", "world-conquest-api")
	v.SetDefault("nats.max_age", "168h")
	v.SetDefault("nats.duplicate_window", "2m")
	v.SetDefault("battle.odds_trials", domain.ODDS_TRIALS)
	v.SetDefault("feed.enabled", true)
	v.SetDefault("feed.send_buffer", 256)
	v.SetDefault("feed.write_timeout", "5s")
	v.SetDefault("feed.ping_interval", "30s")
	v.SetDefault("emitter.feed_name", "changes")
	v.SetDefault("emitter.batch_size", 100)
	v.SetDefault("emitter.poll_interval", "1s")

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if config.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if config.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &config, nil
}

// LoadObserverConfig loads configuration for the observer
func LoadObserverConfig(configFile string, envPath string) (*ObserverConfig, error) {
	v := configureViper("observer", configFile, envPath)

	// Set defaults
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("feed_source", FEED_SOURCE_WEBSOCKET)
	v.SetDefault("feed_url", "ws://localhost:8080/api/v1/feed")
	v.SetDefault("feed_read_timeout", "90s")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "GAME_CHANGES")
	v.SetDefault("nats.connection_name", "world-conquest-observer")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 3)
	v.SetDefault("sync.queue_size", 256)
	v.SetDefault("sync.fetch_concurrency", 5)
	v.SetDefault("sync.warning_buffer", 16)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config ObserverConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !domain.IsValidPeriod(config.Period) {
		return nil, fmt.Errorf("period must be one of 1, 2, 5, 6, got %d", config.Period)
	}
	switch config.FeedSource {
	case FEED_SOURCE_WEBSOCKET:
		if config.FeedURL == "" {
			return nil, errors.New("feed_url is required for the websocket feed")
		}
	case FEED_SOURCE_NATS:
		if config.NATS.URL == "" {
			return nil, errors.New("nats.url is required for the nats feed")
		}
	default:
		return nil, fmt.Errorf("unknown feed_source: %s", config.FeedSource)
	}
	if _, err := config.FeedTables(); err != nil {
		return nil, err
	}

	return &config, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/observer/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("CONQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		"environment",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"nats.max_age",
		"nats.duplicate_window",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		"server.write_rate_limit",
		"server.write_burst",
		// Battle
		"battle.odds_trials",
		"battle.seed",
		// Websocket feed
		"feed.enabled",
		"feed.send_buffer",
		"feed.write_timeout",
		"feed.ping_interval",
		// Emitter
		"emitter.feed_name",
		"emitter.batch_size",
		"emitter.poll_interval",
		"emitter.start_cursor",
		// Observer
		"api_url",
		"period",
		"http_timeout",
		"feed_source",
		"feed_url",
		"feed_read_timeout",
		"tables",
		"sync.queue_size",
		"sync.fetch_concurrency",
		"sync.warning_buffer",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for rangeIdx := 0; rangeIdx < 5; rangeIdx++ {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
