package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/world-conquest/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 5
  allowed_origins:
    - "https://classroom.example.com"
database:
  host: localhost
  port: 5433
  user: testuser
  password: testpass
  dbname: conquest
  sslmode: require
  max_open_conns: 20
  conn_max_lifetime: "1h"
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_CHANGES"
battle:
  odds_trials: 2000
  seed: 42
feed:
  enabled: false
emitter:
  batch_size: 50
  start_cursor: 1200
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"https://classroom.example.com"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "conquest", cfg.Database.DBName)
				assert.Equal(t, 20, cfg.Database.MaxOpenConns)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_CHANGES", cfg.NATS.StreamName)
				assert.Equal(t, 2000, cfg.Battle.OddsTrials)
				assert.Equal(t, int64(42), cfg.Battle.Seed)
				assert.False(t, cfg.Feed.Enabled)
				assert.Equal(t, 50, cfg.Emitter.BatchSize)
				assert.Equal(t, int64(1200), cfg.Emitter.StartCursor)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: conquest
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.InDelta(t, 5.0, cfg.Server.WriteRateLimit, 0.0001)
				assert.Equal(t, 20, cfg.Server.WriteBurst)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "GAME_CHANGES", cfg.NATS.StreamName)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, 2*time.Minute, cfg.NATS.DuplicateWindow)
				assert.Equal(t, domain.ODDS_TRIALS, cfg.Battle.OddsTrials)
				assert.True(t, cfg.Feed.Enabled)
				assert.Equal(t, 256, cfg.Feed.SendBuffer)
				assert.Equal(t, 30*time.Second, cfg.Feed.PingInterval)
				assert.Equal(t, "changes", cfg.Emitter.FeedName)
				assert.Equal(t, time.Second, cfg.Emitter.PollInterval)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: conquest
`,
			expectError: true,
		},
		{
			name: "invalid port",
			configFile: `
database:
  host: localhost
  port: invalid
  dbname: conquest
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadObserverConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *ObserverConfig)
	}{
		{
			name: "websocket feed with defaults",
			configFile: `
period: 5
`,
			validate: func(t *testing.T, cfg *ObserverConfig) {
				assert.Equal(t, domain.Period5, cfg.Period)
				assert.Equal(t, "http://localhost:8080", cfg.APIURL)
				assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
				assert.Equal(t, FEED_SOURCE_WEBSOCKET, cfg.FeedSource)
				assert.Equal(t, "ws://localhost:8080/api/v1/feed", cfg.FeedURL)
				assert.Equal(t, 90*time.Second, cfg.FeedReadTimeout)
				assert.Equal(t, 256, cfg.Sync.QueueSize)
				assert.Equal(t, 5, cfg.Sync.FetchConcurrency)
				assert.Equal(t, 16, cfg.Sync.WarningBuffer)
			},
		},
		{
			name: "nats feed with tables",
			configFile: `
period: 2
api_url: "https://conquest.example.com"
feed_source: nats
tables:
  - territories
  - battles
nats:
  url: "nats://localhost:4222"
  consumer_name: "observer-2"
`,
			validate: func(t *testing.T, cfg *ObserverConfig) {
				assert.Equal(t, domain.Period2, cfg.Period)
				assert.Equal(t, FEED_SOURCE_NATS, cfg.FeedSource)
				assert.Equal(t, "observer-2", cfg.NATS.ConsumerName)
				assert.Equal(t, 30*time.Second, cfg.NATS.AckWait)
				assert.Equal(t, 3, cfg.NATS.MaxDeliver)

				tables, err := cfg.FeedTables()
				require.NoError(t, err)
				assert.Equal(t, []domain.Table{domain.TableTerritories, domain.TableBattles}, tables)
			},
		},
		{
			name:        "missing period",
			configFile:  `api_url: "http://localhost:8080"`,
			expectError: "period must be one of",
		},
		{
			name: "nats feed without url",
			configFile: `
period: 1
feed_source: nats
`,
			expectError: "nats.url is required",
		},
		{
			name: "unknown feed source",
			configFile: `
period: 6
feed_source: carrier-pigeon
`,
			expectError: "unknown feed_source",
		},
		{
			name: "unknown table",
			configFile: `
period: 6
tables: [territories, armies]
`,
			expectError: "unknown table: armies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadObserverConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "conquest",
				Password: "testpass",
				DBName:   "conquest",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=conquest password=testpass dbname=conquest sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "db.internal",
				Port:     6543,
				User:     "conquest",
				Password: "p@ssw0rd!",
				DBName:   "conquest",
				SSLMode:  "disable",
			},
			expected: "host=db.internal port=6543 user=conquest password=p@ssw0rd! dbname=conquest sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// godotenv.Overload sets real process variables, remove them so other tests are unaffected
	keys := []string{
		"CONQUEST_DEBUG",
		"CONQUEST_DATABASE_HOST",
		"CONQUEST_DATABASE_PORT",
		"CONQUEST_DATABASE_DBNAME",
		"CONQUEST_BATTLE_ODDS_TRIALS",
		"CONQUEST_SERVER_ALLOWED_ORIGINS",
	}
	t.Cleanup(func() {
		for _, key := range keys {
			_ = os.Unsetenv(key)
		}
	})

	envContent := `CONQUEST_DEBUG=true
CONQUEST_DATABASE_HOST=env-host
CONQUEST_DATABASE_PORT=6432
CONQUEST_DATABASE_DBNAME=env-db
CONQUEST_BATTLE_ODDS_TRIALS=500
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// The per-service local file is loaded last and wins
	localContent := `CONQUEST_SERVER_ALLOWED_ORIGINS=https://a.example.com,https://b.example.com
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.api.local"), []byte(localContent), 0600))

	configFile := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
battle:
  odds_trials: 10000
`)

	cfg, err := LoadAPIConfig(configFile, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, 500, cfg.Battle.OddsTrials)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
}
