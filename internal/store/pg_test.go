package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/feral-file/world-conquest/internal/adapter"
)

var testDB *gorm.DB

// externalDSN builds a DSN from TEST_DB_* variables, empty when TEST_DB_HOST is unset
func externalDSN() string {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return ""
	}

	env := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host,
		env("TEST_DB_PORT", "5432"),
		env("TEST_DB_USER", "postgres"),
		env("TEST_DB_PASSWORD", "postgres"),
		env("TEST_DB_NAME", "conquest_test"),
	)
}

// startPostgres starts a disposable PostgreSQL container
func startPostgres(ctx context.Context) (string, func(), error) {
	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("conquest_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return "", nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return dsn, terminate, nil
}

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()
	terminate := func() {}

	dsn := externalDSN()
	if dsn != "" {
		fmt.Println("Using external database")
	} else {
		var err error
		dsn, terminate, err = startPostgres(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println("Started PostgreSQL container")
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err == nil {
		err = initializeTestDatabase(db)
	}
	if err != nil {
		fmt.Printf("Failed to prepare database: %v\n", err)
		terminate()
		os.Exit(1)
	}
	testDB = db

	code := m.Run()
	terminate()
	os.Exit(code)
}

// initializeTestDatabase runs the schema initialization
func initializeTestDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaPath := filepath.Join("..", "..", "db", "init_pg_db.sql")
	schemaSQL, err := os.ReadFile(schemaPath) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// initPGTestDB returns a store bound to a transaction that is rolled back after the test
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx, adapter.NewJSON(), adapter.NewClock())
}

// cleanupPGTestDB is a no-op: isolation comes from the transaction rollback
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}
