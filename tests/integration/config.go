package integration

import (
	"context"
	"fmt"
	"os"
	"time"

	"marketplace-core/app/config"
	"marketplace-core/app/driver/kratos"
	"marketplace-core/app/driver/postgres"
	"marketplace-core/app/utils/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// Test environment configuration
	TestPostgresHost     = "localhost"
	TestPostgresPort     = "5433"
	TestPostgresDB       = "marketplace_test_db"
	TestPostgresUser     = "marketplace_test_user"
	TestPostgresPassword = "test_password"
	TestPostgresSSLMode  = "disable"

	TestKratosPublicURL = "http://localhost:4433"

	// Every integration document lands under this namespace so cleanup
	// can be a single prefix delete.
	TestNamespace = "itest"
)

// TestConfig creates a configuration for integration tests. DATABASE_URL
// and KRATOS_PUBLIC_URL override the compose defaults when set.
func TestConfig() *config.Config {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			TestPostgresUser, TestPostgresPassword, TestPostgresHost, TestPostgresPort, TestPostgresDB, TestPostgresSSLMode)
	}

	kratosURL := os.Getenv("KRATOS_PUBLIC_URL")
	if kratosURL == "" {
		kratosURL = TestKratosPublicURL
	}

	return &config.Config{
		LogLevel:             "debug",
		StoreBackend:         config.BackendPostgres,
		StoreNamespace:       TestNamespace,
		DatabaseURL:          databaseURL,
		KratosPublicURL:      kratosURL,
		IdentityPollInterval: 5 * time.Second,
		StateDir:             os.TempDir(),
	}
}

// TestDatabaseConnection creates a database connection for integration tests
func TestDatabaseConnection() (*pgxpool.Pool, error) {
	cfg := TestConfig()

	testLogger, err := logger.New("debug")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.NewConnection(cfg, testLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	return db.Pool(), nil
}

// TestKratosClient creates a Kratos client for integration tests
func TestKratosClient() (*kratos.Client, error) {
	cfg := TestConfig()

	testLogger, err := logger.New("debug")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return kratos.NewClient(cfg, testLogger)
}

// WaitForService waits for a service to be healthy
func WaitForService(ctx context.Context, healthCheckFunc func(context.Context) error, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if err := healthCheckFunc(ctx); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
			// Continue waiting
		}
	}

	return fmt.Errorf("service did not become healthy within %v", timeout)
}

// WaitForDatabase waits for the database to be ready
func WaitForDatabase(ctx context.Context) error {
	return WaitForService(ctx, func(ctx context.Context) error {
		pool, err := TestDatabaseConnection()
		if err != nil {
			return err
		}
		defer pool.Close()

		return pool.Ping(ctx)
	}, 30*time.Second)
}

// WaitForKratos waits for Kratos to be ready
func WaitForKratos(ctx context.Context) error {
	return WaitForService(ctx, func(ctx context.Context) error {
		client, err := TestKratosClient()
		if err != nil {
			return err
		}
		return client.HealthCheck(ctx)
	}, 60*time.Second)
}

// CleanupTestData removes every document the test namespace owns
func CleanupTestData(ctx context.Context) error {
	pool, err := TestDatabaseConnection()
	if err != nil {
		return err
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "DELETE FROM documents WHERE collection LIKE $1", TestNamespace+"/%"); err != nil {
		return fmt.Errorf("failed to execute cleanup query: %w", err)
	}

	return nil
}
