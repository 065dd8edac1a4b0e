package postgres

//nolint:revive
import (
	"context"
	"dashboard/config"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	driverName                = "postgres"
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools. The process halts when either pool
// cannot be reached within the configured retries.
func New(config *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	return nil
}

// Close releases both pools.
func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed closing database connection")
		}
	}
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}
	return baseName
}

// DSN builds the connection string for the write database, used by migrations.
func DSN(config config.Config) string {
	return descriptor(
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		config.DB.Postgres.Write.Host,
		config.DB.Postgres.Write.Port,
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
	)
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		config.DB.Postgres.Write.Host,
		config.DB.Postgres.Write.Port,
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		config.DB.Postgres.Read.Username,
		config.DB.Postgres.Read.Password,
		config.DB.Postgres.Read.Host,
		config.DB.Postgres.Read.Port,
		getDBName(config, config.DB.Postgres.Read.Name),
		config.DB.Postgres.Read.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

func descriptor(username, password, host, port, dbName, sslMode string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + dbName,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}

	return u.String()
}

// CreatePostgresConnection creates a database connection, retrying with a
// constant backoff.
func CreatePostgresConnection(name, username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) *sqlx.DB {
	dsn := descriptor(username, password, host, port, dbName, sslMode)

	db, err := Connect(context.Background(), dsn, maxRetry, time.Duration(waitTime)*time.Second, func(attempt int, err error) {
		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")
	})
	if err != nil {
		log.Fatal().Err(err).Str("name", name).Str("dbName", dbName).Msg("Could not connect to database")

		return nil
	}

	log.
		Info().
		Str("name", name).
		Str("host", host).
		Str("port", port).
		Str("dbName", dbName).
		Msg("Connected to database")

	return db
}

// Connect opens a pool for dsn, making at most maxAttempts attempts.
func Connect(ctx context.Context, dsn string, maxAttempts int, wait time.Duration, onFailure func(attempt int, err error)) (*sqlx.DB, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var db *sqlx.DB

	attempt := 0
	backoff := retry.WithMaxRetries(uint64(maxAttempts-1), retry.NewConstant(wait)) //nolint:gosec

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		conn, err := sqlx.ConnectContext(ctx, driverName, dsn)
		if err != nil {
			if onFailure != nil {
				onFailure(attempt, err)
			}

			return retry.RetryableError(err) //nolint:wrapcheck
		}

		db = conn

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempt, err)
	}

	db.SetMaxIdleConns(postgresMaxIdleConnection)
	db.SetMaxOpenConns(postgresMaxOpenConnection)

	return db, nil
}
