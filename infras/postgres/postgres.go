package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"hotel/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools. It returns nil unless postgres is the configured driver.
func New(cfg *config.Config) *Connection {
	if cfg.DB.Driver != config.DriverPostgres {
		return nil
	}

	conn := &Connection{
		Read:  CreatePostgresReadConn(*cfg),
		Write: CreatePostgresWriteConn(*cfg),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Msg("Failed to connect to PostgreSQL after retries")
	}

	return conn
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.Write.PingContext(ctx) // nolint:wrapcheck
}

func (c *Connection) Close() error {
	if err := c.Read.Close(); err != nil {
		return fmt.Errorf("failed to close read connection: %w", err)
	}

	return c.Write.Close() // nolint:wrapcheck
}

// endpoint mirrors the read and write blocks of the postgres configuration.
type endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection("write", endpoint(config.DB.Postgres.Write), config)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection("read", endpoint(config.DB.Postgres.Read), config)
}

// dsn builds the lib/pq connection URL, applying the configured database prefix.
func dsn(target endpoint, prefix string) string {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(target.Username),
		url.QueryEscape(target.Password),
		net.JoinHostPort(target.Host, target.Port),
		prefix+target.Name,
		target.SSLMode,
	)

	if target.Timezone != "" {
		dsn += "&timezone=" + url.QueryEscape(target.Timezone)
	}

	return dsn
}

// CreatePostgresConnection connects with retries, returning nil once they are exhausted.
func CreatePostgresConnection(name string, target endpoint, config config.Config) *sqlx.DB {
	descriptor := dsn(target, config.DB.Postgres.Prefix)
	waitTime := time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second

	for retry := range max(config.DB.Postgres.MaxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", target.Host).
				Str("port", target.Port).
				Str("dbName", config.DB.Postgres.Prefix+target.Name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", target.Host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(waitTime)
	}

	return nil
}
