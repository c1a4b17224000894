package helper

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"hotel/config"
	"hotel/infras/mongodb"
	bookingRepository "hotel/internal/domains/booking/repository"
	guestRepository "hotel/internal/domains/guest/repository"
	roomRepository "hotel/internal/domains/room/repository"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

// Schemas lists the collection validators and indexes, in dependency order.
func Schemas() []mongodb.Schema {
	return []mongodb.Schema{
		roomRepository.Schema(),
		guestRepository.Schema(),
		bookingRepository.Schema(),
	}
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	connectionString := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		net.JoinHostPort(config.DB.Postgres.Write.Host, config.DB.Postgres.Write.Port),
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MigrationTable,
	)

	mig, err := migrate.New(
		"file://migrations/postgres",
		connectionString,
	)

	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies action to the configured database. MongoDB has no versioned migrations, so
// upward actions apply the collection schemas and downward ones drop the collections.
func Runner(cfg *config.Config, action string) error {
	if cfg.DB.Driver == config.DriverMongo {
		return runMongo(cfg, action)
	}

	mig, err := getConnection(cfg)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownAction, action)
}

func runMongo(cfg *config.Config, action string) error {
	timeout := time.Duration(cfg.DB.Mongo.TimeoutSeconds) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn := mongodb.New(cfg)
	defer func() {
		if err := conn.Close(ctx); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
	}()

	switch action {
	case ActionUp, ActionStepUp:
		return EnsureMongoSchemas(ctx, conn)
	case ActionDown, ActionDrop:
		schemas := Schemas()
		for i := len(schemas) - 1; i >= 0; i-- {
			if err := conn.Collection(schemas[i].Collection).Drop(ctx); err != nil {
				return fmt.Errorf("error dropping collection %s: %w", schemas[i].Collection, err)
			}
		}

		log.Info().Msg("MongoDB collections dropped successfully")

		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownAction, action)
}

// EnsureMongoSchemas creates or updates every collection the API writes to.
func EnsureMongoSchemas(ctx context.Context, conn *mongodb.Connection) error {
	for _, schema := range Schemas() {
		if err := conn.EnsureSchema(ctx, schema); err != nil {
			return fmt.Errorf("error applying schema for %s: %w", schema.Collection, err)
		}
	}

	log.Info().Msg("MongoDB schemas applied successfully")

	return nil
}

// Prepare readies the database before the server starts accepting requests.
func Prepare(cfg *config.Config) error {
	switch {
	case cfg.DB.Driver == config.DriverMongo:
		return runMongo(cfg, ActionUp)
	case cfg.DB.Postgres.AutoMigrate:
		return Up(cfg)
	}

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
