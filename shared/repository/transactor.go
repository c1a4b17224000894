package repository

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/mongodb"
	"hotel/infras/postgres"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

//go:generate go run go.uber.org/mock/mockgen -source=./transactor.go -destination=./mocks/transactor_mock.go -package=mocks

// Transactor runs fn so that every repository call made with the context it receives
// belongs to one transaction. Nested calls join the outer transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewTransactor(cfg *config.Config, pg *postgres.Connection, mg *mongodb.Connection) Transactor {
	if cfg.DB.Driver == config.DriverPostgres {
		return &postgresTransactor{db: pg}
	}

	if !cfg.DB.Mongo.Transactions {
		log.Info().Msg("Mongo transactions disabled, reference checks run without a session")
	}

	return &mongoTransactor{conn: mg, enabled: cfg.DB.Mongo.Transactions}
}

type postgresTransactor struct {
	db *postgres.Connection
}

func (t *postgresTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, constant.ContextKeyTx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translatePostgresError("transaction", "", nil, err))
	}

	return nil
}

type mongoTransactor struct {
	conn    *mongodb.Connection
	enabled bool
}

func (t *mongoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.conn.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})

	return err // nolint:wrapcheck
}
