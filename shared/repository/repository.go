package repository

import (
	"context"
	"hotel/config"
	"hotel/infras/mongodb"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/dto"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the storage contract shared by every entity. Get returns the zero model
// when nothing matches.
type Store[T any] interface {
	Insert(ctx context.Context, model T) error
	Exist(ctx context.Context, filter dto.FilterGroup) (bool, error)
	Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error)
	GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error)
	Count(ctx context.Context, filter dto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error
	Delete(ctx context.Context, filter dto.FilterGroup) error
}

type options struct {
	checks  map[string]string
	sortBy  string
	sortDir string
}

type Option func(*options)

// WithCheckMessages maps relational CHECK constraint names to client messages.
func WithCheckMessages(checks map[string]string) Option {
	return func(o *options) {
		o.checks = checks
	}
}

// WithDefaultSort orders listings whose params carry no explicit sort.
func WithDefaultSort(column, dir string) Option {
	return func(o *options) {
		o.sortBy = column
		o.sortDir = dir
	}
}

func newOptions(opts []Option) options {
	o := options{sortDir: dto.SortDirAsc}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// New returns the Store for the configured database driver.
func New[T any](cfg *config.Config, entity, table, primary string, pg *postgres.Connection, mg *mongodb.Connection, otl otel.Otel, opts ...Option) Store[T] {
	if cfg.DB.Driver == config.DriverPostgres {
		repo := NewPostgresRepository[T](entity, table, primary, pg, otl, opts...)

		return &repo
	}

	repo := NewMongoRepository[T](entity, table, primary, mg, otl, opts...)

	return &repo
}

// validateIDs rejects primary key filters holding malformed identifiers.
func validateIDs(filter dto.FilterGroup, primary string) error {
	for _, item := range filter.Filters {
		switch f := item.(type) {
		case dto.FilterGroup:
			if err := validateIDs(f, primary); err != nil {
				return err
			}
		case dto.Filter:
			if f.Field != primary {
				continue
			}

			switch v := f.Value.(type) {
			case string:
				if !primitive.IsValidObjectID(v) {
					return ErrInvalidID
				}
			case []string:
				for _, id := range v {
					if !primitive.IsValidObjectID(id) {
						return ErrInvalidID
					}
				}
			}
		}
	}

	return nil
}

// NewID returns a new 24 character hexadecimal identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
