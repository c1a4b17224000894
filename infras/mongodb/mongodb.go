package mongodb

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const namespaceExistsCode = 48

type Connection struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Schema describes the server side validator and indexes of one collection.
type Schema struct {
	Collection string
	Validator  bson.M
	Indexes    []mongo.IndexModel
}

// New connects to MongoDB. It returns nil when another database driver is configured.
func New(cfg *config.Config) *Connection {
	if cfg.DB.Driver != config.DriverMongo {
		return nil
	}

	timeout := time.Duration(cfg.DB.Mongo.TimeoutSeconds) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.DB.Mongo.URI).
		SetAppName(cfg.App.Name).
		SetTimeout(timeout))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping MongoDB")
	}

	log.Info().
		Str("database", cfg.DB.Mongo.Name).
		Bool("transactions", cfg.DB.Mongo.Transactions).
		Msg("Connected to MongoDB")

	return &Connection{
		Client: client,
		DB:     client.Database(cfg.DB.Mongo.Name),
	}
}

func (c *Connection) Collection(name string) *mongo.Collection {
	return c.DB.Collection(name)
}

// EnsureSchema creates the collection with its validator, or updates the validator of an
// existing one, then creates the indexes.
func (c *Connection) EnsureSchema(ctx context.Context, schema Schema) error {
	err := c.DB.CreateCollection(ctx, schema.Collection, options.CreateCollection().
		SetValidator(schema.Validator).
		SetValidationLevel("strict").
		SetValidationAction("error"))

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExistsCode {
		err = c.DB.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: schema.Collection},
			{Key: "validator", Value: schema.Validator},
			{Key: "validationLevel", Value: "strict"},
		}).Err()
	}

	if err != nil {
		return fmt.Errorf("failed to apply validator on %s: %w", schema.Collection, err)
	}

	if len(schema.Indexes) > 0 {
		if _, err = c.DB.Collection(schema.Collection).Indexes().CreateMany(ctx, schema.Indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", schema.Collection, err)
		}
	}

	log.Info().Str("collection", schema.Collection).Msg("Collection schema ensured")

	return nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, readpref.Primary()) // nolint:wrapcheck
}

func (c *Connection) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx) // nolint:wrapcheck
}
