package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/config"
	"hotel/infras/mongodb"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Room interface {
	Insert(ctx context.Context, room model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Store[model.Room]
}

func New(cfg *config.Config, pg *postgres.Connection, mg *mongodb.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Store: gRepo.New[model.Room](cfg, model.EntityName, model.TableName, model.FieldID, pg, mg, otel,
			gRepo.WithDefaultSort(model.FieldNumber, gDto.SortDirAsc),
			gRepo.WithCheckMessages(map[string]string{
				"rooms_type_check":     model.MessageInvalidType,
				"rooms_status_check":   model.MessageInvalidStatus,
				"rooms_price_check":    model.MessageInvalidPrice,
				"rooms_capacity_check": model.MessageInvalidCapacity,
			}),
		),
	}
}

// Schema is the collection validator and indexes of rooms.
func Schema() mongodb.Schema {
	return mongodb.Schema{
		Collection: model.TableName,
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"number", "type", "price", "capacity", "status"},
				"properties": bson.M{
					"number":    bson.M{"bsonType": "string", "minLength": 1},
					"type":      bson.M{"enum": bson.A{model.TypeSingle, model.TypeDouble, model.TypeDeluxe, model.TypeSuite}},
					"price":     bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
					"capacity":  bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
					"status":    bson.M{"enum": bson.A{model.StatusAvailable, model.StatusOccupied, model.StatusMaintenance}},
					"amenities": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
					"image":     bson.M{"bsonType": "string"},
				},
			},
		},
		Indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}
}
