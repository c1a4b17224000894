package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/config"
	"hotel/infras/mongodb"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/guest/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Guest interface {
	Insert(ctx context.Context, guest model.Guest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Guest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Guest, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Store[model.Guest]
}

func New(cfg *config.Config, pg *postgres.Connection, mg *mongodb.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Store: gRepo.New[model.Guest](cfg, model.EntityName, model.TableName, model.FieldID, pg, mg, otel,
			gRepo.WithDefaultSort(constant.FieldCreatedAt, gDto.SortDirDesc),
			gRepo.WithCheckMessages(map[string]string{
				"guests_name_check":  model.MessageShortName,
				"guests_email_check": model.MessageInvalidEmail,
			}),
		),
	}
}

// Schema is the collection validator and indexes of guests.
func Schema() mongodb.Schema {
	return mongodb.Schema{
		Collection: model.TableName,
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"name", "email", "phone", "address"},
				"properties": bson.M{
					"name":    bson.M{"bsonType": "string", "minLength": model.MinNameLength},
					"email":   bson.M{"bsonType": "string", "pattern": `^[^\s@]+@[^\s@]+\.[^\s@]+$`},
					"phone":   bson.M{"bsonType": "string", "minLength": 1},
					"address": bson.M{"bsonType": "string", "minLength": 1},
				},
			},
		},
		Indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}
}
