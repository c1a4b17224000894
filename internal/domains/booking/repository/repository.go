package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/config"
	"hotel/infras/mongodb"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Store[model.Booking]
}

func New(cfg *config.Config, pg *postgres.Connection, mg *mongodb.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Store: gRepo.New[model.Booking](cfg, model.EntityName, model.TableName, model.FieldID, pg, mg, otel,
			gRepo.WithDefaultSort(constant.FieldCreatedAt, gDto.SortDirDesc),
			gRepo.WithCheckMessages(map[string]string{
				"bookings_dates_check":       model.MessageInvalidDates,
				"bookings_status_check":      model.MessageInvalidStatus,
				"bookings_total_price_check": model.MessageNegativeTotal,
			}),
		),
	}
}

// Schema is the collection validator and indexes of bookings. The $expr clause keeps
// checkOut strictly after checkIn for writes that bypass the API.
func Schema() mongodb.Schema {
	return mongodb.Schema{
		Collection: model.TableName,
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"guestId", "roomId", "checkIn", "checkOut", "status", "totalPrice"},
				"properties": bson.M{
					"guestId":    bson.M{"bsonType": "string", "pattern": "^[0-9a-f]{24}$"},
					"roomId":     bson.M{"bsonType": "string", "pattern": "^[0-9a-f]{24}$"},
					"checkIn":    bson.M{"bsonType": "date"},
					"checkOut":   bson.M{"bsonType": "date"},
					"status":     bson.M{"enum": bson.A{model.StatusPending, model.StatusConfirmed, model.StatusCheckedIn, model.StatusCompleted, model.StatusCancelled}},
					"totalPrice": bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
					"notes":      bson.M{"bsonType": "string"},
				},
			},
			"$expr": bson.M{"$gt": bson.A{"$checkOut", "$checkIn"}},
		},
		Indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "guestId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "roomId", Value: 1}}},
		},
	}
}
