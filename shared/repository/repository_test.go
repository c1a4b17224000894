package repository

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type stay struct {
	ID         string  `db:"id"          bson:"_id"`
	RoomID     string  `db:"room_id"     bson:"roomId"`
	Status     string  `db:"status"      bson:"status"`
	TotalPrice float64 `db:"total_price" bson:"totalPrice"`
	Internal   string  `db:"-"           bson:"internal"`
	model.Timestamps `bson:",inline"`
}

const stayID = "64b7f0c2a1d3e4f5a6b7c8f0"

func newStayRepository(opts ...Option) MongoRepository[stay] {
	fields := map[string]string{}
	getFields(reflect.TypeOf(stay{}), fields)

	return MongoRepository[stay]{
		entitas:       "booking",
		primaryColumn: "id",
		fields:        fields,
		options:       newOptions(opts),
	}
}

func TestGetFields(t *testing.T) {
	repo := newStayRepository()

	assert.Equal(t, map[string]string{
		"id":          "_id",
		"room_id":     "roomId",
		"status":      "status",
		"total_price": "totalPrice",
		"created_at":  "createdAt",
		"updated_at":  "updatedAt",
	}, repo.fields)
}

func TestMongoRepository_Filter(t *testing.T) {
	repo := newStayRepository()

	tests := []struct {
		name     string
		group    dto.FilterGroup
		expected bson.M
		err      error
	}{
		{
			name:     "single condition is not wrapped",
			group:    dto.FilterGroup{Filters: []any{dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq}}},
			expected: bson.M{"roomId": "r1"},
		},
		{
			name: "conditions joined with and",
			group: dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []any{
				dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
				dto.Filter{Field: "total_price", Value: 100.0, Operator: dto.FilterOperatorGreaterEq},
			}},
			expected: bson.M{"$and": []bson.M{{"status": "pending"}, {"totalPrice": bson.M{"$gte": 100.0}}}},
		},
		{
			name: "nested or group",
			group: dto.FilterGroup{Filters: []any{
				dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []any{
					dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
				}},
			}},
			expected: bson.M{"$or": []bson.M{{"status": "pending"}, {"status": "confirmed"}}},
		},
		{
			name:     "empty optional group matches everything",
			group:    dto.FilterGroup{Filters: []any{dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}}},
			expected: bson.M{},
		},
		{
			name:     "primary key in",
			group:    dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: []string{stayID}, Operator: dto.FilterOperatorIn}}},
			expected: bson.M{"_id": bson.M{"$in": []string{stayID}}},
		},
		{
			name:  "malformed primary key",
			group: dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "not-an-id", Operator: dto.FilterOperatorEq}}},
			err:   ErrInvalidID,
		},
		{
			name:  "unsupported operator",
			group: dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "x", Operator: "between"}}},
			err:   errUnsupportedOperator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := repo.filter(tt.group)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
		})
	}
}

func TestMongoRepository_Sorting(t *testing.T) {
	repo := newStayRepository(WithDefaultSort("created_at", dto.SortDirDesc))

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, repo.sorting(dto.QueryParams{}))
	assert.Equal(t,
		bson.D{{Key: "totalPrice", Value: 1}, {Key: "_id", Value: 1}},
		repo.sorting(dto.QueryParams{SortBy: "total_price", SortDir: dto.SortDirAsc}),
	)
	assert.Nil(t, repo.sorting(dto.QueryParams{SortBy: "unknown"}))
}

func TestMongoRepository_Projection(t *testing.T) {
	repo := newStayRepository()

	assert.Nil(t, repo.projection(nil))
	assert.Equal(t, bson.M{"_id": 1, "roomId": 1}, repo.projection([]string{"id", "room_id"}))
}

func TestTranslatePostgresError(t *testing.T) {
	checks := map[string]string{"bookings_dates_check": "Check-out date must be after check-in date"}

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "unique violation",
			err:     &pq.Error{Code: "23505", Constraint: "rooms_number_key"},
			code:    http.StatusBadRequest,
			message: "Number already exists",
		},
		{
			name:    "known check",
			err:     &pq.Error{Code: "23514", Constraint: "bookings_dates_check"},
			code:    http.StatusBadRequest,
			message: "Check-out date must be after check-in date",
		},
		{
			name:    "unknown check",
			err:     &pq.Error{Code: "23514", Constraint: "rooms_price_check"},
			code:    http.StatusBadRequest,
			message: "Validation failed: rooms_price_check",
		},
		{
			name:    "value too long",
			err:     fmt.Errorf("exec: %w", &pq.Error{Code: "22001"}),
			code:    http.StatusBadRequest,
			message: MessageValueTooLong,
		},
		{
			name:    "other driver error",
			err:     &pq.Error{Code: "08006"},
			code:    http.StatusInternalServerError,
			message: failure.MessageInternalServerError,
		},
		{
			name:    "not a driver error",
			err:     errors.New("context deadline exceeded"),
			code:    http.StatusInternalServerError,
			message: failure.MessageInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translated := translatePostgresError("room", "rooms", checks, tt.err)

			fail := failure.Classify(translated)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, fail.Message)
			assert.ErrorIs(t, translated, tt.err)
		})
	}
}

func TestIsDuplicate(t *testing.T) {
	err := fmt.Errorf("insert: %w", translatePostgresError("guest", "guests", nil, &pq.Error{Code: "23505", Constraint: "guests_email_key"}))

	field, ok := IsDuplicate(err)
	require.True(t, ok)
	assert.Equal(t, "email", field)

	_, ok = IsDuplicate(errors.New("boom"))
	assert.False(t, ok)
}
