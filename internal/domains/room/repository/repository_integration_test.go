//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/mongodb"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	gRepo "hotel/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcMongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func newRepository(t *testing.T) repository.Room {
	t.Helper()

	ctx := context.Background()

	container, err := tcMongo.Run(ctx, "mongo:7")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverMongo
	cfg.DB.Mongo.URI = uri
	cfg.DB.Mongo.Name = "hotel_test"
	cfg.DB.Mongo.TimeoutSeconds = 10

	conn := mongodb.New(cfg)
	t.Cleanup(func() {
		_ = conn.Close(context.Background())
	})

	require.NoError(t, conn.EnsureSchema(ctx, repository.Schema()))

	return repository.New(cfg, nil, conn, otelMocks.NewOtel())
}

func newRoom(number string) model.Room {
	now := time.Now().UTC().Truncate(time.Millisecond)

	return model.Room{
		ID:         gRepo.NewID(),
		Number:     number,
		Type:       model.TypeDouble,
		Price:      120,
		Capacity:   2,
		Status:     model.StatusAvailable,
		Amenities:  []string{"wifi"},
		Timestamps: gModel.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func TestRoomRepository(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	first := newRoom("201")
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, newRoom("101")))

	t.Run("duplicate number", func(t *testing.T) {
		err := repo.Insert(ctx, newRoom("201"))

		field, ok := gRepo.IsDuplicate(err)
		require.True(t, ok, "expected duplicate error, got %v", err)
		assert.Equal(t, model.FieldNumber, field)
	})

	t.Run("listing is ordered by number", func(t *testing.T) {
		rooms, err := repo.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, "101", rooms[0].Number)
		assert.Equal(t, "201", rooms[1].Number)
	})

	t.Run("update and read back", func(t *testing.T) {
		filter := shared.FilterByID(first.ID, model.FieldID, model.TableName)

		require.NoError(t, repo.Update(ctx, map[string]any{model.FieldStatus: model.StatusMaintenance}, filter))

		room, err := repo.Get(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, model.StatusMaintenance, room.Status)

		count, err := repo.Count(ctx, shared.FilterByOptional(model.FieldStatus, model.StatusMaintenance, model.TableName))
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("schema rejects an unknown type", func(t *testing.T) {
		room := newRoom("301")
		room.Type = "castle"

		assert.Error(t, repo.Insert(ctx, room))
	})

	t.Run("delete", func(t *testing.T) {
		filter := shared.FilterByID(first.ID, model.FieldID, model.TableName)

		require.NoError(t, repo.Delete(ctx, filter))

		exists, err := repo.Exist(ctx, filter)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
