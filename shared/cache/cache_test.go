package cache_test

import (
	"context"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	"hotel/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRoom struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

func TestRedisCache_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	tracer := mocks.NewRecorder()
	store := cache.NewRedisCache(client, tracer)

	mock.ExpectGet("rooms:get:1").SetVal(`{"id":"1","number":"101"}`)
	mock.ExpectGet("rooms:get:2").RedisNil()

	var room cachedRoom
	require.NoError(t, store.Get(context.Background(), "rooms:get:1", &room))
	assert.Equal(t, cachedRoom{ID: "1", Number: "101"}, room)

	err := store.Get(context.Background(), "rooms:get:2", &room)
	assert.True(t, cache.IsMiss(err))

	spans := tracer.Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, true, spans[0].Attributes["cache.hit"])
	assert.Equal(t, false, spans[1].Attributes["cache.hit"])
	assert.Empty(t, spans[1].Errors, "a miss is not a failure")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Save(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := cache.NewRedisCache(client, mocks.NewOtel())

	mock.ExpectSet("rooms:count", []byte("7"), 300*time.Second).SetVal("OK")

	require.NoError(t, store.Save(context.Background(), "rooms:count", 7, 300))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Clear(t *testing.T) {
	client, mock := redismock.NewClientMock()
	tracer := mocks.NewRecorder()
	store := cache.NewRedisCache(client, tracer)

	mock.ExpectScan(0, "rooms:all*", 100).SetVal([]string{"rooms:all:1:10", "rooms:all:2:10"}, 0)
	mock.ExpectUnlink("rooms:all:1:10", "rooms:all:2:10").SetVal(2)

	require.NoError(t, store.Clear(context.Background(), "rooms:all"))

	span, ok := tracer.Find("cache.Clear")
	require.True(t, ok)
	assert.Equal(t, 2, span.Attributes["cache.removed"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisabledCache(t *testing.T) {
	store := cache.NewRedisCache(nil, mocks.NewOtel())

	var value string
	assert.True(t, cache.IsMiss(store.Get(context.Background(), "any", &value)))
	assert.NoError(t, store.Save(context.Background(), "any", "v", 10))
	assert.NoError(t, store.Clear(context.Background(), "any"))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "rooms:get:abc", cache.BuildCacheKey("rooms:get", "abc"))
}
