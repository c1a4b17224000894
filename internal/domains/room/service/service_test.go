package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"
)

const roomID = "64b7f0c2a1d3e4f5a6b7c8d9"

func ptr[T any](v T) *T {
	return &v
}

func existingRoom() model.Room {
	return model.Room{
		ID:        roomID,
		Number:    "101",
		Type:      model.TypeSingle,
		Price:     100,
		Capacity:  1,
		Status:    model.StatusAvailable,
		Amenities: []string{"WiFi"},
		Timestamps: gModel.Timestamps{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), mockS3), mockRepo, mockCache, mockS3
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		insertErr error
		wantCode  int
		wantErr   string
	}{
		{
			name: "defaults applied",
			req:  dto.CreateRoomRequest{Number: " 101 ", Type: model.TypeSingle, Price: ptr(100.0), Capacity: ptr(1)},
		},
		{
			name:      "duplicate number",
			req:       dto.CreateRoomRequest{Number: "101", Type: model.TypeSingle, Price: ptr(100.0), Capacity: ptr(1)},
			insertErr: &gRepo.DuplicateKeyError{Entity: model.EntityName, Field: model.FieldNumber, Err: errors.New("E11000")},
			wantCode:  http.StatusBadRequest,
			wantErr:   "Room number 101 already exists",
		},
		{
			name:      "repository error",
			req:       dto.CreateRoomRequest{Number: "102", Type: model.TypeDouble, Price: ptr(0.0), Capacity: ptr(2)},
			insertErr: errors.New("database error"),
			wantCode:  http.StatusInternalServerError,
			wantErr:   failure.MessageInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, _ := newService(t)

			var inserted model.Room
			mockRepo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, room model.Room) error {
					inserted = room

					return tt.insertErr
				})

			res, err := svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, failure.Classify(err).Message)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "101", inserted.Number)
			assert.Equal(t, model.StatusAvailable, res.Status)
			assert.Equal(t, []string{}, res.Amenities)
			assert.Len(t, res.ID, 24)
			assert.False(t, res.CreatedAt.IsZero())
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache, _ := newService(t)

	params := gDto.QueryParams{Page: 2, Limit: 2}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(5, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), params, gomock.Any()).
		Return([]model.Room{existingRoom(), existingRoom()}, nil)

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, &gDto.Pagination{Total: 5, Page: 2, Limit: 2, Pages: 3}, res.Pagination)
}

func TestRoomService_GetAll_CountError(t *testing.T) {
	svc, mockRepo, mockCache, _ := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("count error"))

	_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.Error(t, err)
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantCode  int
		wantID    string
	}{
		{
			name: "cache hit",
			setupMock: func(_ *roomMocks.MockRoom, c *cacheMocks.MockRedisCache) {
				c.EXPECT().
					Get(gomock.Any(), "room:get:"+roomID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						value.(*dto.RoomResponse).ID = roomID

						return nil
					})
			},
			wantID: roomID,
		},
		{
			name: "cache miss",
			setupMock: func(repo *roomMocks.MockRoom, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingRoom(), nil)
			},
			wantID: roomID,
		},
		{
			name: "not found",
			setupMock: func(repo *roomMocks.MockRoom, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "malformed identifier",
			setupMock: func(repo *roomMocks.MockRoom, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, gRepo.ErrInvalidID)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache, _ := newService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Get(context.Background(), roomID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ID)
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	t.Run("partial update keeps other fields", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingRoom(), nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 150.0, mod[model.FieldPrice])
				assert.NotContains(t, mod, model.FieldNumber)
				assert.Contains(t, mod, constant.FieldUpdatedAt)

				return nil
			})

		res, err := svc.Update(context.Background(), dto.UpdateRoomRequest{Price: ptr(150.0)}, roomID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 150.0, res.Price)
		assert.Equal(t, "101", res.Number)
		assert.Equal(t, []string{"WiFi"}, res.Amenities)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Update(context.Background(), dto.UpdateRoomRequest{Price: ptr(150.0)}, roomID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, model.MessageNotFound, err.Error())
	})

	t.Run("duplicate number", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingRoom(), nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&gRepo.DuplicateKeyError{Field: model.FieldNumber, Err: errors.New("23505")})

		_, err := svc.Update(context.Background(), dto.UpdateRoomRequest{Number: ptr("202")}, roomID)

		assert.Equal(t, "Room number 202 already exists", err.Error())
	})
}

func TestRoomService_UploadImage(t *testing.T) {
	header := &multipart.FileHeader{
		Filename: "room.png",
		Size:     512,
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: {"image/png"}},
	}

	t.Run("replaces previous image", func(t *testing.T) {
		svc, mockRepo, _, mockS3 := newService(t)

		room := existingRoom()
		room.Image = "https://cdn.example.com/room/old.png"

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		mockS3.EXPECT().
			UploadFile(gomock.Any(), model.EntityName, gomock.Any(), header, gomock.Any()).
			Return("https://cdn.example.com/room/new.png", nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		mockS3.EXPECT().GetObjectNameFromURL(room.Image).Return("old.png")
		mockS3.EXPECT().DeleteFile(gomock.Any(), model.EntityName, "old.png").Return(nil)

		res, err := svc.UploadImage(context.Background(), dto.UploadRoomImageRequest{Image: header}, roomID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/room/new.png", res.Image)
	})

	t.Run("uploads disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(roomMocks.NewMockRoom(ctrl), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel(), nil)

		_, err := svc.UploadImage(context.Background(), dto.UploadRoomImageRequest{Image: header}, roomID)

		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("returns deleted record", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingRoom(), nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Delete(context.Background(), roomID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, roomID, res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Delete(context.Background(), roomID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_WritesEvictRecordBeforeReturning(t *testing.T) {
	key := cache.BuildCacheKey("room:get", roomID)

	tests := []struct {
		name  string
		write func(svc service.Room, repo *roomMocks.MockRoom) error
	}{
		{
			name: "update",
			write: func(svc service.Room, repo *roomMocks.MockRoom) error {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingRoom(), nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

				_, err := svc.Update(context.Background(), dto.UpdateRoomRequest{Price: ptr(150.0)}, roomID)

				return err
			},
		},
		{
			name: "delete",
			write: func(svc service.Room, repo *roomMocks.MockRoom) error {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingRoom(), nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

				_, err := svc.Delete(context.Background(), roomID)

				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := roomMocks.NewMockRoom(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)

			evicted := false
			mockCache.EXPECT().
				Delete(gomock.Any(), key).
				DoAndReturn(func(context.Context, string) error {
					evicted = true

					return errors.New("redis: connection refused")
				})
			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel(), nil)

			require.NoError(t, tt.write(svc, mockRepo))
			assert.True(t, evicted)
		})
	}
}
