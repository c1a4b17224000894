package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	guestMocks "hotel/internal/domains/guest/mocks"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
)

const guestID = "64b7f0c2a1d3e4f5a6b7c8e1"

func existingGuest() model.Guest {
	return model.Guest{
		ID:      guestID,
		Name:    "John Doe",
		Email:   "john@example.com",
		Phone:   "+1234567890",
		Address: "123 Main St",
	}
}

func newService(t *testing.T) (service.Guest, *guestMocks.MockGuest, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestGuestService_Create(t *testing.T) {
	t.Run("normalizes email", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, guest model.Guest) error {
				assert.Equal(t, "john@example.com", guest.Email)
				assert.Equal(t, "John Doe", guest.Name)

				return nil
			})

		res, err := svc.Create(context.Background(), dto.CreateGuestRequest{
			Name:    " John Doe ",
			Email:   " John@Example.COM ",
			Phone:   "+1234567890",
			Address: "123 Main St",
		})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "john@example.com", res.Email)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&gRepo.DuplicateKeyError{Entity: model.EntityName, Field: model.FieldEmail, Err: errors.New("E11000")})

		_, err := svc.Create(context.Background(), dto.CreateGuestRequest{
			Name:    "John Doe",
			Email:   "john@example.com",
			Phone:   "+1234567890",
			Address: "123 Main St",
		})

		require.Error(t, err)
		assert.Equal(t, "Email john@example.com already exists", err.Error())
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("short name rejected before insert", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Create(context.Background(), dto.CreateGuestRequest{
			Name:    " J ",
			Email:   "john@example.com",
			Phone:   "+1234567890",
			Address: "123 Main St",
		})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestGuestService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *guestMocks.MockGuest, c *cacheMocks.MockRedisCache)
		wantErr   bool
		wantLen   int
	}{
		{
			name: "success",
			setupMock: func(repo *guestMocks.MockGuest, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Guest{existingGuest()}, nil)
			},
			wantLen: 1,
		},
		{
			name: "empty collection",
			setupMock: func(repo *guestMocks.MockGuest, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name: "repository error",
			setupMock: func(repo *guestMocks.MockGuest, c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Len(t, res.Guests, tt.wantLen)
			assert.NotNil(t, res.Guests)
		})
	}
}

func TestGuestService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

		_, err := svc.Get(context.Background(), guestID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, model.MessageNotFound, err.Error())
	})

	t.Run("found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingGuest(), nil)

		res, err := svc.Get(context.Background(), guestID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "John Doe", res.Name)
	})
}

func TestGuestService_Update(t *testing.T) {
	t.Run("updates phone only", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		phone := "+19876543210"

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingGuest(), nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, phone, mod[model.FieldPhone])
				assert.NotContains(t, mod, model.FieldEmail)

				return nil
			})

		res, err := svc.Update(context.Background(), dto.UpdateGuestRequest{Phone: &phone}, guestID)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, phone, res.Phone)
		assert.Equal(t, "john@example.com", res.Email)
	})

	t.Run("email taken by another guest", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		email := "Jane@Example.com"

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingGuest(), nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&gRepo.DuplicateKeyError{Field: model.FieldEmail, Err: errors.New("23505")})

		_, err := svc.Update(context.Background(), dto.UpdateGuestRequest{Email: &email}, guestID)

		assert.Equal(t, "Email jane@example.com already exists", err.Error())
	})
}

func TestGuestService_Delete(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingGuest(), nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.Delete(context.Background(), guestID)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, guestID, res.ID)
}

func TestGuestService_WritesEvictRecordBeforeReturning(t *testing.T) {
	key := cache.BuildCacheKey("guest:get", guestID)
	phone := "+19876543210"

	tests := []struct {
		name  string
		write func(svc service.Guest, repo *guestMocks.MockGuest) error
	}{
		{
			name: "update",
			write: func(svc service.Guest, repo *guestMocks.MockGuest) error {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingGuest(), nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

				_, err := svc.Update(context.Background(), dto.UpdateGuestRequest{Phone: &phone}, guestID)

				return err
			},
		},
		{
			name: "delete",
			write: func(svc service.Guest, repo *guestMocks.MockGuest) error {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingGuest(), nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

				_, err := svc.Delete(context.Background(), guestID)

				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := guestMocks.NewMockGuest(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)

			evicted := false
			mockCache.EXPECT().
				Delete(gomock.Any(), key).
				DoAndReturn(func(context.Context, string) error {
					evicted = true

					return nil
				})
			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel())

			require.NoError(t, tt.write(svc, mockRepo))
			assert.True(t, evicted)
		})
	}
}
