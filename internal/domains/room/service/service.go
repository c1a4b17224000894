package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

const messageUploadsDisabled = "Room image uploads are not enabled"

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (dto.RoomResponse, error)
	UploadImage(ctx context.Context, req dto.UploadRoomImageRequest, id string) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func duplicateNumber(err error, number string) error {
	if field, ok := gRepo.IsDuplicate(err); ok && field == model.FieldNumber {
		return failure.Conflict(fmt.Sprintf("Room number %s already exists", number))
	}

	return err
}

// invalidate drops the cached record before the write is acknowledged so a following
// read sees it. List and count pages are cleared in the background.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if id != constant.Empty {
		if err := s.cache.Delete(ctx, cache.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}
	}

	go cache.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllRoom, cacheCountRoom)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room := req.ToModel()
	if err = room.Validate(); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, duplicateNumber(err, room.Number)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := cache.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req)

	cache.SaveAsync(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := cache.BuildCacheKeyWithQuery(cacheCountRoom, gDto.QueryParams{Status: req.Status}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	cache.SaveAsync(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := cache.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	res.FromModel(room)

	cache.SaveAsync(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) current(ctx context.Context, filter gDto.FilterGroup) (model.Room, error) {
	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(model.MessageNotFound) // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.current(ctx, filter)
	if err != nil {
		return res, err
	}

	req.Merge(&room)

	if err = room.Validate(); err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req)
	room.UpdatedAt, _ = updatedFields[constant.FieldUpdatedAt].(time.Time)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return res, duplicateNumber(fmt.Errorf("failed to update room: %w", err), room.Number)
	}

	s.invalidate(ctx, room.ID)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadRoomImageRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if s.s3 == nil {
		return res, failure.ServiceUnavailable(messageUploadsDisabled)
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.current(ctx, filter)
	if err != nil {
		return res, err
	}

	filename := uuid.NewString() + path.Ext(req.Image.Filename)

	url, err := s.s3.UploadFile(ctx, model.EntityName, req.ImageFile, req.Image, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	now := timezone.Now()
	updatedFields := map[string]any{
		model.FieldImage:        url,
		constant.FieldUpdatedAt: now,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room image")

		if delErr := s.s3.DeleteFile(ctx, model.EntityName, filename); delErr != nil {
			log.Error().Err(delErr).Msg("failed to clean up uploaded image")
		}

		return res, fmt.Errorf("failed to update room image: %w", err)
	}

	s.deleteImage(ctx, room.Image)

	room.Image = url
	room.UpdatedAt = now

	s.invalidate(ctx, room.ID)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, url string) {
	if s.s3 == nil || url == constant.Empty {
		return
	}

	objectName := s.s3.GetObjectNameFromURL(url)
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, model.EntityName, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to delete previous room image")
	}
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.current(ctx, filter)
	if err != nil {
		return res, err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return res, fmt.Errorf("failed to delete room: %w", err)
	}

	s.deleteImage(ctx, room.Image)
	s.invalidate(ctx, room.ID)

	res.FromModel(room)

	return res, nil
}
