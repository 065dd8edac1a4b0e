package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dashboard/config"
	"dashboard/infras/otel"
	"dashboard/infras/s3"
	"dashboard/internal/domains/room/model"
	"dashboard/internal/domains/room/model/dto"
	"dashboard/internal/domains/room/repository"
	"dashboard/shared"
	"dashboard/shared/cache"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/failure"
	"fmt"
	"path"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

const (
	msgRoomNotFound = "Room not found"
	msgEmptyUpdate  = "update request cannot be empty"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, roomNumber string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, roomNumber string) (dto.RoomResponse, error)
	UploadPhoto(ctx context.Context, req gDto.PhotoUpload, roomNumber string) (dto.RoomResponse, error)
	Delete(ctx context.Context, roomNumber string) error
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

func byRoomNumber(roomNumber string) gDto.FilterGroup {
	return shared.FilterByID(roomNumber, model.FieldRoomNumber, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, byRoomNumber(req.RoomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if exist {
		return res, failure.Conflict(fmt.Sprintf("Room [%s] already exists", req.RoomNumber)) //nolint:wrapcheck
	}

	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
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

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, roomNumber string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, roomNumber)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, roomNumber)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	if cacheErr := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Error().Err(cacheErr).Msg("failed to save room to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, roomNumber string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ChangesKey(roomNumber) {
		return res, failure.BadRequestFromString(dto.MsgRoomNumberChanged) //nolint:wrapcheck
	}

	if !shared.HasUpdates(req) {
		return res, failure.BadRequestFromString(msgEmptyUpdate) //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, roomNumber)
	if err != nil {
		return res, err
	}

	if errs := req.StayErrors(current); len(errs) > 0 {
		return res, failure.Validation(errs...) //nolint:wrapcheck
	}

	return s.apply(ctx, req.ToFields(user), roomNumber)
}

// UploadPhoto stores a new room photo and removes the one it replaces.
func (s *serviceImpl) UploadPhoto(ctx context.Context, req gDto.PhotoUpload, roomNumber string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UploadPhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, roomNumber)
	if err != nil {
		return res, err
	}

	objectName := shared.PhotoObjectName(roomNumber, req.Header)

	url, err := s.s3.UploadFile(ctx, constant.Empty, model.TableName, req.File, req.Header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room photo")

		return res, fmt.Errorf("failed to upload room photo: %w", err)
	}

	res, err = s.apply(ctx, shared.TransformFields(&dto.UpdateRoomRequest{RoomPhoto: &url}, user), roomNumber)
	if err != nil {
		if delErr := s.s3.DeleteFile(ctx, constant.Empty, path.Join(model.TableName, objectName)); delErr != nil {
			log.Error().Err(delErr).Msg("failed to clean up uploaded room photo")
		}

		return res, err
	}

	if old := s.s3.GetObjectNameFromURL(current.RoomPhoto); old != constant.Empty {
		if delErr := s.s3.DeleteFile(ctx, constant.Empty, old); delErr != nil {
			log.Error().Err(delErr).Str("object", old).Msg("failed to delete previous room photo")
		}
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, roomNumber string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := byRoomNumber(roomNumber)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx, roomNumber)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, roomNumber string) (model.Room, error) {
	room, err := s.repo.Get(ctx, byRoomNumber(roomNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
	}

	return room, nil
}

// apply writes fields to the room and returns the stored result.
func (s *serviceImpl) apply(ctx context.Context, fields map[string]any, roomNumber string) (res dto.RoomResponse, err error) {
	filter := byRoomNumber(roomNumber)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload room")

		return res, fmt.Errorf("failed to reload room: %w", err)
	}

	res.FromModel(updated)
	s.invalidate(ctx, roomNumber)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, roomNumber string) {
	shared.EvictCache(ctx, s.cache, shared.BuildCacheKey(cacheGetRoom, roomNumber), cacheGetAllRoom, cacheCountRoom)
}
