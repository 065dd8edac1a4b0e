package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dashboard/config"
	"dashboard/infras/otel"
	"dashboard/infras/s3"
	"dashboard/internal/domains/user/model"
	"dashboard/internal/domains/user/model/dto"
	"dashboard/internal/domains/user/repository"
	"dashboard/shared"
	"dashboard/shared/cache"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/failure"
	"dashboard/shared/password"
	"fmt"
	"path"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

const (
	msgUserNotFound   = "User not found"
	msgEmptyUpdate    = "update request cannot be empty"
	msgInvalidStartAt = "Start Date is required and must be a valid date."
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, employeeID string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, employeeID string) (dto.UserResponse, error)
	Replace(ctx context.Context, req dto.ReplaceUserRequest, employeeID string) (dto.UserResponse, error)
	UploadPhoto(ctx context.Context, req gDto.PhotoUpload, employeeID string) (dto.UserResponse, error)
	Delete(ctx context.Context, employeeID string) error
}

// change is a PATCH or PUT body.
type change interface {
	ChangesKey(employeeID string) bool
	NewEmail() *string
	NewPassword() *string
	ToFields(user string) map[string]any
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func byEmployeeID(employeeID string) gDto.FilterGroup {
	return shared.FilterByID(employeeID, model.FieldEmployeeID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, byEmployeeID(req.EmployeeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exist {
		return res, failure.Conflict(fmt.Sprintf("User [%s] already exists", req.EmployeeID)) //nolint:wrapcheck
	}

	if err = s.ensureEmailFree(ctx, model.NormalizeEmail(req.Email)); err != nil {
		return res, err
	}

	hashed, err := password.Hash(req.Password, s.cfg.Password.BcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := req.ToModel(actor, hashed)
	if err != nil {
		return res, failure.Validation(msgInvalidStartAt) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(users, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, employeeID string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, employeeID)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.find(ctx, employeeID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	if cacheErr := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Error().Err(cacheErr).Msg("failed to save user to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, employeeID string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ChangesKey(employeeID) {
		return res, failure.BadRequestFromString(dto.MsgEmployeeIDChanged) //nolint:wrapcheck
	}

	if !shared.HasUpdates(req) && req.Password == nil {
		return res, failure.BadRequestFromString(msgEmptyUpdate) //nolint:wrapcheck
	}

	return s.change(ctx, &req, employeeID)
}

func (s *serviceImpl) Replace(ctx context.Context, req dto.ReplaceUserRequest, employeeID string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Replace")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ChangesKey(employeeID) {
		return res, failure.BadRequestFromString(dto.MsgEmployeeIDChanged) //nolint:wrapcheck
	}

	return s.change(ctx, &req, employeeID)
}

// UploadPhoto stores a new profile photo and removes the one it replaces.
func (s *serviceImpl) UploadPhoto(ctx context.Context, req gDto.PhotoUpload, employeeID string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.UploadPhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, employeeID)
	if err != nil {
		return res, err
	}

	objectName := shared.PhotoObjectName(employeeID, req.Header)

	url, err := s.s3.UploadFile(ctx, constant.Empty, model.TableName, req.File, req.Header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload user photo")

		return res, fmt.Errorf("failed to upload user photo: %w", err)
	}

	res, err = s.apply(ctx, shared.TransformFields(&dto.UpdateUserRequest{Photo: &url}, actor), employeeID)
	if err != nil {
		if delErr := s.s3.DeleteFile(ctx, constant.Empty, path.Join(model.TableName, objectName)); delErr != nil {
			log.Error().Err(delErr).Msg("failed to clean up uploaded user photo")
		}

		return res, err
	}

	if old := s.s3.GetObjectNameFromURL(current.Photo); old != constant.Empty {
		if delErr := s.s3.DeleteFile(ctx, constant.Empty, old); delErr != nil {
			log.Error().Err(delErr).Str("object", old).Msg("failed to delete previous user photo")
		}
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, employeeID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := byEmployeeID(employeeID)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgUserNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, employeeID)

	return nil
}

func (s *serviceImpl) change(ctx context.Context, req change, employeeID string) (res dto.UserResponse, err error) {
	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, employeeID)
	if err != nil {
		return res, err
	}

	if email := req.NewEmail(); email != nil && *email != current.Email {
		if err = s.ensureEmailFree(ctx, *email); err != nil {
			return res, err
		}
	}

	fields := req.ToFields(actor)

	if plain := req.NewPassword(); plain != nil {
		hashed, err := password.Hash(*plain, s.cfg.Password.BcryptCost)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		fields[model.FieldPassword] = hashed
	}

	return s.apply(ctx, fields, employeeID)
}

func (s *serviceImpl) ensureEmailFree(ctx context.Context, email string) error {
	taken, err := s.repo.Exist(ctx, repository.ByEmail(email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if email is registered")

		return fmt.Errorf("failed to check if email is registered: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("Email [%s] is already registered", email)) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, employeeID string) (model.User, error) {
	user, err := s.repo.Get(ctx, byEmployeeID(employeeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound(msgUserNotFound) //nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) apply(ctx context.Context, fields map[string]any, employeeID string) (res dto.UserResponse, err error) {
	filter := byEmployeeID(employeeID)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload user")

		return res, fmt.Errorf("failed to reload user: %w", err)
	}

	res.FromModel(updated)
	s.invalidate(ctx, employeeID)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, employeeID string) {
	shared.EvictCache(ctx, s.cache, shared.BuildCacheKey(cacheGetUser, employeeID), cacheGetAllUser, cacheCountUser)
}
