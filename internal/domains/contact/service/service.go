package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dashboard/config"
	"dashboard/infras/otel"
	"dashboard/internal/domains/contact/model"
	"dashboard/internal/domains/contact/model/dto"
	"dashboard/internal/domains/contact/repository"
	"dashboard/shared"
	"dashboard/shared/cache"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/failure"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetContact    = "contact:get"
	cacheGetAllContact = "contact:gets"
	cacheCountContact  = "contact:count"
)

const (
	msgMessageNotFound = "Message not found"
	msgEmptyUpdate     = "update request cannot be empty"
	msgInvalidDate     = "Date must be a valid date string."
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetContactsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, messageID string) (dto.ContactResponse, error)
	Update(ctx context.Context, req dto.UpdateContactRequest, messageID string) (dto.ContactResponse, error)
	Delete(ctx context.Context, messageID string) error
}

type serviceImpl struct {
	repo  repository.Contact
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Contact, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func byMessageID(messageID string) gDto.FilterGroup {
	return shared.FilterByID(messageID, model.FieldMessageID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	contact, err := req.ToModel(user)
	if err != nil {
		return res, failure.Validation(msgInvalidDate) //nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, byMessageID(contact.MessageID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if message exists")

		return res, fmt.Errorf("failed to check if message exists: %w", err)
	}

	if exist {
		return res, failure.Conflict(fmt.Sprintf("Message [%s] already exists", contact.MessageID)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to create message")

		return res, fmt.Errorf("failed to create message: %w", err)
	}

	res.FromModel(contact)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllContact)
		shared.InvalidateCaches(c, s.cache, cacheCountContact)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetContactsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllContact, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for messages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count messages")

		return res, fmt.Errorf("failed to count messages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get messages")

		return res, fmt.Errorf("failed to get messages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save messages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountContact, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count messages")

		return res, fmt.Errorf("failed to count messages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save message count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, messageID string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetContact, messageID)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for message")

		return res, nil
	}

	contact, err := s.repo.Get(ctx, byMessageID(messageID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get message")

		return res, fmt.Errorf("failed to get message: %w", err)
	}

	if contact.ID == constant.Empty {
		return res, failure.NotFound(msgMessageNotFound) //nolint:wrapcheck
	}

	res.FromModel(contact)

	if cacheErr := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Error().Err(cacheErr).Msg("failed to save message to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateContactRequest, messageID string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ChangesKey(messageID) {
		return res, failure.BadRequestFromString(dto.MsgMessageIDChanged) //nolint:wrapcheck
	}

	if !shared.HasUpdates(req) {
		return res, failure.BadRequestFromString(msgEmptyUpdate) //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := byMessageID(messageID)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if message exists")

		return res, fmt.Errorf("failed to check if message exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgMessageNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, req.ToFields(user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update message")

		return res, fmt.Errorf("failed to update message: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload message")

		return res, fmt.Errorf("failed to reload message: %w", err)
	}

	res.FromModel(updated)
	s.invalidate(ctx, messageID)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, messageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := byMessageID(messageID)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if message exists")

		return fmt.Errorf("failed to check if message exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgMessageNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete message")

		return fmt.Errorf("failed to delete message: %w", err)
	}

	s.invalidate(ctx, messageID)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, messageID string) {
	shared.EvictCache(ctx, s.cache, shared.BuildCacheKey(cacheGetContact, messageID), cacheGetAllContact, cacheCountContact)
}
