package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dashboard/config"
	"dashboard/infras/kafka"
	"dashboard/infras/otel"
	"dashboard/internal/domains/booking/model"
	"dashboard/internal/domains/booking/model/dto"
	"dashboard/internal/domains/booking/repository"
	"dashboard/shared"
	"dashboard/shared/cache"
	"dashboard/shared/constant"
	gDto "dashboard/shared/dto"
	"dashboard/shared/failure"
	"dashboard/shared/timezone"
	"dashboard/shared/validator"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	msgBookingNotFound = "Booking not found"
	msgEmptyUpdate     = "update request cannot be empty"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, reservationNumber string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, reservationNumber string) (dto.BookingResponse, error)
	Delete(ctx context.Context, reservationNumber string) error
}

type serviceImpl struct {
	repo     repository.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	producer kafka.Client
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, producer kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		producer: producer,
	}
}

func byReservationNumber(reservationNumber string) gDto.FilterGroup {
	return shared.FilterByID(reservationNumber, model.FieldReservationNumber, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.Validation(validator.MessageInvalidDates) //nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, byReservationNumber(booking.ReservationNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return res, fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if exist {
		return res, failure.Conflict(fmt.Sprintf("Booking [%s] already exists", booking.ReservationNumber)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	s.publish(ctx, model.EventCreated, booking.ReservationNumber, &res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, reservationNumber string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, reservationNumber)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, byReservationNumber(reservationNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
	}

	res.FromModel(booking)

	if cacheErr := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Error().Err(cacheErr).Msg("failed to save booking to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, reservationNumber string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ChangesKey(reservationNumber) {
		return res, failure.BadRequestFromString(dto.MsgReservationNumberChanged) //nolint:wrapcheck
	}

	if !shared.HasUpdates(req) {
		return res, failure.BadRequestFromString(msgEmptyUpdate) //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := byReservationNumber(reservationNumber)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
	}

	if errs := req.StayErrors(current); len(errs) > 0 {
		return res, failure.Validation(errs...) //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, req.ToFields(user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload booking")

		return res, fmt.Errorf("failed to reload booking: %w", err)
	}

	res.FromModel(updated)

	s.invalidate(ctx, reservationNumber)

	s.publish(ctx, model.EventUpdated, reservationNumber, &res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, reservationNumber string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := byReservationNumber(reservationNumber)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, reservationNumber)

	s.publish(ctx, model.EventDeleted, reservationNumber, nil)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, reservationNumber string) {
	shared.EvictCache(ctx, s.cache, shared.BuildCacheKey(cacheGetBooking, reservationNumber), cacheGetAllBooking, cacheCountBooking)
}

// publish sends a booking event without holding up the request.
func (s *serviceImpl) publish(ctx context.Context, eventType, reservationNumber string, booking *dto.BookingResponse) {
	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	event := dto.BookingEvent{
		Type:              eventType,
		ReservationNumber: reservationNumber,
		Booking:           booking,
		OccurredAt:        timezone.Now(),
		Actor:             actor,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.producer.SendMessages(c, s.cfg.Kafka.Topic.Booking, kafka.Message{Key: reservationNumber, Value: event})
		if err != nil {
			log.Error().Err(err).Str("event", eventType).Str("reservationNumber", reservationNumber).Msg("failed to publish booking event")
		}
	}()
}
