//go:build wireinject
// +build wireinject

package di

import (
	"dashboard/config"
	"dashboard/helper"
	"dashboard/infras/jwt"
	"dashboard/infras/kafka"
	"dashboard/infras/metrics"
	"dashboard/infras/otel"
	"dashboard/infras/postgres"
	"dashboard/infras/redis"
	"dashboard/infras/s3"
	"dashboard/shared/cache"
	"dashboard/transport/http"
	"dashboard/transport/http/middleware"
	"dashboard/transport/http/router"

	"github.com/google/wire"

	authService "dashboard/internal/domains/auth/service"
	bookingRepository "dashboard/internal/domains/booking/repository"
	bookingService "dashboard/internal/domains/booking/service"
	contactRepository "dashboard/internal/domains/contact/repository"
	contactService "dashboard/internal/domains/contact/service"
	roomRepository "dashboard/internal/domains/room/repository"
	roomService "dashboard/internal/domains/room/service"
	userRepository "dashboard/internal/domains/user/repository"
	userService "dashboard/internal/domains/user/service"

	authHandler "dashboard/internal/handlers/auth"
	bookingHandler "dashboard/internal/handlers/booking"
	contactHandler "dashboard/internal/handlers/contact"
	roomHandler "dashboard/internal/handlers/room"
	userHandler "dashboard/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	roomDomain,
	contactDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	roomHandler.New,
	contactHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		wire.Bind(new(http.Store), new(*postgres.Connection)),
		http.New,
	)

	return &http.HTTP{}
}

func InitializeSeeder() *helper.Seeder {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		helper.NewSeeder,
	)

	return &helper.Seeder{}
}
