//go:build wireinject
// +build wireinject

package di

import (
	"oasis/config"
	"oasis/infras/jwt"
	"oasis/infras/kafka"
	"oasis/infras/khalti"
	"oasis/infras/otel"
	"oasis/infras/postgres"
	"oasis/infras/redis"
	"oasis/infras/s3"
	"oasis/permissions"
	"oasis/shared/cache"
	"oasis/transport/http"
	"oasis/transport/http/middleware"
	"oasis/transport/http/router"

	"github.com/google/wire"

	authService "oasis/internal/domains/auth/service"
	bookingRepository "oasis/internal/domains/booking/repository"
	bookingService "oasis/internal/domains/booking/service"
	cabinRepository "oasis/internal/domains/cabin/repository"
	cabinService "oasis/internal/domains/cabin/service"
	paymentRepository "oasis/internal/domains/payment/repository"
	paymentService "oasis/internal/domains/payment/service"
	userRepository "oasis/internal/domains/user/repository"
	userService "oasis/internal/domains/user/service"

	authHandler "oasis/internal/handlers/auth"
	bookingHandler "oasis/internal/handlers/booking"
	cabinHandler "oasis/internal/handlers/cabin"
	paymentHandler "oasis/internal/handlers/payment"
	userHandler "oasis/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	khalti.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var cabinDomain = wire.NewSet(
	cabinRepository.New,
	cabinService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	cabinDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	cabinHandler.New,
	bookingHandler.New,
	paymentHandler.New,
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
		http.New,
	)

	return &http.HTTP{}
}
