package router

import (
	"oasis/internal/handlers/auth"
	"oasis/internal/handlers/booking"
	"oasis/internal/handlers/cabin"
	"oasis/internal/handlers/payment"
	"oasis/internal/handlers/user"
	"oasis/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Cabin   cabin.Handler
	Booking booking.Handler
	Payment payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthMiddleware.APIKey)
		routerGroup.Use(r.AuthMiddleware.Auth)
		routerGroup.Use(r.AuthMiddleware.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Cabin.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
