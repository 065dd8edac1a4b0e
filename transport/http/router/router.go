package router

import (
	"dashboard/internal/handlers/auth"
	"dashboard/internal/handlers/booking"
	"dashboard/internal/handlers/contact"
	"dashboard/internal/handlers/room"
	"dashboard/internal/handlers/user"
	"dashboard/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Booking booking.Handler
	Room    room.Handler
	Contact contact.Handler
	User    user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

// SetupRoutes mounts login publicly and every resource behind the token check.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)

	router.Group(func(protected chi.Router) {
		protected.Use(r.Auth.Auth)

		r.DomainHandlers.Booking.Router(protected)
		r.DomainHandlers.Room.Router(protected)
		r.DomainHandlers.Contact.Router(protected)
		r.DomainHandlers.User.Router(protected)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
