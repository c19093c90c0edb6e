package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kalakriti/events-backend/internal/config"
	"github.com/kalakriti/events-backend/internal/handler"
	"github.com/kalakriti/events-backend/internal/middleware"
)

// Handlers bundles every handler the router registers.
type Handlers struct {
	Auth          *handler.AuthHandler
	Payments      *handler.PaymentHandler
	Registrations *handler.RegistrationHandler
	Users         *handler.UserHandler
	Events        *handler.EventHandler
	Results       *handler.ResultHandler
	Contacts      *handler.ContactHandler
	Assets        *handler.AssetHandler
}

// RegisterRoutes registers routes that need no authentication: the health
// check, signup/signin, the public event catalogue and results, and the
// contact form.  Public GETs sit behind the Redis response cache when one is
// configured.
func RegisterRoutes(e *echo.Echo, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	pub := e.Group("/v1/backend")
	pub.POST("/signup", h.Auth.Signup)
	pub.POST("/signin", h.Auth.Signin)
	pub.POST("/contact-us", h.Contacts.Create)

	browse := e.Group("/v1/backend")
	if rdb != nil {
		browse.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	browse.GET("/events", h.Events.List)
	browse.GET("/events/:id", h.Events.Get)
	browse.GET("/results", h.Results.List)
	browse.GET("/results/:id", h.Results.Get)
}

// RegisterProtected registers everything behind JWT authentication.  Any
// signed-in role may read; mutations on shared resources take the admin
// role, enforced per route.
func RegisterProtected(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group("/v1/backend", middleware.JWTAuth(jwtSecret))

	g.GET("/me", h.Auth.Me)

	// Payment flow: order creation then signature verification.
	g.POST("/payment/create-order", h.Payments.CreateOrder)
	g.POST("/payment/verify", h.Payments.Verify)

	// Registrations: users create and read their own; status corrections
	// and deletion stay with admins.
	g.POST("/event-registrations", h.Registrations.Create)
	g.GET("/event-registrations", h.Registrations.List)
	g.GET("/event-registrations/:id", h.Registrations.Get)
	g.PATCH("/event-registrations/:id", h.Registrations.Update, middleware.RequireRole("admin"))
	g.DELETE("/event-registrations/:id", h.Registrations.Delete, middleware.RequireRole("admin"))

	// Users: self-or-admin checks live in the handler; listing is admin.
	g.GET("/users", h.Users.List, middleware.RequireRole("admin"))
	g.GET("/users/:id", h.Users.Get)
	g.PATCH("/users/:id", h.Users.Update)
	g.DELETE("/users/:id", h.Users.Delete)

	// Event catalogue mutations.
	g.POST("/events", h.Events.Create, middleware.RequireRole("admin"))
	g.PATCH("/events/:id", h.Events.Update, middleware.RequireRole("admin"))
	g.DELETE("/events/:id", h.Events.Delete, middleware.RequireRole("admin"))

	// Results are published and corrected by admins; reads are public.
	g.POST("/results", h.Results.Create, middleware.RequireRole("admin"))
	g.PATCH("/results/:id", h.Results.Update, middleware.RequireRole("admin"))
	g.DELETE("/results/:id", h.Results.Delete, middleware.RequireRole("admin"))

	// Contact inbox is admin territory.
	g.GET("/contact-us", h.Contacts.List, middleware.RequireRole("admin"))
	g.GET("/contact-us/:id", h.Contacts.Get, middleware.RequireRole("admin"))
	g.DELETE("/contact-us/:id", h.Contacts.Delete, middleware.RequireRole("admin"))

	// Artwork uploads, tied to a registration the caller owns.
	g.POST("/assets", h.Assets.Upload)
	g.GET("/event-registrations/:registration_id/assets", h.Assets.ListByRegistration)
	g.GET("/assets/:id", h.Assets.Get)
	g.DELETE("/assets/:id", h.Assets.Delete, middleware.RequireRole("admin"))
}
