package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-fridge-tracker/internal/config"
	"go-fridge-tracker/internal/handler"
	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	ItemTypes  *handler.ItemTypeHandler
	Fridge     *handler.FridgeHandler
	Cart       *handler.CartHandler
	Stats      *handler.StatsHandler
	System     *handler.SystemHandler
	ChangeFeed http.Handler
	// Photos serves locally stored photos; nil when photos live elsewhere.
	Photos http.Handler
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
	actorMiddleware *middleware.ActorMiddleware,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM)

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger, m))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.System.Health)
	r.Method(http.MethodGet, "/metrics", m.Handler())
	if h.Photos != nil {
		r.Method(http.MethodGet, "/photos/*", http.StripPrefix("/photos/", h.Photos))
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(actorMiddleware.RequireActor)

		// The change feed is long-lived and must stay outside the request timeout.
		api.Method(http.MethodGet, "/changes/ws", h.ChangeFeed)

		api.Group(func(api chi.Router) {
			api.Use(middleware.Timeout(cfg.RequestTimeout))

			api.Get("/item-types", h.ItemTypes.List)
			api.With(actorMiddleware.RequireAdmin).Post("/item-types", h.ItemTypes.Create)
			api.With(actorMiddleware.RequireAdmin).Put("/item-types/{id}", h.ItemTypes.Update)
			api.With(actorMiddleware.RequireAdmin).Delete("/item-types/{id}", h.ItemTypes.Delete)

			api.Get("/fridge", h.Fridge.List)
			api.Post("/fridge", h.Fridge.Create)
			api.Put("/fridge/{id}", h.Fridge.Update)
			api.Delete("/fridge/{id}", h.Fridge.Delete)
			api.Post("/fridge/{id}/to-cart", h.Fridge.ToCart)

			api.Get("/cart", h.Cart.List)
			api.Post("/cart", h.Cart.Create)
			api.Put("/cart/{id}", h.Cart.Update)
			api.Delete("/cart/{id}", h.Cart.Delete)

			api.Get("/stats", h.Stats.Get)
			api.Get("/changes", h.Stats.ChangeLog)
		})
	})

	return r
}
