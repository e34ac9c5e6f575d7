package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/config"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/handlers"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/middleware"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/transport"
)

const (
	scrapeLimit = 30
	batchLimit  = 5

	rateLimitMessage   = "Too many requests from this IP, please try again later."
	scrapeLimitMessage = "Too many scraping requests, please try again later."
	batchLimitMessage  = "Too many batch requests, please try again later."
)

func NewRouter(
	roastH *handlers.RoastHandler,
	igH *handlers.InstagramHandler,
	cfg *config.Config,
) http.Handler {

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger())
	r.Use(observability.MetricsMiddleware(cfg.ServiceName))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	r.Get("/health", handlers.Health)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow, rateLimitMessage))

		api.Route("/roasts", func(p chi.Router) {
			p.Post("/", roastH.Create)
			p.Get("/stats", roastH.Stats)
			p.Get("/user/{username}", roastH.UserRoasts)
		})

		api.Route("/instagram", func(p chi.Router) {
			p.With(middleware.RateLimit(scrapeLimit, cfg.RateLimitWindow, scrapeLimitMessage)).
				Get("/scrape/{username}", igH.Scrape)
			p.With(middleware.RateLimit(batchLimit, cfg.RateLimitWindow, batchLimitMessage)).
				Post("/batch", igH.Batch)
			p.Get("/stats/{username}", igH.Stats)
			p.Get("/health", igH.Health)
			p.Get("/info", igH.Info)
		})
	})

	return otelhttp.NewHandler(r, cfg.ServiceName)
}
