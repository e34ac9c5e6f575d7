package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/instagram"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/service"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/transport"
)

type ScraperAPI interface {
	Profile(ctx context.Context, raw string) (*model.Profile, model.ProfileStats, error)
	Stats(ctx context.Context, raw string) (model.ProfileStats, error)
	Batch(ctx context.Context, usernames []string, delay time.Duration) ([]service.BatchResult, service.BatchSummary, error)
	Health(ctx context.Context) (*model.Profile, error)
	Sources() []string
}

// ScraperLimits is advertised by the info endpoint.
type ScraperLimits struct {
	MaxUsernamesPerRequest int
	MaxPostsPerProfile     int
	DefaultDelay           time.Duration
	MaxDelay               time.Duration
}

type InstagramHandler struct {
	svc    ScraperAPI
	limits ScraperLimits
}

func NewInstagramHandler(svc ScraperAPI, limits ScraperLimits) *InstagramHandler {
	if limits.MaxPostsPerProfile == 0 {
		limits.MaxPostsPerProfile = instagram.MaxRecentPosts
	}
	return &InstagramHandler{svc: svc, limits: limits}
}

// Scrape handles GET /api/instagram/scrape/{username}.
func (h *InstagramHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	profile, stats, err := h.svc.Profile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: map[string]interface{}{
			"profile":   profile,
			"stats":     stats,
			"scrapedAt": nowISO(),
		},
	})
}

// Batch handles POST /api/instagram/batch. delay is in milliseconds.
func (h *InstagramHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Usernames []string `json:"usernames"`
		Delay     *int64   `json:"delay"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "usernames must be an array of strings")
		return
	}

	var delay time.Duration
	if req.Delay != nil && *req.Delay > 0 {
		delay = time.Duration(*req.Delay) * time.Millisecond
	}

	results, summary, err := h.svc.Batch(r.Context(), req.Usernames, delay)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: map[string]interface{}{
			"results":   results,
			"summary":   summary,
			"scrapedAt": nowISO(),
		},
	})
}

// Stats handles GET /api/instagram/stats/{username}.
func (h *InstagramHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: map[string]interface{}{
			"username":  stats.Username,
			"stats":     stats,
			"scrapedAt": nowISO(),
		},
	})
}

// Health handles GET /api/instagram/health by scraping a known public account.
func (h *InstagramHandler) Health(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Health(r.Context())
	if err != nil {
		observability.GetLogger(r.Context()).Warn("scraper health check failed", zap.Error(err))
		transport.WriteError(w, http.StatusServiceUnavailable, "SCRAPER_UNHEALTHY", "Instagram scraper health check failed")
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Instagram scraper is working correctly",
		"testProfile": map[string]interface{}{
			"username":  p.Username,
			"followers": p.FollowersCount,
			"posts":     p.PostsCount,
			"source":    p.Source,
		},
		"timestamp": nowISO(),
	})
}

// Info handles GET /api/instagram/info.
func (h *InstagramHandler) Info(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: map[string]interface{}{
			"name":    "Instagram Profile Scraper",
			"version": "1.0.0",
			"sources": h.svc.Sources(),
			"features": []string{
				"Profile data extraction",
				"Recent posts analysis",
				"Engagement rate calculation",
				"Hashtag and mention extraction",
				"Batch profile scraping",
				"Proxy support",
				"Rate limiting protection",
			},
			"limits": map[string]interface{}{
				"maxUsernamesPerRequest": h.limits.MaxUsernamesPerRequest,
				"maxPostsPerProfile":     h.limits.MaxPostsPerProfile,
				"defaultDelayMs":         h.limits.DefaultDelay.Milliseconds(),
				"maxDelayMs":             h.limits.MaxDelay.Milliseconds(),
			},
			"supportedData": []string{
				"Basic profile info",
				"Follower/following counts",
				"Recent posts with engagement",
				"Profile verification status",
				"Business account info",
				"Hashtags and mentions",
				"Post timestamps and locations",
			},
		},
	})
}
