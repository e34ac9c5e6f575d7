package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/transport"
)

type RoastAPI interface {
	Roast(ctx context.Context, rawUsername string) (*model.RoastResult, error)
	UserRoasts(ctx context.Context, rawUsername string) (*model.UserRoasts, error)
	Stats(ctx context.Context) (model.Totals, error)
}

type RoastHandler struct {
	svc RoastAPI
}

func NewRoastHandler(svc RoastAPI) *RoastHandler {
	return &RoastHandler{svc: svc}
}

type roastProfile struct {
	Username       string    `json:"username"`
	FullName       string    `json:"fullName"`
	Bio            *string   `json:"bio"`
	FollowersCount int64     `json:"followersCount"`
	FollowingCount int64     `json:"followingCount"`
	PostsCount     int64     `json:"postsCount"`
	ProfilePicURL  string    `json:"profilePicUrl"`
	IsPrivate      bool      `json:"isPrivate"`
	IsVerified     bool      `json:"isVerified"`
	ScrapedAt      time.Time `json:"scrapedAt"`
	IsMockData     bool      `json:"isMockData,omitempty"`
}

type roastStats struct {
	UserRoastCount int64 `json:"userRoastCount"`
	TotalUsers     int64 `json:"totalUsers"`
	TotalRoasts    int64 `json:"totalRoasts"`
}

type roastData struct {
	User         *model.User   `json:"user"`
	Profile      roastProfile  `json:"profile"`
	Roast        *model.Roast  `json:"roast"`
	Stats        roastStats    `json:"stats"`
	RecentRoasts []model.Roast `json:"recentRoasts"`
}

type userRoastsData struct {
	User       *model.User   `json:"user"`
	RoastCount int64         `json:"roastCount"`
	Roasts     []model.Roast `json:"roasts"`
}

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

func nonNil(roasts []model.Roast) []model.Roast {
	if roasts == nil {
		return []model.Roast{}
	}
	return roasts
}

// Create handles POST /api/roasts.
func (h *RoastHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username interface{} `json:"username"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	username, ok := req.Username.(string)
	if !ok {
		transport.Error(w, r, model.ErrInvalidUsername)
		return
	}

	res, err := h.svc.Roast(r.Context(), username)
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	p := res.Profile
	transport.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: roastData{
			User: res.User,
			Profile: roastProfile{
				Username:       p.Username,
				FullName:       p.FullName,
				Bio:            p.Bio,
				FollowersCount: p.FollowersCount,
				FollowingCount: p.FollowingCount,
				PostsCount:     p.PostsCount,
				ProfilePicURL:  p.ProfilePicURL,
				IsPrivate:      p.IsPrivate,
				IsVerified:     p.IsVerified,
				ScrapedAt:      p.ScrapedAt,
				IsMockData:     p.IsMockData,
			},
			Roast: res.Roast,
			Stats: roastStats{
				UserRoastCount: res.RoastCount,
				TotalUsers:     res.Totals.TotalUsers,
				TotalRoasts:    res.Totals.TotalRoasts,
			},
			RecentRoasts: nonNil(res.RecentRoasts),
		},
		Message: fmt.Sprintf("🔥 Successfully roasted @%s!", res.User.Username),
	})
}

// Stats handles GET /api/roasts/stats.
func (h *RoastHandler) Stats(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.Stats(r.Context())
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data:    totals,
		Message: "📊 Statistics retrieved successfully",
	})
}

// UserRoasts handles GET /api/roasts/user/{username}.
func (h *RoastHandler) UserRoasts(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.UserRoasts(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		transport.Error(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: userRoastsData{
			User:       res.User,
			RoastCount: res.RoastCount,
			Roasts:     nonNil(res.Roasts),
		},
		Message: fmt.Sprintf("📝 Found %d roasts for @%s", res.RoastCount, res.User.Username),
	})
}
