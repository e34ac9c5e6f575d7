package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

const (
	recentRoastsLimit = 3
	userRoastsLimit   = 10
)

type ProfileFetcher interface {
	Fetch(ctx context.Context, handle string) *model.Profile
}

type Roaster interface {
	Generate(p *model.Profile) string
}

// Store is the persistence gateway.
type Store interface {
	GetOrCreateUser(ctx context.Context, username string) (*model.User, error)
	CreateRoast(ctx context.Context, user *model.User, text string, isMock bool) (*model.Roast, error)
	CountRoasts(ctx context.Context, userID string) (int64, error)
	RecentRoasts(ctx context.Context, userID string, limit int) ([]model.Roast, error)
	Totals(ctx context.Context) (model.Totals, error)
}

type RoastService struct {
	Fetcher ProfileFetcher
	Roaster Roaster
	Store   Store
}

// Roast fetches (or fabricates) the profile, generates a roast, records it and
// returns the dashboard payload. Only validation and persistence errors surface.
func (s *RoastService) Roast(ctx context.Context, rawUsername string) (*model.RoastResult, error) {
	username := model.NormalizeUsername(rawUsername)
	if username == "" {
		return nil, model.ErrEmptyUsername
	}

	log := observability.GetLogger(ctx).With(zap.String("username", username))

	profile := s.Fetcher.Fetch(ctx, username)
	text := s.Roaster.Generate(profile)

	user, err := s.Store.GetOrCreateUser(ctx, username)
	if err != nil {
		log.Error("failed to load user", zap.Error(err))
		return nil, err
	}

	roast, err := s.Store.CreateRoast(ctx, user, text, profile.IsMockData)
	if err != nil {
		log.Error("failed to save roast", zap.Error(err))
		return nil, err
	}
	observability.RoastsCreated.Inc()

	count, err := s.Store.CountRoasts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.Store.RecentRoasts(ctx, user.ID, recentRoastsLimit)
	if err != nil {
		return nil, err
	}
	totals, err := s.Store.Totals(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("roast created",
		zap.String("roast_id", roast.ID),
		zap.Bool("mock_data", profile.IsMockData),
		zap.Int64("user_roast_count", count),
	)

	return &model.RoastResult{
		User:         user,
		Profile:      profile,
		Roast:        roast,
		RoastCount:   count,
		Totals:       totals,
		RecentRoasts: recent,
	}, nil
}

// UserRoasts returns a user's roast history. The user row is created when missing.
func (s *RoastService) UserRoasts(ctx context.Context, rawUsername string) (*model.UserRoasts, error) {
	username := model.NormalizeUsername(rawUsername)
	if username == "" {
		return nil, model.ErrMissingUsername
	}

	user, err := s.Store.GetOrCreateUser(ctx, username)
	if err != nil {
		return nil, err
	}
	count, err := s.Store.CountRoasts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	roasts, err := s.Store.RecentRoasts(ctx, user.ID, userRoastsLimit)
	if err != nil {
		return nil, err
	}

	return &model.UserRoasts{User: user, RoastCount: count, Roasts: roasts}, nil
}

func (s *RoastService) Stats(ctx context.Context) (model.Totals, error) {
	return s.Store.Totals(ctx)
}
