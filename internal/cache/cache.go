package cache

import (
	"context"
	"strings"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

// ProfileCache stores fetched profiles by the lowercased handle they were
// requested under. Get returns (nil, nil) on a miss.
type ProfileCache interface {
	Get(ctx context.Context, handle string) (*model.Profile, error)
	Set(ctx context.Context, handle string, p *model.Profile) error
}

func key(handle string) string { return strings.ToLower(handle) }
