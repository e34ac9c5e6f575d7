package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

// Redis is a ProfileCache shared between instances. Expiry is left to Redis.
type Redis struct {
	R   *redis.Client
	TTL time.Duration
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func redisKey(handle string) string { return "profile:" + key(handle) }

func (c *Redis) Get(ctx context.Context, handle string) (*model.Profile, error) {
	b, err := c.R.Get(ctx, redisKey(handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ProfileCacheLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		observability.ProfileCacheLookups.WithLabelValues("error").Inc()
		return nil, err
	}

	var p model.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		observability.ProfileCacheLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.ProfileCacheLookups.WithLabelValues("hit").Inc()
	return &p, nil
}

func (c *Redis) Set(ctx context.Context, handle string, p *model.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, redisKey(handle), b, c.TTL).Err()
}
