package instagram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/cache"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

const DefaultSourceTimeout = 30 * time.Second

// Fetcher resolves a handle to a Profile: cache first, then each source in
// order, then fabricated data. Identical concurrent lookups are not coalesced.
type Fetcher struct {
	cache      cache.ProfileCache
	sources    []Source
	fabricator *Fabricator
	timeout    time.Duration
	imageProxy string
	now        func() time.Time
}

type FetcherConfig struct {
	// SourceTimeout bounds each individual source attempt.
	SourceTimeout time.Duration
	// ImageProxyURL, when set, wraps upstream picture URLs so browsers can load them.
	ImageProxyURL string
	Now           func() time.Time
}

func NewFetcher(c cache.ProfileCache, sources []Source, fab *Fabricator, cfg FetcherConfig) *Fetcher {
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = DefaultSourceTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if fab == nil {
		fab = NewFabricator(nil)
	}
	return &Fetcher{
		cache:      c,
		sources:    sources,
		fabricator: fab,
		timeout:    cfg.SourceTimeout,
		imageProxy: cfg.ImageProxyURL,
		now:        cfg.Now,
	}
}

// Fetch always returns a complete profile. Mock data is flagged with IsMockData.
// The chain ignores caller cancellation; each source is still bounded by the
// per-source timeout, so an abandoned request cannot cache a fabricated profile.
func (f *Fetcher) Fetch(ctx context.Context, handle string) *model.Profile {
	ctx = context.WithoutCancel(ctx)
	handle = strings.ToLower(handle)
	log := observability.GetLogger(ctx).With(zap.String("username", handle))

	if p := f.lookup(ctx, handle, true); p != nil {
		log.Debug("profile served from cache")
		return p
	}

	p, err := f.runChain(ctx, handle)
	if err != nil {
		log.Warn("all profile sources failed, using mock data", zap.Error(err))
		p = f.fabricator.Profile(handle)
		observability.ProfilesFabricated.Inc()
	}

	f.finalize(p, handle)
	f.store(ctx, handle, p)
	return p
}

// FetchLive is Fetch without fabrication: cached mock data is ignored and a
// failed chain is reported as model.ErrProfileNotFound, model.ErrNoProfileData
// or model.ErrSourcesExhausted.
func (f *Fetcher) FetchLive(ctx context.Context, handle string) (*model.Profile, error) {
	handle = strings.ToLower(handle)

	if p := f.lookup(ctx, handle, false); p != nil {
		return p, nil
	}

	p, err := f.runChain(ctx, handle)
	if err != nil {
		return nil, err
	}
	f.finalize(p, handle)
	f.store(ctx, handle, p)
	return p, nil
}

// SourceNames lists the configured chain in order.
func (f *Fetcher) SourceNames() []string {
	names := make([]string, 0, len(f.sources))
	for _, s := range f.sources {
		names = append(names, s.Name())
	}
	return names
}

func (f *Fetcher) lookup(ctx context.Context, handle string, allowMock bool) *model.Profile {
	if f.cache == nil {
		return nil
	}
	p, err := f.cache.Get(ctx, handle)
	if err != nil {
		observability.GetLogger(ctx).Warn("profile cache read failed",
			zap.String("username", handle), zap.Error(err))
		return nil
	}
	if p == nil || (!allowMock && p.IsMockData) {
		return nil
	}
	return p
}

// store keys the entry by the requested handle, whatever username the upstream reported.
func (f *Fetcher) store(ctx context.Context, handle string, p *model.Profile) {
	if f.cache == nil {
		return
	}
	if err := f.cache.Set(ctx, handle, p); err != nil {
		observability.GetLogger(ctx).Warn("profile cache write failed",
			zap.String("username", handle), zap.Error(err))
	}
}

func (f *Fetcher) runChain(ctx context.Context, handle string) (*model.Profile, error) {
	var errs []error
	for _, src := range f.sources {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		p, err := f.attempt(ctx, src, handle)
		if err == nil {
			return p, nil
		}
		errs = append(errs, err)
	}
	return nil, classify(errs)
}

func (f *Fetcher) attempt(ctx context.Context, src Source, handle string) (*model.Profile, error) {
	log := observability.GetLogger(ctx).With(
		zap.String("source", src.Name()),
		zap.String("username", handle),
	)

	sctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	p, err := src.Fetch(sctx, handle)
	observability.ProfileFetchDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, ErrNotConfigured):
		observability.ProfileFetchAttempts.WithLabelValues(src.Name(), "skipped").Inc()
		log.Debug("profile source skipped, not configured")
		return nil, err
	case err != nil:
		observability.ProfileFetchAttempts.WithLabelValues(src.Name(), "error").Inc()
		log.Warn("profile source failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	case p == nil:
		observability.ProfileFetchAttempts.WithLabelValues(src.Name(), "error").Inc()
		return nil, fmt.Errorf("%s: %w", src.Name(), ErrUnexpectedShape)
	}

	observability.ProfileFetchAttempts.WithLabelValues(src.Name(), "success").Inc()
	log.Info("profile fetched",
		zap.Int64("followers", p.FollowersCount),
		zap.Duration("took", time.Since(start)),
	)
	p.Source = src.Name()
	return p, nil
}

func classify(errs []error) error {
	joined := errors.Join(errs...)

	var notFound, shape bool
	for _, err := range errs {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			notFound = true
		}
		if errors.Is(err, ErrUnexpectedShape) {
			shape = true
		}
	}

	switch {
	case notFound:
		return fmt.Errorf("%w: %w", model.ErrProfileNotFound, joined)
	case shape:
		return fmt.Errorf("%w: %w", model.ErrNoProfileData, joined)
	case joined == nil:
		return model.ErrSourcesExhausted
	default:
		return fmt.Errorf("%w: %w", model.ErrSourcesExhausted, joined)
	}
}

// finalize fills every field a caller relies on.
func (f *Fetcher) finalize(p *model.Profile, handle string) {
	if p.Username == "" {
		p.Username = handle
	}
	p.Username = strings.ToLower(p.Username)
	if p.FullName == "" {
		p.FullName = capitalize(handle)
	}
	if p.ProfilePicURL == "" {
		p.ProfilePicURL = AvatarURL(handle)
	} else if f.imageProxy != "" && !strings.HasPrefix(p.ProfilePicURL, f.imageProxy) {
		p.ProfilePicURL = proxiedImage(f.imageProxy, p.ProfilePicURL)
	}
	p.FollowersCount = max(p.FollowersCount, 0)
	p.FollowingCount = max(p.FollowingCount, 0)
	p.PostsCount = max(p.PostsCount, 0)
	if p.RecentPosts == nil {
		p.RecentPosts = []model.Post{}
	}
	p.ScrapedAt = f.now().UTC()
}

// AvatarURL is the generated placeholder used when no picture is known.
func AvatarURL(handle string) string {
	return "https://ui-avatars.com/api/?" + url.Values{
		"name":       {handle},
		"background": {"random"},
		"color":      {"fff"},
		"size":       {"200"},
	}.Encode()
}

func proxiedImage(proxy, src string) string {
	return proxy + "?" + url.Values{
		"url": {src},
		"w":   {"200"},
		"h":   {"200"},
		"fit": {"cover"},
	}.Encode()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
