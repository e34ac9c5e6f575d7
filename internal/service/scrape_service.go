package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/instagram"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

// HealthProbeHandle is scraped by the health check; it always exists.
const HealthProbeHandle = "instagram"

type LiveFetcher interface {
	FetchLive(ctx context.Context, handle string) (*model.Profile, error)
	SourceNames() []string
}

// ScrapeService exposes the live fetch chain without fabricated fallbacks.
type ScrapeService struct {
	Fetcher      LiveFetcher
	MaxBatch     int
	DefaultDelay time.Duration
	MaxDelay     time.Duration
}

type BatchResult struct {
	Username string         `json:"username"`
	Success  bool           `json:"success"`
	Data     *model.Profile `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type BatchSummary struct {
	Total       int    `json:"total"`
	Successful  int    `json:"successful"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"successRate"`
}

func validHandle(raw string) (string, error) {
	username := model.NormalizeUsername(raw)
	if username == "" {
		return "", model.ErrMissingUsername
	}
	if !model.ValidHandle(username) {
		return "", model.ErrBadHandleFormat
	}
	return username, nil
}

func (s *ScrapeService) Profile(ctx context.Context, raw string) (*model.Profile, model.ProfileStats, error) {
	username, err := validHandle(raw)
	if err != nil {
		return nil, model.ProfileStats{}, err
	}
	p, err := s.Fetcher.FetchLive(ctx, username)
	if err != nil {
		return nil, model.ProfileStats{}, err
	}
	return p, instagram.ComputeStats(p), nil
}

func (s *ScrapeService) Stats(ctx context.Context, raw string) (model.ProfileStats, error) {
	_, stats, err := s.Profile(ctx, raw)
	return stats, err
}

// Batch scrapes each username in order, spacing the requests by delay.
// A zero delay uses the default; delays above the maximum are clamped.
func (s *ScrapeService) Batch(ctx context.Context, usernames []string, delay time.Duration) ([]BatchResult, BatchSummary, error) {
	if len(usernames) == 0 {
		return nil, BatchSummary{}, model.ErrNoUsernames
	}
	if s.MaxBatch > 0 && len(usernames) > s.MaxBatch {
		return nil, BatchSummary{}, model.ErrTooManyUsernames
	}

	handles := make([]string, len(usernames))
	for i, raw := range usernames {
		h, err := validHandle(raw)
		if err != nil {
			return nil, BatchSummary{}, err
		}
		handles[i] = h
	}

	limiter := rate.NewLimiter(rate.Every(s.clampDelay(delay)), 1)
	log := observability.GetLogger(ctx)

	results := make([]BatchResult, 0, len(handles))
	for i, h := range handles {
		if err := limiter.Wait(ctx); err != nil {
			results = append(results, BatchResult{Username: h, Error: err.Error()})
			continue
		}

		log.Info("batch scrape", zap.String("username", h), zap.Int("position", i+1), zap.Int("total", len(handles)))
		p, err := s.Fetcher.FetchLive(ctx, h)
		if err != nil {
			results = append(results, BatchResult{Username: h, Error: err.Error()})
			continue
		}
		results = append(results, BatchResult{Username: h, Success: true, Data: p})
	}

	return results, summarize(results), nil
}

func (s *ScrapeService) clampDelay(d time.Duration) time.Duration {
	if d <= 0 {
		d = s.DefaultDelay
	}
	if s.MaxDelay > 0 && d > s.MaxDelay {
		d = s.MaxDelay
	}
	return d
}

func summarize(results []BatchResult) BatchSummary {
	sum := BatchSummary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			sum.Successful++
		}
	}
	sum.Failed = sum.Total - sum.Successful
	rateVal := 0.0
	if sum.Total > 0 {
		rateVal = float64(sum.Successful) / float64(sum.Total) * 100
	}
	sum.SuccessRate = strconv.FormatFloat(rateVal, 'f', 1, 64)
	return sum
}

// Health scrapes a well-known account to prove the chain works end to end.
func (s *ScrapeService) Health(ctx context.Context) (*model.Profile, error) {
	return s.Fetcher.FetchLive(ctx, HealthProbeHandle)
}

func (s *ScrapeService) Sources() []string {
	return s.Fetcher.SourceNames()
}
