package instagram

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

const (
	defaultAPIBaseURL = "https://i.instagram.com"
	defaultWebBaseURL = "https://www.instagram.com"
	webProfilePath    = "/api/v1/users/web_profile_info/"
)

// WebProfileSource queries Instagram's web_profile_info endpoint directly,
// posing as the web client via the X-IG-App-ID header.
type WebProfileSource struct {
	Client  *http.Client
	BaseURL string
	AppID   string
}

func (s *WebProfileSource) Name() string { return "web_profile_info" }

func (s *WebProfileSource) Fetch(ctx context.Context, handle string) (*model.Profile, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultAPIBaseURL
	}
	endpoint := base + webProfilePath + "?" + url.Values{"username": {handle}}.Encode()

	h := http.Header{}
	h.Set("User-Agent", randomUserAgent())
	h.Set("Accept", "*/*")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("X-IG-App-ID", s.AppID)
	h.Set("X-IG-WWW-Claim", "0")
	h.Set("X-Requested-With", "XMLHttpRequest")
	h.Set("Referer", defaultWebBaseURL+"/")
	h.Set("Origin", defaultWebBaseURL)

	body, err := get(ctx, s.Client, s.Name(), endpoint, h)
	if err != nil {
		return nil, err
	}
	return parseProfileJSON(body, handle)
}

// ScrapeDoSource fetches the same web_profile_info document through the
// Scrape.do proxy API. It is skipped when no token is configured.
type ScrapeDoSource struct {
	Client  *http.Client
	BaseURL string
	Token   string
}

func (s *ScrapeDoSource) Name() string { return "scrapedo" }

func (s *ScrapeDoSource) Fetch(ctx context.Context, handle string) (*model.Profile, error) {
	if s.Token == "" {
		return nil, ErrNotConfigured
	}
	base := s.BaseURL
	if base == "" {
		base = "https://api.scrape.do"
	}

	target := defaultWebBaseURL + webProfilePath + "?" + url.Values{"username": {handle}}.Encode()
	endpoint := base + "/?" + url.Values{"token": {s.Token}, "url": {target}}.Encode()

	h := http.Header{}
	h.Set("User-Agent", userAgents[0])
	h.Set("Accept", "application/json")

	body, err := get(ctx, s.Client, s.Name(), endpoint, h)
	if err != nil {
		return nil, err
	}
	return parseProfileJSON(body, handle)
}
