package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/observability"
)

var errScrapeTimedOut = errors.New("scraping-bot: result not ready")

// ScrapingBotSource submits an asynchronous job to scraping-bot.io and polls
// for its result. The caller's deadline bounds the polling.
type ScrapingBotSource struct {
	Client       *http.Client
	BaseURL      string
	Username     string
	APIKey       string
	PollInterval time.Duration
	MaxPolls     int
}

func (s *ScrapingBotSource) Name() string { return "scrapingbot" }

type botRecord struct {
	ID               flexString `json:"id"`
	URL              string     `json:"url"`
	ProfileName      string     `json:"profile_name"`
	Biography        string     `json:"biography"`
	ProfileImageLink string     `json:"profile_image_link"`
	IsVerified       bool       `json:"is_verified"`
	ExternalURL      string     `json:"external_url"`
	Followers        flexInt    `json:"followers"`
	Following        flexInt    `json:"following"`
	PostsCount       flexInt    `json:"posts_count"`
	ImageURL         string     `json:"image_url"`
	ThumbnailSrc     string     `json:"thumbnail_src"`
	MediaType        string     `json:"media_type"`
	VideoURL         string     `json:"video_url"`
	Caption          string     `json:"caption"`
	Likes            flexInt    `json:"likes"`
	Comments         flexInt    `json:"comments"`
	Datetime         string     `json:"datetime"`
	VideoViewCount   flexInt    `json:"video_view_count"`
}

func (s *ScrapingBotSource) Fetch(ctx context.Context, handle string) (*model.Profile, error) {
	if s.Username == "" || s.APIKey == "" {
		return nil, ErrNotConfigured
	}

	id, err := s.submit(ctx, handle)
	if err != nil {
		return nil, err
	}

	interval := s.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	maxPolls := s.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 12
	}

	log := observability.GetLogger(ctx)
	for attempt := 1; attempt <= maxPolls; attempt++ {
		if err := sleepCtx(ctx, interval); err != nil {
			return nil, err
		}

		records, pending, err := s.poll(ctx, id)
		if err != nil {
			return nil, err
		}
		if pending {
			log.Debug("scraping-bot result pending",
				zap.String("username", handle),
				zap.Int("attempt", attempt),
			)
			continue
		}
		return botProfile(records, handle)
	}
	return nil, errScrapeTimedOut
}

func (s *ScrapingBotSource) baseURL() string {
	if s.BaseURL == "" {
		return "http://api.scraping-bot.io"
	}
	return s.BaseURL
}

func (s *ScrapingBotSource) submit(ctx context.Context, handle string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"scraper":      "instagramProfile",
		"account":      handle,
		"posts_number": "12",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL()+"/scrape/data-scraper", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.Username, s.APIKey)

	body, err := do(s.Client, s.Name(), req)
	if err != nil {
		return "", err
	}

	var resp struct {
		ResponseID string `json:"responseId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.ResponseID == "" {
		return "", fmt.Errorf("%w: missing responseId", ErrUnexpectedShape)
	}
	return resp.ResponseID, nil
}

// poll returns the records once ready, or pending=true while the job runs.
func (s *ScrapingBotSource) poll(ctx context.Context, id string) ([]botRecord, bool, error) {
	q := url.Values{"scraper": {"instagramProfile"}, "responseId": {id}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL()+"/scrape/data-scraper-response?"+q.Encode(), nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(s.Username, s.APIKey)

	body, err := do(s.Client, s.Name(), req)
	if err != nil {
		return nil, false, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, true, nil
	}
	if trimmed[0] == '{' {
		var status struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(trimmed, &status); err == nil && status.Status == "pending" {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("%w: scraping-bot returned an object", ErrUnexpectedShape)
	}

	var records []botRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return records, false, nil
}

// botProfile reads the account fields from the first record; every record is a post.
func botProfile(records []botRecord, handle string) (*model.Profile, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrUnexpectedShape)
	}
	first := records[0]

	p := &model.Profile{
		Username:       strings.ToLower(handle),
		FullName:       first.ProfileName,
		Bio:            optional(first.Biography),
		FollowersCount: int64(first.Followers),
		FollowingCount: int64(first.Following),
		PostsCount:     int64(first.PostsCount),
		ProfilePicURL:  first.ProfileImageLink,
		IsVerified:     first.IsVerified,
		ExternalURL:    optional(first.ExternalURL),
	}

	for i, r := range records {
		if i == MaxRecentPosts {
			break
		}
		post := model.Post{
			ID:             string(r.ID),
			Shortcode:      shortcodeFromURL(r.URL),
			DisplayURL:     r.ImageURL,
			ThumbnailURL:   r.ThumbnailSrc,
			IsVideo:        r.MediaType == "Reels" || r.VideoURL != "",
			VideoURL:       r.VideoURL,
			Caption:        r.Caption,
			LikesCount:     int64(r.Likes),
			CommentsCount:  int64(r.Comments),
			Hashtags:       extractHashtags(r.Caption),
			Mentions:       extractMentions(r.Caption),
			VideoViewCount: int64(r.VideoViewCount),
			MediaType:      firstNonEmpty(r.MediaType, "Image"),
		}
		if ts, err := time.Parse(time.RFC3339, r.Datetime); err == nil {
			post.Timestamp = ts.UTC()
		}
		p.RecentPosts = append(p.RecentPosts, post)
	}
	return p, nil
}

func shortcodeFromURL(u string) string {
	_, after, ok := strings.Cut(u, "/p/")
	if !ok {
		return ""
	}
	code, _, _ := strings.Cut(after, "/")
	return code
}
