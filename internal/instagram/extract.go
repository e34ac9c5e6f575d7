package instagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

// MaxRecentPosts caps how many posts a profile carries.
const MaxRecentPosts = 12

// userExtractor tries one known layout of an upstream document and returns the
// embedded user object when the layout matches.
type userExtractor struct {
	name string
	find func(root any) (map[string]any, bool)
}

// First match wins, so the more specific layouts come first.
var userExtractors = []userExtractor{
	{"data.user", at("data", "user")},
	{"user", at("user")},
	{"status_ok.data", okData},
	{"graphql.user", at("graphql", "user")},
	{"entry_data.ProfilePage", at("entry_data", "ProfilePage", 0, "graphql", "user")},
	{"props.pageProps.user", at("props", "pageProps", "user")},
	{"ld_json.author", ldAuthor},
}

// parseProfileJSON maps any known JSON profile document onto a Profile.
func parseProfileJSON(body []byte, handle string) (*model.Profile, error) {
	root, err := decodeAny(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return profileFromDocument(root, handle)
}

func profileFromDocument(root any, handle string) (*model.Profile, error) {
	for _, ex := range userExtractors {
		raw, ok := ex.find(root)
		if !ok {
			continue
		}
		u, err := decodeUser(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnexpectedShape, ex.name, err)
		}
		p := u.toProfile(handle)
		if items, ok := dig(root, "items"); ok {
			if posts := feedPosts(items); len(posts) > 0 {
				p.RecentPosts = posts
			}
		}
		return p, nil
	}
	return nil, ErrUnexpectedShape
}

func decodeAny(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// dig walks maps by string key and slices by int index.
func dig(v any, path ...any) (any, bool) {
	for _, step := range path {
		switch k := step.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				return nil, false
			}
			if v, ok = m[k]; !ok || v == nil {
				return nil, false
			}
		case int:
			s, ok := v.([]any)
			if !ok || k < 0 || k >= len(s) {
				return nil, false
			}
			v = s[k]
		default:
			return nil, false
		}
	}
	return v, true
}

func at(path ...any) func(any) (map[string]any, bool) {
	return func(root any) (map[string]any, bool) {
		v, ok := dig(root, path...)
		if !ok {
			return nil, false
		}
		m, ok := v.(map[string]any)
		return m, ok && looksLikeUser(m)
	}
}

func okData(root any) (map[string]any, bool) {
	status, _ := dig(root, "status")
	if s, _ := status.(string); s != "ok" {
		return nil, false
	}
	return at("data")(root)
}

// ldAuthor reads schema.org ProfilePage markup and rewrites it into the
// field names the other layouts use.
func ldAuthor(root any) (map[string]any, bool) {
	author, ok := dig(root, "mainEntityofPage", "author")
	if !ok {
		author, ok = dig(root, "author")
	}
	if !ok {
		return nil, false
	}
	a, ok := author.(map[string]any)
	if !ok {
		return nil, false
	}

	u := map[string]any{}
	if s, ok := a["alternateName"].(string); ok {
		u["username"] = strings.TrimPrefix(s, "@")
	}
	if s, ok := a["name"].(string); ok {
		u["full_name"] = s
	}
	if s, ok := a["description"].(string); ok {
		u["biography"] = s
	}
	if s, ok := a["image"].(string); ok {
		u["profile_pic_url"] = s
	}
	if s, ok := a["url"].(string); ok && !strings.Contains(s, "instagram.com") {
		u["external_url"] = s
	}

	stats, ok := a["interactionStatistic"]
	if !ok {
		stats, _ = dig(root, "interactionStatistic")
	}
	if list, ok := stats.([]any); ok {
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			kind, _ := m["interactionType"].(string)
			n := ParseCount(fmt.Sprint(m["userInteractionCount"]))
			switch {
			case strings.HasSuffix(kind, "FollowAction"):
				u["follower_count"] = n
			case strings.HasSuffix(kind, "WriteAction"):
				u["media_count"] = n
			}
		}
	}

	return u, looksLikeUser(u)
}

func looksLikeUser(m map[string]any) bool {
	for _, k := range []string{"username", "full_name", "follower_count", "edge_followed_by"} {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func decodeUser(m map[string]any) (*igUser, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var u igUser
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// flexInt accepts JSON numbers, numeric strings and abbreviated counts like "2.5K".
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = flexInt(int64(v))
		return nil
	}
	*f = flexInt(ParseCount(s))
	return nil
}

// flexString accepts JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = flexString(b)
	return nil
}

type edgeCount struct {
	Count flexInt `json:"count"`
}

type igUser struct {
	ID                    flexString `json:"id"`
	Username              string     `json:"username"`
	FullName              string     `json:"full_name"`
	Biography             string     `json:"biography"`
	ProfilePicURL         string     `json:"profile_pic_url"`
	ProfilePicURLHD       string     `json:"profile_pic_url_hd"`
	ProfilePicURLLarge    string     `json:"profile_pic_url_large"`
	ProfilePicURLMedium   string     `json:"profile_pic_url_medium"`
	IsPrivate             bool       `json:"is_private"`
	IsVerified            bool       `json:"is_verified"`
	IsBusinessAccount     bool       `json:"is_business_account"`
	IsProfessionalAccount bool       `json:"is_professional_account"`
	CategoryName          string     `json:"category_name"`
	BusinessCategoryName  string     `json:"business_category_name"`
	ExternalURL           string     `json:"external_url"`

	FollowerCount  flexInt `json:"follower_count"`
	FollowingCount flexInt `json:"following_count"`
	MediaCount     flexInt `json:"media_count"`

	EdgeFollowedBy edgeCount `json:"edge_followed_by"`
	EdgeFollow     edgeCount `json:"edge_follow"`
	Timeline       struct {
		Count flexInt `json:"count"`
		Edges []struct {
			Node mediaNode `json:"node"`
		} `json:"edges"`
	} `json:"edge_owner_to_timeline_media"`
}

type mediaNode struct {
	ID             flexString `json:"id"`
	Shortcode      string     `json:"shortcode"`
	DisplayURL     string     `json:"display_url"`
	ThumbnailSrc   string     `json:"thumbnail_src"`
	IsVideo        bool       `json:"is_video"`
	VideoURL       string     `json:"video_url"`
	VideoViewCount flexInt    `json:"video_view_count"`
	TakenAt        int64      `json:"taken_at_timestamp"`
	Typename       string     `json:"__typename"`
	Location       *struct {
		Name string `json:"name"`
	} `json:"location"`
	Caption struct {
		Edges []struct {
			Node struct {
				Text string `json:"text"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_media_to_caption"`
	PreviewLikes edgeCount `json:"edge_media_preview_like"`
	LikedBy      edgeCount `json:"edge_liked_by"`
	Comments     edgeCount `json:"edge_media_to_comment"`
}

func firstNonZero(vals ...flexInt) int64 {
	for _, v := range vals {
		if v != 0 {
			return int64(v)
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// toProfile copies what the upstream knows; gaps are filled by the fetcher.
func (u *igUser) toProfile(handle string) *model.Profile {
	p := &model.Profile{
		Username:       strings.ToLower(firstNonEmpty(u.Username, handle)),
		FullName:       u.FullName,
		Bio:            optional(u.Biography),
		FollowersCount: firstNonZero(u.FollowerCount, u.EdgeFollowedBy.Count),
		FollowingCount: firstNonZero(u.FollowingCount, u.EdgeFollow.Count),
		PostsCount:     firstNonZero(u.MediaCount, u.Timeline.Count),
		ProfilePicURL: firstNonEmpty(
			u.ProfilePicURLHD,
			u.ProfilePicURLLarge,
			u.ProfilePicURLMedium,
			u.ProfilePicURL,
		),
		IsPrivate:             u.IsPrivate,
		IsVerified:            u.IsVerified,
		ExternalURL:           optional(u.ExternalURL),
		IsBusinessAccount:     u.IsBusinessAccount,
		IsProfessionalAccount: u.IsProfessionalAccount,
		CategoryName:          firstNonEmpty(u.CategoryName, u.BusinessCategoryName),
	}

	for i, e := range u.Timeline.Edges {
		if i == MaxRecentPosts {
			break
		}
		p.RecentPosts = append(p.RecentPosts, e.Node.toPost())
	}
	return p
}

func (n *mediaNode) toPost() model.Post {
	var caption string
	if len(n.Caption.Edges) > 0 {
		caption = n.Caption.Edges[0].Node.Text
	}
	post := model.Post{
		ID:             string(n.ID),
		Shortcode:      n.Shortcode,
		DisplayURL:     n.DisplayURL,
		ThumbnailURL:   n.ThumbnailSrc,
		IsVideo:        n.IsVideo,
		VideoURL:       n.VideoURL,
		Caption:        caption,
		LikesCount:     firstNonZero(n.PreviewLikes.Count, n.LikedBy.Count),
		CommentsCount:  int64(n.Comments.Count),
		Hashtags:       extractHashtags(caption),
		Mentions:       extractMentions(caption),
		VideoViewCount: int64(n.VideoViewCount),
		MediaType:      mediaTypeName(n.Typename, n.IsVideo),
	}
	if n.TakenAt > 0 {
		post.Timestamp = time.Unix(n.TakenAt, 0).UTC()
	}
	if n.Location != nil {
		post.Location = n.Location.Name
	}
	return post
}

func mediaTypeName(typename string, isVideo bool) string {
	switch {
	case typename == "GraphSidecar":
		return "Carousel"
	case isVideo || typename == "GraphVideo":
		return "Video"
	default:
		return "Image"
	}
}

// feedItem is one entry of the v1 "items" feed that accompanies some API answers.
type feedItem struct {
	ID             flexString `json:"id"`
	Code           string     `json:"code"`
	MediaType      int        `json:"media_type"`
	ImageVersions2 struct {
		Candidates []struct {
			URL string `json:"url"`
		} `json:"candidates"`
	} `json:"image_versions2"`
	VideoVersions []struct {
		URL string `json:"url"`
	} `json:"video_versions"`
	Caption *struct {
		Text string `json:"text"`
	} `json:"caption"`
	LikeCount    flexInt `json:"like_count"`
	CommentCount flexInt `json:"comment_count"`
	ViewCount    flexInt `json:"view_count"`
	TakenAt      int64   `json:"taken_at"`
	Location     *struct {
		Name string `json:"name"`
	} `json:"location"`
}

func feedPosts(items any) []model.Post {
	b, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	var feed []feedItem
	if err := json.Unmarshal(b, &feed); err != nil {
		return nil
	}

	var posts []model.Post
	for i, it := range feed {
		if i == MaxRecentPosts {
			break
		}
		var caption string
		if it.Caption != nil {
			caption = it.Caption.Text
		}
		post := model.Post{
			ID:             string(it.ID),
			Shortcode:      it.Code,
			IsVideo:        it.MediaType == 2,
			Caption:        caption,
			LikesCount:     int64(it.LikeCount),
			CommentsCount:  int64(it.CommentCount),
			Hashtags:       extractHashtags(caption),
			Mentions:       extractMentions(caption),
			VideoViewCount: int64(it.ViewCount),
			MediaType:      feedMediaType(it.MediaType),
		}
		if c := it.ImageVersions2.Candidates; len(c) > 0 {
			post.DisplayURL = c[0].URL
			if len(c) > 1 {
				post.ThumbnailURL = c[1].URL
			}
		}
		if len(it.VideoVersions) > 0 {
			post.VideoURL = it.VideoVersions[0].URL
		}
		if it.TakenAt > 0 {
			post.Timestamp = time.Unix(it.TakenAt, 0).UTC()
		}
		if it.Location != nil {
			post.Location = it.Location.Name
		}
		posts = append(posts, post)
	}
	return posts
}

func feedMediaType(t int) string {
	switch t {
	case 2:
		return "Video"
	case 8:
		return "Carousel"
	default:
		return "Image"
	}
}
