package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

// HTMLSource downloads the public profile page and reads whatever profile
// data the markup exposes.
type HTMLSource struct {
	Client  *http.Client
	BaseURL string
}

func (s *HTMLSource) Name() string { return "html" }

func (s *HTMLSource) Fetch(ctx context.Context, handle string) (*model.Profile, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultWebBaseURL
	}

	h := http.Header{}
	h.Set("User-Agent", randomUserAgent())
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Cache-Control", "no-cache")
	h.Set("Pragma", "no-cache")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Upgrade-Insecure-Requests", "1")

	body, err := get(ctx, s.Client, s.Name(), base+"/"+url.PathEscape(handle)+"/", h)
	if err != nil {
		return nil, err
	}
	return parseProfileHTML(body, handle)
}

type htmlExtractor struct {
	name    string
	extract func(doc *goquery.Document, handle string) (*model.Profile, bool)
}

var htmlExtractors = []htmlExtractor{
	{"shared_data", fromSharedData},
	{"ld_json", fromLDJSON},
	{"next_data", fromNextData},
	{"inline_user", fromInlineUser},
	{"og_meta", fromOpenGraph},
	{"visible_text", fromVisibleText},
}

func parseProfileHTML(body []byte, handle string) (*model.Profile, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for _, ex := range htmlExtractors {
		if p, ok := ex.extract(doc, handle); ok {
			return p, nil
		}
	}
	return nil, ErrUnexpectedShape
}

// decodeAfter decodes the first JSON value that starts at or after marker in s.
func decodeAfter(s, marker string) (any, bool) {
	i := strings.Index(s, marker)
	if i < 0 {
		return nil, false
	}
	rest := s[i+len(marker):]
	j := strings.IndexByte(rest, '{')
	if j < 0 {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(rest[j:]))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

func fromScripts(doc *goquery.Document, selector string, decode func(text string) (any, bool), handle string) (*model.Profile, bool) {
	var found *model.Profile
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		root, ok := decode(s.Text())
		if !ok {
			return true
		}
		p, err := profileFromDocument(root, handle)
		if err != nil {
			return true
		}
		found = p
		return false
	})
	return found, found != nil
}

func fromSharedData(doc *goquery.Document, handle string) (*model.Profile, bool) {
	return fromScripts(doc, "script", func(text string) (any, bool) {
		if !strings.Contains(text, "window._sharedData") {
			return nil, false
		}
		return decodeAfter(text, "window._sharedData")
	}, handle)
}

func fromLDJSON(doc *goquery.Document, handle string) (*model.Profile, bool) {
	return fromScripts(doc, `script[type="application/ld+json"]`, func(text string) (any, bool) {
		root, err := decodeAny([]byte(text))
		return root, err == nil
	}, handle)
}

func fromNextData(doc *goquery.Document, handle string) (*model.Profile, bool) {
	return fromScripts(doc, "script#__NEXT_DATA__", func(text string) (any, bool) {
		root, err := decodeAny([]byte(text))
		return root, err == nil
	}, handle)
}

func fromInlineUser(doc *goquery.Document, handle string) (*model.Profile, bool) {
	return fromScripts(doc, "script", func(text string) (any, bool) {
		if !strings.Contains(text, `"username"`) {
			return nil, false
		}
		v, ok := decodeAfter(text, `"user":`)
		if !ok {
			return nil, false
		}
		return map[string]any{"user": v}, true
	}, handle)
}

var (
	ogCounts = regexp.MustCompile(`(?i)([\d.,]+[KMB]?)\s+Followers,\s*([\d.,]+[KMB]?)\s+Following,\s*([\d.,]+[KMB]?)\s+Posts`)
	ogName   = regexp.MustCompile(`from (.+?) \(@`)
)

// fromOpenGraph reads "1,234 Followers, 56 Following, 78 Posts - See Instagram
// photos and videos from Name (@handle)".
func fromOpenGraph(doc *goquery.Document, handle string) (*model.Profile, bool) {
	desc, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	m := ogCounts.FindStringSubmatch(desc)
	if m == nil {
		return nil, false
	}

	p := &model.Profile{
		Username:       strings.ToLower(handle),
		FollowersCount: ParseCount(m[1]),
		FollowingCount: ParseCount(m[2]),
		PostsCount:     ParseCount(m[3]),
	}
	if n := ogName.FindStringSubmatch(desc); n != nil {
		p.FullName = n[1]
	} else {
		p.FullName = titleName(doc)
	}
	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		p.ProfilePicURL = img
	}
	return p, true
}

func titleName(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if name, _, ok := strings.Cut(title, " (@"); ok {
		return strings.TrimSpace(name)
	}
	return ""
}

const minBioLength = 20

var uiChrome = []string{
	"followers", "following", "posts", "log in", "sign up", "instagram",
	"meta", "privacy", "terms", "cookie", "©", "see photos", "download the app",
}

// fromVisibleText scans rendered text lines for counts, bio and account flags.
func fromVisibleText(doc *goquery.Document, handle string) (*model.Profile, bool) {
	lines := visibleLines(doc)

	followers, okFollowers := countNear(lines, "followers")
	following, okFollowing := countNear(lines, "following")
	posts, okPosts := countNear(lines, "posts")
	if !okFollowers && !okFollowing && !okPosts {
		return nil, false
	}

	p := &model.Profile{
		Username:       strings.ToLower(handle),
		FullName:       titleName(doc),
		FollowersCount: followers,
		FollowingCount: following,
		PostsCount:     posts,
	}

	for _, l := range lines {
		lower := strings.ToLower(l)
		if strings.Contains(lower, "this account is private") {
			p.IsPrivate = true
		}
		if lower == "verified" {
			p.IsVerified = true
		}
	}
	if doc.Find(`[aria-label="Verified"], [title="Verified"]`).Length() > 0 {
		p.IsVerified = true
	}

	for _, l := range lines {
		if len(l) < minBioLength || l == p.FullName || isChrome(l) {
			continue
		}
		bio := l
		p.Bio = &bio
		break
	}
	return p, true
}

// countNear finds the first line mentioning keyword that carries a count, looking
// at the preceding line when the number is rendered in its own element. A bare
// keyword such as a "Posts" nav link is not a count.
func countNear(lines []string, keyword string) (int64, bool) {
	for i, l := range lines {
		if !strings.Contains(strings.ToLower(l), keyword) {
			continue
		}
		if n, ok := parseCount(l); ok {
			return n, true
		}
		if i > 0 {
			if n, ok := parseCount(lines[i-1]); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func isChrome(line string) bool {
	lower := strings.ToLower(line)
	for _, c := range uiChrome {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}

func visibleLines(doc *goquery.Document) []string {
	var lines []string
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		if s.Is("script, style, noscript, template") || s.Children().Length() > 0 {
			return
		}
		if s.ParentsFiltered("script, style, noscript, template").Length() > 0 {
			return
		}
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			lines = append(lines, t)
		}
	})
	return lines
}
