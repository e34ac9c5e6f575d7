package model

import "time"

// Profile is the normalized view of an Instagram account, whichever source produced it.
type Profile struct {
	Username       string    `json:"username"`
	FullName       string    `json:"fullName"`
	Bio            *string   `json:"bio"`
	FollowersCount int64     `json:"followersCount"`
	FollowingCount int64     `json:"followingCount"`
	PostsCount     int64     `json:"postsCount"`
	ProfilePicURL  string    `json:"profilePicUrl"`
	IsPrivate      bool      `json:"isPrivate"`
	IsVerified     bool      `json:"isVerified"`
	ExternalURL    *string   `json:"externalUrl"`
	RecentPosts    []Post    `json:"recentPosts"`
	ScrapedAt      time.Time `json:"scrapedAt"`
	IsMockData     bool      `json:"isMockData,omitempty"`

	IsBusinessAccount     bool   `json:"isBusinessAccount,omitempty"`
	IsProfessionalAccount bool   `json:"isProfessionalAccount,omitempty"`
	CategoryName          string `json:"categoryName,omitempty"`

	// Source names the fetch path that produced the record ("mock" when fabricated).
	Source string `json:"source,omitempty"`
}

type Post struct {
	ID             string    `json:"id"`
	Shortcode      string    `json:"shortcode"`
	DisplayURL     string    `json:"displayUrl"`
	ThumbnailURL   string    `json:"thumbnailUrl"`
	IsVideo        bool      `json:"isVideo"`
	VideoURL       string    `json:"videoUrl,omitempty"`
	Caption        string    `json:"caption"`
	LikesCount     int64     `json:"likesCount"`
	CommentsCount  int64     `json:"commentsCount"`
	Timestamp      time.Time `json:"timestamp"`
	Location       string    `json:"location,omitempty"`
	Hashtags       []string  `json:"hashtags"`
	Mentions       []string  `json:"mentions"`
	VideoViewCount int64     `json:"videoViewCount,omitempty"`
	MediaType      string    `json:"mediaType"`
}

// Complete reports whether p carries every field callers rely on.
func (p *Profile) Complete() bool {
	return p != nil &&
		p.Username != "" &&
		p.FullName != "" &&
		p.ProfilePicURL != "" &&
		p.FollowersCount >= 0 &&
		p.FollowingCount >= 0 &&
		p.PostsCount >= 0 &&
		!p.ScrapedAt.IsZero()
}

// BioText returns the bio or "" when absent.
func (p *Profile) BioText() string {
	if p.Bio == nil {
		return ""
	}
	return *p.Bio
}

// ProfileStats summarizes engagement over a profile's recent posts.
type ProfileStats struct {
	Username        string  `json:"username"`
	Followers       int64   `json:"followers"`
	Following       int64   `json:"following"`
	Posts           int64   `json:"posts"`
	EngagementRate  float64 `json:"engagementRate"`
	AverageLikes    int64   `json:"averageLikes"`
	AverageComments int64   `json:"averageComments"`
	IsPrivate       bool    `json:"isPrivate"`
	IsVerified      bool    `json:"isVerified"`
	IsBusiness      bool    `json:"isBusiness"`
}
