package instagram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graphqlUserJSON = `{
  "data": {
    "user": {
      "id": "787132",
      "username": "NatGeo",
      "full_name": "National Geographic",
      "biography": "Experience the world through the eyes of National Geographic photographers.",
      "profile_pic_url": "https://cdn.example/small.jpg",
      "profile_pic_url_hd": "https://cdn.example/hd.jpg",
      "is_private": false,
      "is_verified": true,
      "is_business_account": true,
      "category_name": "Media",
      "external_url": "https://natgeo.com",
      "edge_followed_by": {"count": 283000000},
      "edge_follow": {"count": 150},
      "edge_owner_to_timeline_media": {
        "count": 30000,
        "edges": [
          {"node": {
            "id": 1,
            "shortcode": "abc",
            "display_url": "https://cdn.example/p1.jpg",
            "is_video": false,
            "taken_at_timestamp": 1700000000,
            "edge_media_to_caption": {"edges": [{"node": {"text": "Lions #wildlife with @photog"}}]},
            "edge_media_preview_like": {"count": 1000},
            "edge_media_to_comment": {"count": 20},
            "location": {"name": "Kenya"}
          }}
        ]
      }
    }
  },
  "status": "ok"
}`

func TestParseProfileJSON_GraphQLShape(t *testing.T) {
	p, err := parseProfileJSON([]byte(graphqlUserJSON), "natgeo")
	require.NoError(t, err)

	assert.Equal(t, "natgeo", p.Username)
	assert.Equal(t, "National Geographic", p.FullName)
	assert.Equal(t, int64(283000000), p.FollowersCount)
	assert.Equal(t, int64(150), p.FollowingCount)
	assert.Equal(t, int64(30000), p.PostsCount)
	assert.Equal(t, "https://cdn.example/hd.jpg", p.ProfilePicURL)
	assert.True(t, p.IsVerified)
	assert.True(t, p.IsBusinessAccount)
	require.NotNil(t, p.ExternalURL)
	assert.Equal(t, "https://natgeo.com", *p.ExternalURL)

	require.Len(t, p.RecentPosts, 1)
	post := p.RecentPosts[0]
	assert.Equal(t, "1", post.ID)
	assert.Equal(t, int64(1000), post.LikesCount)
	assert.Equal(t, []string{"#wildlife"}, post.Hashtags)
	assert.Equal(t, []string{"@photog"}, post.Mentions)
	assert.Equal(t, "Kenya", post.Location)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), post.Timestamp)
}

func TestParseProfileJSON_FlatCountsWithStatusOK(t *testing.T) {
	body := `{"status":"ok","data":{"username":"someone","follower_count":"1,234","following_count":56,"media_count":7,"profile_pic_url":"https://cdn.example/d.jpg"}}`

	p, err := parseProfileJSON([]byte(body), "someone")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), p.FollowersCount)
	assert.Equal(t, int64(56), p.FollowingCount)
	assert.Equal(t, int64(7), p.PostsCount)
	assert.Equal(t, "https://cdn.example/d.jpg", p.ProfilePicURL)
	assert.Nil(t, p.Bio)
}

func TestParseProfileJSON_PicturePreference(t *testing.T) {
	body := `{"user":{"username":"x","profile_pic_url":"d","profile_pic_url_medium":"m","profile_pic_url_large":"l"}}`

	p, err := parseProfileJSON([]byte(body), "x")
	require.NoError(t, err)
	assert.Equal(t, "l", p.ProfilePicURL)
}

func TestParseProfileJSON_FeedItems(t *testing.T) {
	body := `{"user":{"username":"x","follower_count":10},"items":[
	  {"id":"9","code":"C1","media_type":2,"like_count":5,"comment_count":1,"taken_at":1700000000,
	   "caption":{"text":"#one"},"image_versions2":{"candidates":[{"url":"big"},{"url":"small"}]},
	   "video_versions":[{"url":"vid"}]}
	]}`

	p, err := parseProfileJSON([]byte(body), "x")
	require.NoError(t, err)
	require.Len(t, p.RecentPosts, 1)
	assert.True(t, p.RecentPosts[0].IsVideo)
	assert.Equal(t, "Video", p.RecentPosts[0].MediaType)
	assert.Equal(t, "big", p.RecentPosts[0].DisplayURL)
	assert.Equal(t, "small", p.RecentPosts[0].ThumbnailURL)
	assert.Equal(t, "vid", p.RecentPosts[0].VideoURL)
}

func TestParseProfileJSON_UnknownShape(t *testing.T) {
	for _, body := range []string{
		`{"message":"checkpoint_required","status":"fail"}`,
		`{"data":{"user":null}}`,
		`not json at all`,
		`[]`,
	} {
		_, err := parseProfileJSON([]byte(body), "x")
		assert.ErrorIs(t, err, ErrUnexpectedShape, body)
	}
}

func TestLDAuthor(t *testing.T) {
	body := `{"@type":"ProfilePage","mainEntityofPage":{"author":{
	  "@type":"Person","name":"Jane Doe","alternateName":"@jane","description":"Painter and part-time cat herder",
	  "image":"https://cdn.example/j.jpg",
	  "interactionStatistic":[
	    {"interactionType":"http://schema.org/FollowAction","userInteractionCount":"2.5K"},
	    {"interactionType":"http://schema.org/WriteAction","userInteractionCount":42}
	  ]}}}`

	p, err := parseProfileJSON([]byte(body), "jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.FullName)
	assert.Equal(t, int64(2500), p.FollowersCount)
	assert.Equal(t, int64(42), p.PostsCount)
	assert.Equal(t, "Painter and part-time cat herder", p.BioText())
}
