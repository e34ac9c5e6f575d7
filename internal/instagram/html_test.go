package instagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileHTML(t *testing.T) {
	tests := []struct {
		name          string
		html          string
		wantFollowers int64
		wantFollowing int64
		wantPosts     int64
		wantName      string
	}{
		{
			name: "shared data",
			html: `<html><head><script type="text/javascript">window._sharedData = {"entry_data":{"ProfilePage":[{"graphql":{"user":{"username":"natgeo","full_name":"NatGeo","edge_followed_by":{"count":12},"edge_follow":{"count":3},"edge_owner_to_timeline_media":{"count":4,"edges":[]}}}}]}};</script></head><body></body></html>`,
			wantFollowers: 12, wantFollowing: 3, wantPosts: 4, wantName: "NatGeo",
		},
		{
			name: "next data",
			html: `<html><body><script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"user":{"username":"natgeo","full_name":"Next","follower_count":99}}}}</script></body></html>`,
			wantFollowers: 99, wantName: "Next",
		},
		{
			name: "og description",
			html: `<html><head>
				<meta property="og:description" content="2.5K Followers, 300 Following, 1,024 Posts - See Instagram photos and videos from Jane Doe (@jane)">
				<meta property="og:image" content="https://cdn.example/og.jpg">
				</head><body></body></html>`,
			wantFollowers: 2500, wantFollowing: 300, wantPosts: 1024, wantName: "Jane Doe",
		},
		{
			name: "visible text",
			html: `<html><head><title>Jane Doe (@jane) • Instagram photos and videos</title></head><body>
				<header>
				  <h2>jane</h2><span aria-label="Verified">✓</span>
				  <ul><li><span>42 posts</span></li><li><span>3M followers</span></li><li><span>1,001 following</span></li></ul>
				  <div><span>Jane Doe</span></div>
				  <div><span>Chasing light across seven continents.</span></div>
				</header>
				<footer><span>© 2024 Instagram from Meta</span></footer>
				</body></html>`,
			wantFollowers: 3000000, wantFollowing: 1001, wantPosts: 42, wantName: "Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parseProfileHTML([]byte(tt.html), "natgeo")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFollowers, p.FollowersCount)
			assert.Equal(t, tt.wantFollowing, p.FollowingCount)
			assert.Equal(t, tt.wantPosts, p.PostsCount)
			assert.Equal(t, tt.wantName, p.FullName)
		})
	}
}

func TestParseProfileHTML_VisibleTextFlags(t *testing.T) {
	html := `<html><body>
		<span aria-label="Verified"></span>
		<span>10 followers</span>
		<span>Chasing light across seven continents.</span>
		<h2>This account is private</h2>
		</body></html>`

	p, err := parseProfileHTML([]byte(html), "jane")
	require.NoError(t, err)
	assert.True(t, p.IsPrivate)
	assert.True(t, p.IsVerified)
	assert.Equal(t, "Chasing light across seven continents.", p.BioText())
}

func TestParseProfileHTML_NoData(t *testing.T) {
	_, err := parseProfileHTML([]byte(`<html><body><h1>Log in to Instagram</h1></body></html>`), "x")
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestParseProfileHTML_LoginWallNavIsNotAProfile(t *testing.T) {
	html := `<html><body>
		<div>Log in to see photos and videos from friends.</div>
		<nav><a>Posts</a><a>Reels</a><a>Tagged</a></nav>
		</body></html>`

	_, err := parseProfileHTML([]byte(html), "x")
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestParseProfileHTML_VisibleCountOnPrecedingLine(t *testing.T) {
	html := `<html><body>
		<nav><a>Posts</a></nav>
		<span>1.2M</span><span>followers</span>
		<span>0</span><span>posts</span>
		</body></html>`

	p, err := parseProfileHTML([]byte(html), "jane")
	require.NoError(t, err)
	assert.Equal(t, int64(1_200_000), p.FollowersCount)
	assert.Equal(t, int64(0), p.PostsCount)
}
