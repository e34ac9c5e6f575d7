package roast

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/message"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"abc", 96354},
		{"natgeo", -1052621168},
		// Characters outside the BMP hash as two UTF-16 code units.
		{"😀", 1772899},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(tt.in))
		})
	}
}

func TestIndexHandlesMinInt32(t *testing.T) {
	// "polygenelubricants" hashes to math.MinInt32.
	assert.Equal(t, int32(math.MinInt32), Hash("polygenelubricants"))
	idx := Index("polygenelubricants", 10)
	assert.Equal(t, 8, idx)
}

func TestIndexInRange(t *testing.T) {
	for _, s := range []string{"a", "natgeo", "testuser", "zzzzzzzzzzzzzzzzzzzzz", "x.y_z"} {
		i := Index(s, len(DefaultTemplates))
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, len(DefaultTemplates))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator()
	bio := "hello"

	live := &model.Profile{Username: "natgeo", FollowersCount: 1234, PostsCount: 5, FollowingCount: 2, Bio: &bio,
		ScrapedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	mock := *live
	mock.IsMockData = true
	mock.ScrapedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.Bio = nil

	assert.Equal(t, g.Generate(live), g.Generate(&mock))
	assert.Equal(t, g.Generate(live), g.Generate(live))
}

func TestGenerate_FormatsCountsAndHandle(t *testing.T) {
	first := func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("@%s %d", p.Username, p.FollowersCount)
	}
	g := NewGeneratorWith([]Template{first})

	out := g.Generate(&model.Profile{Username: "natgeo", FollowersCount: 1234567})
	assert.Equal(t, "@natgeo 1,234,567", out)
}

func TestDefaultTemplates_MentionHandle(t *testing.T) {
	g := NewGenerator()
	for i, tmpl := range DefaultTemplates {
		for _, followers := range []int64{5, 50_000} {
			p := &model.Profile{Username: "someone", FollowersCount: followers, FollowingCount: 100, PostsCount: 3}
			out := tmpl(p, g.printer)
			assert.True(t, strings.Contains(out, "@someone"), "template %d: %q", i, out)
		}
	}
}

func TestFollowerThresholdPicksClause(t *testing.T) {
	g := NewGenerator()
	tmpl := DefaultTemplates[3]

	small := tmpl(&model.Profile{Username: "a", FollowersCount: 10}, g.printer)
	big := tmpl(&model.Profile{Username: "a", FollowersCount: 20_000}, g.printer)

	assert.Contains(t, small, "group chat")
	assert.Contains(t, big, "20,000")
	assert.NotEqual(t, small, big)
}
