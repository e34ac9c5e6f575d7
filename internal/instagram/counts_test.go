package instagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1,234 followers", 1234},
		{"2.5K followers", 2500},
		{"3M followers", 3000000},
		{"following", 0},
		{"", 0},
		{"  987 posts", 987},
		{"1.2m", 1200000},
		{"4.35K", 4350},
		{"1.5B", 1500000000},
		{"12.9 followers", 12},
		{"10,5K", 105000},
		{"K followers", 0},
		{"3 more posts", 3},
		{"7 bananas", 7},
		{"12 mutual followers", 12},
		{"1 month ago", 1},
		{"2 billion", 2},
		{"5k", 5000},
		{"5K.", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.in))
		})
	}
}

func TestExtractHashtagsAndMentions(t *testing.T) {
	caption := "Sunset vibes #travel #שלום with @jane.doe and @bob_"

	assert.Equal(t, []string{"#travel", "#שלום"}, extractHashtags(caption))
	assert.Equal(t, []string{"@jane.doe", "@bob_"}, extractMentions(caption))
	assert.Equal(t, []string{}, extractHashtags("no tags"))
}
