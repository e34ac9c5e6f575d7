package instagram

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

var mockBios = []string{
	"Just another Instagram user sharing moments 📸",
	"Living my best life ✨",
	"Coffee, sunsets and too many selfies ☕",
	"Professional scroller, part-time poster",
	"Here for the memes 🤷",
}

// Fabricator invents a plausible profile when no source could be reached.
type Fabricator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFabricator uses rnd when given, a randomly seeded generator otherwise.
func NewFabricator(rnd *rand.Rand) *Fabricator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Fabricator{rnd: rnd}
}

func (f *Fabricator) Profile(handle string) *model.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()

	bio := mockBios[f.rnd.IntN(len(mockBios))]
	return &model.Profile{
		Username:       strings.ToLower(handle),
		FollowersCount: 100 + f.rnd.Int64N(10000),
		FollowingCount: 50 + f.rnd.Int64N(500),
		PostsCount:     10 + f.rnd.Int64N(200),
		Bio:            &bio,
		IsVerified:     f.rnd.Float64() < 0.1,
		IsMockData:     true,
		Source:         "mock",
	}
}
