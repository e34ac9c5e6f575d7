package instagram

import (
	"math"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

// ComputeStats derives engagement figures from the profile's recent posts.
// Engagement is average (likes + comments) per post as a percentage of followers.
func ComputeStats(p *model.Profile) model.ProfileStats {
	s := model.ProfileStats{
		Username:   p.Username,
		Followers:  p.FollowersCount,
		Following:  p.FollowingCount,
		Posts:      p.PostsCount,
		IsPrivate:  p.IsPrivate,
		IsVerified: p.IsVerified,
		IsBusiness: p.IsBusinessAccount,
	}

	n := len(p.RecentPosts)
	if n == 0 {
		return s
	}

	var likes, comments int64
	for _, post := range p.RecentPosts {
		likes += post.LikesCount
		comments += post.CommentsCount
	}

	avgLikes := float64(likes) / float64(n)
	avgComments := float64(comments) / float64(n)
	s.AverageLikes = int64(math.Round(avgLikes))
	s.AverageComments = int64(math.Round(avgComments))

	if p.FollowersCount > 0 {
		rate := (avgLikes + avgComments) / float64(p.FollowersCount) * 100
		s.EngagementRate = math.Round(rate*100) / 100
	}
	return s
}
