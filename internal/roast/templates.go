package roast

import (
	"golang.org/x/text/message"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

const influencerThreshold = 10_000

var DefaultTemplates = []Template{
	func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("Looks like @%s is trying to be an influencer with %d followers. Too bad they're probably all bots! 🤖",
			p.Username, p.FollowersCount)
	},
	func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("@%s has %d posts but only %d followers. Math isn't their strong suit! 📊",
			p.Username, p.PostsCount, p.FollowersCount)
	},
	func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("With %d followers and %d following, @%s is clearly desperate for attention! 😅",
			p.FollowersCount, p.FollowingCount, p.Username)
	},
	func(p *model.Profile, f *message.Printer) string {
		if p.FollowersCount >= influencerThreshold {
			return f.Sprintf("@%s thinks they're famous with %d followers. Cute, but your mom still doesn't like your posts! 🌟",
				p.Username, p.FollowersCount)
		}
		return f.Sprintf("@%s thinks they're famous with %d followers. Your group chat has a bigger audience! 🌟",
			p.Username, p.FollowersCount)
	},
	func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("Another day, another wannabe influencer. @%s has %d posts but still can't figure out how to be interesting! 📱",
			p.Username, p.PostsCount)
	},
	func(p *model.Profile, f *message.Printer) string {
		if p.FollowingCount > p.FollowersCount {
			return f.Sprintf("@%s is following %d people but only %d follow back. Ouch! 😬",
				p.Username, p.FollowingCount, p.FollowersCount)
		}
		return f.Sprintf("@%s has more followers than following. Congrats on buying them in bulk! 😬",
			p.Username)
	},
	func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("With %d posts and %d followers, @%s is the definition of quantity over quality! 📸",
			p.PostsCount, p.FollowersCount, p.Username)
	},
	func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("@%s has been posting %d times but still can't crack the algorithm. Maybe try being more interesting? 🤔",
			p.Username, p.PostsCount)
	},
	func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("Another Instagram account, another disappointment. @%s has %d followers but zero personality! 😴",
			p.Username, p.FollowersCount)
	},
	func(p *model.Profile, f *message.Printer) string {
		return f.Sprintf("@%s thinks they're building a brand with %d posts. More like building a snooze fest! 💤",
			p.Username, p.PostsCount)
	},
}
