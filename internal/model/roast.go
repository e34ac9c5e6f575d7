package model

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type Roast struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Totals struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalRoasts int64 `json:"totalRoasts"`
}

// RoastResult is everything the dashboard renders after a roast.
type RoastResult struct {
	User         *User
	Profile      *Profile
	Roast        *Roast
	RoastCount   int64
	Totals       Totals
	RecentRoasts []Roast
}

type UserRoasts struct {
	User       *User
	RoastCount int64
	Roasts     []Roast
}
