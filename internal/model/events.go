package model

import "time"

const (
	AggregateRoast   = "roast"
	EventRoastCreate = "ROAST_CREATED"
)

// RoastCreatedEvent is the outbox payload written alongside each roast.
type RoastCreatedEvent struct {
	RoastID    string    `json:"roast_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Text       string    `json:"text"`
	IsMockData bool      `json:"is_mock_data"`
	CreatedAt  time.Time `json:"created_at"`
}
