package eventtypes

import (
	"encoding/json"
	"time"
)

type EventPayload struct {
	EventID    string          `json:"event_id,omitempty"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// Event Types
const (
	EventTypeLikeCreated    = "like.created"
	EventTypeDislikeCreated = "dislike.created"
	EventTypeMatchCreated   = "match.created"
	EventTypeUserDeleted    = "user.deleted"
	EventTypeLog            = "log"
)

type LikeEvent struct {
	LikeID     int       `json:"like_id"`
	FromUserID int       `json:"from_user_id"`
	ToUserID   int       `json:"to_user_id"`
	Matched    bool      `json:"matched"`
	CreatedAt  time.Time `json:"created_at"`
}

type DislikeEvent struct {
	FromUserID int       `json:"from_user_id"`
	ToUserID   int       `json:"to_user_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type MatchEvent struct {
	MatchID   string    `json:"match_id"`
	UserIDs   []int     `json:"user_ids"`
	MatchedAt time.Time `json:"matched_at"`
}

type UserDeletedEvent struct {
	UserID    int       `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
