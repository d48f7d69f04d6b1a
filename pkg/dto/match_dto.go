package dto

import "time"

// FeedCard는 피드에 표시되는 후보 카드입니다
type FeedCard struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Age             *int     `json:"age"`
	PrimaryPhoto    string   `json:"primary_photo"`
	SecondaryPhotos []string `json:"secondary_photos"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	DistanceLabel   string   `json:"distance_label,omitempty"`
	Tags            []string `json:"tags"`
	Bio             string   `json:"bio"`
	Work            string   `json:"work"`
}

type FeedResponse struct {
	Cards          []FeedCard `json:"cards"`
	PrunedDislikes int        `json:"pruned_dislikes"`
}

type LikeResponse struct {
	LikeID    int       `json:"like_id"`
	Created   bool      `json:"created"`
	Matched   bool      `json:"matched"`
	CreatedAt time.Time `json:"created_at"`
}

type DislikeResponse struct {
	TargetID  int       `json:"target_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ReconcileResponse struct {
	Pruned int `json:"pruned"`
}

type CompatibilityResponse struct {
	Compatible   bool     `json:"compatible"`
	Interest     bool     `json:"interest"`
	WithinRadius bool     `json:"within_radius"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

// ProfileSummary는 받은 좋아요/매칭 목록 항목입니다
type ProfileSummary struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Age          *int      `json:"age"`
	PrimaryPhoto string    `json:"primary_photo"`
	LikedAt      time.Time `json:"liked_at"`
}

// MatchNotice는 웹소켓으로 전달되는 매칭 알림입니다
type MatchNotice struct {
	MatchID   string    `json:"match_id"`
	UserID    int       `json:"user_id"`
	MatchedAt time.Time `json:"matched_at"`
}
