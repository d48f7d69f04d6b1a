package models

import "time"

// Like는 from -> to 방향의 좋아요 간선입니다. (from, to) 쌍은 유일합니다.
type Like struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	FromUserID int       `gorm:"not null;uniqueIndex:idx_like_pair;index" json:"from_user_id"`
	ToUserID   int       `gorm:"not null;uniqueIndex:idx_like_pair;index" json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
