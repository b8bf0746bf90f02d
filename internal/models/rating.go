package models

import "time"

// Rating bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a user's score (and optional comment) for a game card.
// A user holds at most one rating per card.
type Rating struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UserID     uint   `gorm:"not null;uniqueIndex:idx_rating_user_card,priority:1"`
	GameCardID uint   `gorm:"not null;index;uniqueIndex:idx_rating_user_card,priority:2"`
	Score      int    `gorm:"not null"`
	Comment    string `gorm:"type:text"`

	User User `gorm:"foreignKey:UserID"` // Belongs to User, preloaded for usernames
}

// RatingSummary is the aggregate of all ratings for one card.
type RatingSummary struct {
	GameCardID  uint
	Average     float64
	RatingCount int64
}
