package models

import "time"

// CommentReport flags a rating comment for moderation.
// RatingID is cleared when the rating goes away; the report itself is owned by the reporter.
type CommentReport struct {
	ID        uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	UserID    uint   `gorm:"not null;index"`
	RatingID  *uint  `gorm:"index"`
	Reason    string `gorm:"size:500"`
}

// GameCardReport flags a game card for moderation.
type GameCardReport struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt  time.Time
	UserID     uint   `gorm:"not null;index"`
	GameCardID uint   `gorm:"not null;index"`
	Reason     string `gorm:"size:500"`
}
