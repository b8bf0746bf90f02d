package models

// Category represents a card category (e.g., "icebreaker", "word", "physical").
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}
