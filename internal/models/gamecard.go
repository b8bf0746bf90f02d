package models

import "time"

// GameCard represents an icebreaker activity in the catalog.
type GameCard struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string      `gorm:"size:255;uniqueIndex;not null"`
	Rules       string      `gorm:"type:text"`
	Description string      `gorm:"type:text"`
	Creator     string      `gorm:"size:255"` // Free-text username, not a foreign key
	Categories  []*Category `gorm:"many2many:game_card_categories;"`
}

// CategoryNames flattens the card's categories into their names.
func (g GameCard) CategoryNames() []string {
	names := make([]string, 0, len(g.Categories))
	for _, c := range g.Categories {
		if c != nil {
			names = append(names, c.Name)
		}
	}
	return names
}
