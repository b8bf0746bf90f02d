package models

import "sort"

// GameCardView is the read-only projection of a card served to clients.
// AverageRating is nil when the card has no ratings.
type GameCardView struct {
	ID            uint
	Title         string
	Rules         string
	Description   string
	Creator       string
	Categories    []string
	AverageRating *float64
	RatingCount   int64
}

// NewGameCardView composes a view from a card and its rating aggregate, if any.
func NewGameCardView(card GameCard, summary *RatingSummary) GameCardView {
	view := GameCardView{
		ID:          card.ID,
		Title:       card.Title,
		Rules:       card.Rules,
		Description: card.Description,
		Creator:     card.Creator,
		Categories:  card.CategoryNames(),
	}
	if summary != nil && summary.RatingCount > 0 {
		avg := summary.Average
		view.AverageRating = &avg
		view.RatingCount = summary.RatingCount
	}
	return view
}

// SortByRating orders views by average rating, highest first.
// Rated cards always precede unrated ones; ties keep their input order.
func SortByRating(views []GameCardView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].AverageRating, views[j].AverageRating
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
}
