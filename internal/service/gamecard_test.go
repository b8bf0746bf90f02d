package service

import (
	"context"
	"testing"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/hub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThenFetchReturnsCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	card := f.card(t, "Human Knot", "group", "physical")

	view, err := f.cards.Get(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Human Knot", view.Title)
	assert.ElementsMatch(t, []string{"group", "physical"}, view.Categories)
	assert.Nil(t, view.AverageRating)

	byTitle, err := f.cards.GetByTitle(ctx, "Human Knot")
	require.NoError(t, err)
	assert.Equal(t, card.ID, byTitle.ID)

	assert.Equal(t, []string{hub.EventGameCardCreated}, f.events.types())
}

func TestCreateDropsUnknownCategories(t *testing.T) {
	f := newFixture(t)

	card := f.card(t, "Word Chain", "word", "nonexistent")
	assert.Equal(t, []string{"word"}, card.CategoryNames())
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	f := newFixture(t)
	f.card(t, "Trio")

	_, err := f.cards.Create(context.Background(), AddRequest{Title: "Trio"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestCreateRequiresTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.cards.Create(context.Background(), AddRequest{Title: "   "})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdateToTakenTitleConflictsAndKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.card(t, "Duo")
	trio := f.card(t, "Trio", "group")

	_, err := f.cards.Update(ctx, UpdateRequest{ID: trio.ID, Title: "Duo", Categories: []string{"word"}})
	require.ErrorIs(t, err, apperror.ErrConflict)

	view, err := f.cards.Get(ctx, trio.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trio", view.Title)
	assert.Equal(t, []string{"group"}, view.Categories)
}

func TestUpdateReplacesFieldsAndCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.card(t, "Trio", "group", "physical")

	_, err := f.cards.Update(ctx, UpdateRequest{
		ID:          card.ID,
		Title:       "Trio",
		Rules:       "new rules",
		Description: "new desc",
		Categories:  []string{"word"},
	})
	require.NoError(t, err)

	view, err := f.cards.Get(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "new rules", view.Rules)
	assert.Equal(t, "new desc", view.Description)
	assert.Equal(t, []string{"word"}, view.Categories)
	assert.Equal(t, "tester", view.Creator)
}

func TestUpdateUnknownCardIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.cards.Update(context.Background(), UpdateRequest{ID: 999, Title: "Ghost"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetUnknownCardIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.cards.Get(context.Background(), 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.cards.GetByTitle(context.Background(), "nope")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
