package service

import (
	"context"
	"testing"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/hub"
	"icebreaker/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDeleteScrubsEveryReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	target := f.card(t, "Target", "word")
	other := f.card(t, "Other")
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")

	require.NoError(t, f.collection.AddToFavorites(ctx, alice.ID, target.ID))
	require.NoError(t, f.collection.AddToFavorites(ctx, alice.ID, other.ID))
	for _, id := range []uint{target.ID, other.ID, target.ID} {
		_, err := f.collection.AddToQueue(ctx, bob.ID, id)
		require.NoError(t, err)
	}
	_, err := f.collection.AddToQueue(ctx, carol.ID, other.ID)
	require.NoError(t, err)

	rating, err := f.ratings.Rate(ctx, carol.ID, target.ID, 4, "fun")
	require.NoError(t, err)
	_, err = f.reports.ReportComment(ctx, alice.ID, rating.ID, "rude")
	require.NoError(t, err)
	_, err = f.reports.ReportGameCard(ctx, bob.ID, target.ID, "duplicate")
	require.NoError(t, err)

	result, err := f.deletion.DeleteByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ScrubbedUsers)
	assert.Equal(t, 1, result.RemovedRatings)
	assert.Equal(t, "Target", result.Card.Title)

	_, err = f.cards.Get(ctx, target.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	favorites, err := f.collection.FavoriteIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{other.ID}, favorites)

	bobQueue, err := f.collection.QueueIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Queue{other.ID}, bobQueue)

	carolQueue, err := f.collection.QueueIDs(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Queue{other.ID}, carolQueue)

	holders, err := f.store.Collections().HoldersOf(ctx, target.ID)
	require.NoError(t, err)
	assert.Empty(t, holders)

	reports, err := f.reports.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports.GameCards)
	require.Len(t, reports.Comments, 1)
	assert.Nil(t, reports.Comments[0].RatingID)

	all, err := f.catalog.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Other"}, titles(all))

	assert.Contains(t, f.events.types(), hub.EventGameCardDeleted)
}

func TestDeleteByTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.card(t, "Gone")

	_, err := f.deletion.DeleteByTitle(ctx, "Gone")
	require.NoError(t, err)

	_, err = f.cards.GetByTitle(ctx, "Gone")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// The title is free again.
	f.card(t, "Gone")
}

func TestDeleteUnknownCardIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.deletion.DeleteByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.deletion.DeleteByTitle(context.Background(), "nope")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.card(t, "Sticky")
	user := f.user(t, "alice")
	require.NoError(t, f.collection.AddToFavorites(ctx, user.ID, card.ID))
	_, err := f.collection.AddToQueue(ctx, user.ID, card.ID)
	require.NoError(t, err)

	failing := NewDeletionService(failingRepo{Repository: f.store}, nil, zap.NewNop())
	_, err = failing.DeleteByID(ctx, card.ID)
	require.ErrorIs(t, err, errInjected)

	_, err = f.cards.Get(ctx, card.ID)
	require.NoError(t, err)

	favorites, err := f.collection.FavoriteIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{card.ID}, favorites)

	queue, err := f.collection.QueueIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Queue{card.ID}, queue)

	// Retrying with a healthy repository completes the deletion.
	_, err = f.deletion.DeleteByID(ctx, card.ID)
	require.NoError(t, err)
}
