package gormstore

import (
	"context"
	"errors"
	"testing"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository"
	"icebreaker/backend/internal/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(testdb.New(t))
}

func createCard(t *testing.T, s *Store, title string, categories ...string) *models.GameCard {
	t.Helper()
	ctx := context.Background()
	cats, err := s.Categories().FindAllByNameIn(ctx, categories)
	require.NoError(t, err)
	card := &models.GameCard{Title: title, Rules: "rules", Description: "desc", Creator: "tester", Categories: cats}
	require.NoError(t, s.GameCards().Create(ctx, card))
	return card
}

func createUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Users().Create(context.Background(), user))
	return user
}

func TestCategoryLookupSkipsUnknownNames(t *testing.T) {
	s := newTestStore(t)

	cats, err := s.Categories().FindAllByNameIn(context.Background(), []string{"word", "nonexistent", "group"})
	require.NoError(t, err)

	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"word", "group"}, names)
}

func TestCreateCategoryDuplicateIsConflict(t *testing.T) {
	s := newTestStore(t)

	err := s.Categories().Create(context.Background(), &models.Category{Name: "word"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestGameCardCreateThenFetch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	card := createCard(t, s, "Two truths and a lie", "icebreaker", "group")

	byID, err := s.GameCards().FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"icebreaker", "group"}, byID.CategoryNames())

	byTitle, err := s.GameCards().FindByTitle(ctx, "Two truths and a lie")
	require.NoError(t, err)
	assert.Equal(t, card.ID, byTitle.ID)

	exists, err := s.GameCards().ExistsByTitle(ctx, "Two truths and a lie")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGameCardLookupsReportNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GameCards().FindByID(ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = s.GameCards().FindByTitle(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGameCardDuplicateTitleIsConflict(t *testing.T) {
	s := newTestStore(t)
	createCard(t, s, "Duo")

	err := s.GameCards().Create(context.Background(), &models.GameCard{Title: "Duo"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestFindAllByCategoriesInIsUnion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createCard(t, s, "A", "word")
	b := createCard(t, s, "B", "physical")
	both := createCard(t, s, "AB", "word", "physical")
	createCard(t, s, "none")

	word, err := s.Categories().FindAllByNameIn(ctx, []string{"word"})
	require.NoError(t, err)
	all, err := s.Categories().FindAllByNameIn(ctx, []string{"word", "physical"})
	require.NoError(t, err)

	cards, err := s.GameCards().FindAllByCategoriesIn(ctx, []uint{word[0].ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, both.ID}, cardIDs(cards))

	cards, err = s.GameCards().FindAllByCategoriesIn(ctx, []uint{all[0].ID, all[1].ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID, both.ID}, cardIDs(cards), "each card once")

	cards, err = s.GameCards().FindAllByCategoriesIn(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestGameCardUpdateReplacesCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	card := createCard(t, s, "Old", "word", "group")

	physical, err := s.Categories().FindAllByNameIn(ctx, []string{"physical"})
	require.NoError(t, err)
	card.Title = "New"
	card.Rules = "new rules"
	card.Categories = physical
	require.NoError(t, s.GameCards().Update(ctx, card))

	got, err := s.GameCards().FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "new rules", got.Rules)
	assert.Equal(t, []string{"physical"}, got.CategoryNames())

	card.Categories = nil
	require.NoError(t, s.GameCards().Update(ctx, card))
	got, err = s.GameCards().FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
}

func TestGameCardDeleteRemovesCategoryLinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	card := createCard(t, s, "Gone", "word")

	require.NoError(t, s.GameCards().Delete(ctx, card.ID))

	_, err := s.GameCards().FindByID(ctx, card.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	var links int64
	require.NoError(t, s.db.Table("game_card_categories").Where("game_card_id = ?", card.ID).Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorIs(t, s.GameCards().Delete(ctx, card.ID), apperror.ErrNotFound)
}

func TestFavoritesAreASet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createUser(t, s, "ola")
	card := createCard(t, s, "Fav")

	require.NoError(t, s.Collections().AddFavorite(ctx, user.ID, card.ID))
	require.NoError(t, s.Collections().AddFavorite(ctx, user.ID, card.ID))

	ids, err := s.Collections().FavoriteIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{card.ID}, ids)

	require.NoError(t, s.Collections().RemoveFavorite(ctx, user.ID, card.ID))
	require.NoError(t, s.Collections().RemoveFavorite(ctx, user.ID, card.ID))

	ids, err = s.Collections().FavoriteIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSaveQueueWritesDensePositions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createUser(t, s, "kari")

	require.NoError(t, s.Collections().SaveQueue(ctx, user.ID, models.Queue{3, 1, 3, 2}))
	require.NoError(t, s.Collections().SaveQueue(ctx, user.ID, models.Queue{1, 3, 2}))

	queue, err := s.Collections().Queue(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Queue{1, 3, 2}, queue)

	var positions []int
	require.NoError(t, s.db.Model(&models.QueueEntry{}).Where("user_id = ?", user.ID).
		Order("position").Pluck("position", &positions).Error)
	assert.Equal(t, []int{0, 1, 2}, positions)

	require.NoError(t, s.Collections().SaveQueue(ctx, user.ID, nil))
	queue, err = s.Collections().Queue(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestHoldersOfCoversFavoritesAndQueues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u1 := createUser(t, s, "u1")
	u2 := createUser(t, s, "u2")
	u3 := createUser(t, s, "u3")
	card := createCard(t, s, "Held")
	other := createCard(t, s, "Other")

	require.NoError(t, s.Collections().AddFavorite(ctx, u1.ID, card.ID))
	require.NoError(t, s.Collections().SaveQueue(ctx, u2.ID, models.Queue{other.ID, card.ID, card.ID}))
	require.NoError(t, s.Collections().AddFavorite(ctx, u2.ID, card.ID))
	require.NoError(t, s.Collections().AddFavorite(ctx, u3.ID, other.ID))

	holders, err := s.Collections().HoldersOf(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{u1.ID, u2.ID}, holders)
}

func TestRatingSummaries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u1 := createUser(t, s, "r1")
	u2 := createUser(t, s, "r2")
	a := createCard(t, s, "A")
	b := createCard(t, s, "B")
	c := createCard(t, s, "C")

	require.NoError(t, s.Ratings().Save(ctx, &models.Rating{UserID: u1.ID, GameCardID: a.ID, Score: 5}))
	require.NoError(t, s.Ratings().Save(ctx, &models.Rating{UserID: u2.ID, GameCardID: a.ID, Score: 4}))
	require.NoError(t, s.Ratings().Save(ctx, &models.Rating{UserID: u1.ID, GameCardID: b.ID, Score: 2}))

	summaries, err := s.Ratings().Summaries(ctx, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, summaries[a.ID].Average, 1e-9)
	assert.Equal(t, int64(2), summaries[a.ID].RatingCount)
	assert.InDelta(t, 2.0, summaries[b.ID].Average, 1e-9)
	_, ok := summaries[c.ID]
	assert.False(t, ok, "unrated card has no summary")

	summaries, err = s.Ratings().Summaries(ctx, []uint{b.ID})
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	summaries, err = s.Ratings().Summaries(ctx, []uint{})
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestFindByCardPreloadsUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createUser(t, s, "commenter")
	card := createCard(t, s, "Rated")
	require.NoError(t, s.Ratings().Save(ctx, &models.Rating{UserID: user.ID, GameCardID: card.ID, Score: 3, Comment: "fun"}))

	ratings, err := s.Ratings().FindByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "commenter", ratings[0].User.Username)
	assert.Equal(t, "fun", ratings[0].Comment)
}

func TestDetachRatingsKeepsCommentReports(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := createUser(t, s, "author")
	reporter := createUser(t, s, "reporter")
	card := createCard(t, s, "Reported")
	rating := &models.Rating{UserID: author.ID, GameCardID: card.ID, Score: 1, Comment: "rude"}
	require.NoError(t, s.Ratings().Save(ctx, rating))
	require.NoError(t, s.Reports().CreateCommentReport(ctx, &models.CommentReport{UserID: reporter.ID, RatingID: &rating.ID, Reason: "rude"}))

	require.NoError(t, s.Reports().DetachRatings(ctx, []uint{rating.ID}))

	reports, err := s.Reports().ListCommentReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Nil(t, reports[0].RatingID)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(r repository.Repository) error {
		if err := r.GameCards().Create(ctx, &models.GameCard{Title: "Transient"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := s.GameCards().ExistsByTitle(ctx, "Transient")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserDeleteAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roles, err := s.Users().FindRolesByName(ctx, models.RoleUser)
	require.NoError(t, err)
	user := &models.User{Username: "nils", Email: "nils@example.com", PasswordHash: "h", Roles: roles}
	require.NoError(t, s.Users().Create(ctx, user))

	got, err := s.Users().FindByLogin(ctx, "nils@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleUser}, got.RoleNames())

	exists, err := s.Users().ExistsByUsernameOrEmail(ctx, "other", "nils@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Users().Delete(ctx, user.ID))
	_, err = s.Users().FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func cardIDs(cards []models.GameCard) []uint {
	ids := make([]uint, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
