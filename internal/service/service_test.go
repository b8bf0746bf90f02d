package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"icebreaker/backend/internal/hub"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository"
	"icebreaker/backend/internal/repository/gormstore"
	"icebreaker/backend/internal/testing/testdb"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store      *gormstore.Store
	events     *recordingPublisher
	cards      *GameCardService
	catalog    *CatalogService
	collection *CollectionService
	deletion   *DeletionService
	ratings    *RatingService
	reports    *ReportService
	accounts   *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := gormstore.New(testdb.New(t))
	events := &recordingPublisher{}
	log := zap.NewNop()
	return &fixture{
		store:      store,
		events:     events,
		cards:      NewGameCardService(store, events, log),
		catalog:    NewCatalogService(store, log),
		collection: NewCollectionService(store, log),
		deletion:   NewDeletionService(store, events, log),
		ratings:    NewRatingService(store, events, log),
		reports:    NewReportService(store, log),
		accounts:   NewAccountService(store, "test-secret-0123456789", time.Hour, log),
	}
}

func (f *fixture) card(t *testing.T, title string, categories ...string) *models.GameCard {
	t.Helper()
	card, err := f.cards.Create(context.Background(), AddRequest{
		Title:       title,
		Rules:       "rules",
		Description: "desc",
		Creator:     "tester",
		Categories:  categories,
	})
	require.NoError(t, err)
	return card
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user, _, err := f.accounts.Register(context.Background(), username, username+"@example.com", "password123")
	require.NoError(t, err)
	return user
}

func titles(views []models.GameCardView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Title
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []hub.Event
}

func (p *recordingPublisher) Broadcast(_ string, event hub.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

var errInjected = errors.New("injected failure")

// failingRepo delegates to a real repository but fails card deletion,
// so callers can observe a rollback after earlier steps already ran.
type failingRepo struct {
	repository.Repository
}

func (f failingRepo) Transaction(ctx context.Context, fn func(r repository.Repository) error) error {
	return f.Repository.Transaction(ctx, func(r repository.Repository) error {
		return fn(failingRepo{Repository: r})
	})
}

func (f failingRepo) GameCards() repository.GameCardRepository {
	return failingCards{GameCardRepository: f.Repository.GameCards()}
}

type failingCards struct {
	repository.GameCardRepository
}

func (failingCards) Delete(context.Context, uint) error {
	return errInjected
}
