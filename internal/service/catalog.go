package service

import (
	"context"
	"fmt"

	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository"

	"go.uber.org/zap"
)

// CatalogService produces ranked, filterable card listings.
type CatalogService struct {
	repo repository.Repository
	log  *zap.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(repo repository.Repository, log *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// ListAll returns every card, highest average rating first, unrated cards last.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.GameCardView, error) {
	cards, err := s.repo.GameCards().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing game cards: %w", err)
	}
	return s.ranked(ctx, cards)
}

// ListByCategories returns cards in any of the categories, ranked like ListAll.
func (s *CatalogService) ListByCategories(ctx context.Context, categoryIDs []uint) ([]models.GameCardView, error) {
	cards, err := s.repo.GameCards().FindAllByCategoriesIn(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("filtering game cards: %w", err)
	}
	return s.ranked(ctx, cards)
}

// ListByCategoryNames resolves names to categories first; unknown names match nothing.
func (s *CatalogService) ListByCategoryNames(ctx context.Context, names []string) ([]models.GameCardView, error) {
	categories, err := s.repo.Categories().FindAllByNameIn(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolving categories: %w", err)
	}
	ids := make([]uint, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return s.ListByCategories(ctx, ids)
}

func (s *CatalogService) ranked(ctx context.Context, cards []models.GameCard) ([]models.GameCardView, error) {
	views, err := buildViews(ctx, s.repo, cards)
	if err != nil {
		s.log.Error("failed to aggregate ratings", zap.Error(err))
		return nil, err
	}
	models.SortByRating(views)
	return views, nil
}

// buildViews joins cards with their rating aggregates, preserving input order.
func buildViews(ctx context.Context, repo repository.Repository, cards []models.GameCard) ([]models.GameCardView, error) {
	ids := make([]uint, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}

	summaries, err := repo.Ratings().Summaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("aggregating ratings: %w", err)
	}

	views := make([]models.GameCardView, len(cards))
	for i, c := range cards {
		var summary *models.RatingSummary
		if sm, ok := summaries[c.ID]; ok {
			summary = &sm
		}
		views[i] = models.NewGameCardView(c, summary)
	}
	return views, nil
}
