package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/hub"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository"

	"go.uber.org/zap"
)

// AddRequest is the validated input for creating a card.
type AddRequest struct {
	Title       string
	Rules       string
	Description string
	Creator     string
	Categories  []string
}

// UpdateRequest is the validated input for updating a card.
type UpdateRequest struct {
	ID          uint
	Title       string
	Rules       string
	Description string
	Categories  []string
}

// GameCardService creates, updates and fetches game cards.
type GameCardService struct {
	repo   repository.Repository
	events EventPublisher
	log    *zap.Logger
}

// NewGameCardService creates a GameCardService publishing to events.
func NewGameCardService(repo repository.Repository, events EventPublisher, log *zap.Logger) *GameCardService {
	return &GameCardService{repo: repo, events: events, log: log}
}

// Create adds a card. The title must not be in use; unknown category names are dropped.
func (s *GameCardService) Create(ctx context.Context, req AddRequest) (*models.GameCard, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}

	var card *models.GameCard
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		exists, err := r.GameCards().ExistsByTitle(ctx, title)
		if err != nil {
			return err
		}
		if exists {
			return apperror.Conflict(fmt.Sprintf("a game card titled %q already exists", title))
		}

		categories, err := r.Categories().FindAllByNameIn(ctx, req.Categories)
		if err != nil {
			return err
		}

		card = &models.GameCard{
			Title:       title,
			Rules:       req.Rules,
			Description: req.Description,
			Creator:     req.Creator,
			Categories:  categories,
		}
		return r.GameCards().Create(ctx, card)
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			s.log.Error("failed to create game card", zap.String("title", title), zap.Error(err))
		}
		return nil, fmt.Errorf("creating game card: %w", err)
	}

	s.log.Info("game card created", zap.Uint("id", card.ID), zap.String("title", card.Title))
	publish(s.events, s.log, hub.EventGameCardCreated, CardEvent{ID: card.ID, Title: card.Title})
	return card, nil
}

// Update overwrites title, rules, description and the whole category set.
// Keeping the card's own title is allowed; taking another card's title is a conflict.
func (s *GameCardService) Update(ctx context.Context, req UpdateRequest) (*models.GameCard, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}

	var card *models.GameCard
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		var err error
		card, err = r.GameCards().FindByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if card.Title != title {
			exists, err := r.GameCards().ExistsByTitle(ctx, title)
			if err != nil {
				return err
			}
			if exists {
				return apperror.Conflict(fmt.Sprintf("a game card titled %q already exists", title))
			}
		}

		categories, err := r.Categories().FindAllByNameIn(ctx, req.Categories)
		if err != nil {
			return err
		}

		card.Title = title
		card.Rules = req.Rules
		card.Description = req.Description
		card.Categories = categories
		return r.GameCards().Update(ctx, card)
	})
	if err != nil {
		return nil, fmt.Errorf("updating game card %d: %w", req.ID, err)
	}

	s.log.Info("game card updated", zap.Uint("id", card.ID), zap.String("title", card.Title))
	publish(s.events, s.log, hub.EventGameCardUpdated, CardEvent{ID: card.ID, Title: card.Title})
	return card, nil
}

// Get returns the view of a card by ID.
func (s *GameCardService) Get(ctx context.Context, id uint) (models.GameCardView, error) {
	card, err := s.repo.GameCards().FindByID(ctx, id)
	if err != nil {
		return models.GameCardView{}, err
	}
	return s.view(ctx, *card)
}

// GetByTitle returns the view of a card by its title.
func (s *GameCardService) GetByTitle(ctx context.Context, title string) (models.GameCardView, error) {
	card, err := s.repo.GameCards().FindByTitle(ctx, title)
	if err != nil {
		return models.GameCardView{}, err
	}
	return s.view(ctx, *card)
}

func (s *GameCardService) view(ctx context.Context, card models.GameCard) (models.GameCardView, error) {
	views, err := buildViews(ctx, s.repo, []models.GameCard{card})
	if err != nil {
		return models.GameCardView{}, err
	}
	return views[0], nil
}
