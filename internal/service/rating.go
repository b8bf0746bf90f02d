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

// RatingService records users' scores and comments on cards.
type RatingService struct {
	repo   repository.Repository
	events EventPublisher
	log    *zap.Logger
}

// NewRatingService creates a RatingService publishing to events.
func NewRatingService(repo repository.Repository, events EventPublisher, log *zap.Logger) *RatingService {
	return &RatingService{repo: repo, events: events, log: log}
}

// Rate sets the user's rating of a card. Rating the same card again replaces the earlier one.
func (s *RatingService) Rate(ctx context.Context, userID, cardID uint, score int, comment string) (*models.Rating, error) {
	if score < models.MinScore || score > models.MaxScore {
		return nil, apperror.ValidationFailed("score",
			fmt.Sprintf("score must be between %d and %d", models.MinScore, models.MaxScore))
	}

	var rating *models.Rating
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		if err := requireUserAndCard(ctx, r, userID, cardID); err != nil {
			return err
		}

		existing, err := r.Ratings().FindByUserAndCard(ctx, userID, cardID)
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			rating = &models.Rating{UserID: userID, GameCardID: cardID}
		case err != nil:
			return err
		default:
			rating = existing
		}

		rating.Score = score
		rating.Comment = strings.TrimSpace(comment)
		return r.Ratings().Save(ctx, rating)
	})
	if err != nil {
		return nil, fmt.Errorf("rating game card %d: %w", cardID, err)
	}

	s.log.Info("game card rated", zap.Uint("game_card_id", cardID), zap.Uint("user_id", userID), zap.Int("score", score))
	publish(s.events, s.log, hub.EventGameCardRated, CardEvent{ID: cardID})
	return rating, nil
}

// ForCard lists a card's ratings with their authors, newest first.
func (s *RatingService) ForCard(ctx context.Context, cardID uint) ([]models.Rating, error) {
	if _, err := s.repo.GameCards().FindByID(ctx, cardID); err != nil {
		return nil, err
	}
	return s.repo.Ratings().FindByCard(ctx, cardID)
}

// Remove deletes the user's rating of a card. Reports on its comment are kept but detached.
func (s *RatingService) Remove(ctx context.Context, userID, cardID uint) error {
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		rating, err := r.Ratings().FindByUserAndCard(ctx, userID, cardID)
		if err != nil {
			return err
		}
		if err := r.Reports().DetachRatings(ctx, []uint{rating.ID}); err != nil {
			return err
		}
		return r.Ratings().Delete(ctx, rating.ID)
	})
	if err != nil {
		return fmt.Errorf("removing rating: %w", err)
	}

	s.log.Info("game card rating removed", zap.Uint("game_card_id", cardID), zap.Uint("user_id", userID))
	publish(s.events, s.log, hub.EventGameCardRated, CardEvent{ID: cardID})
	return nil
}
