package service

import (
	"context"
	"errors"
	"fmt"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/hub"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository"

	"go.uber.org/zap"
)

// DeletionService removes game cards together with every reference to them.
//
// A deletion runs in three steps inside one transaction:
//  1. locate the card (by ID or title),
//  2. scrub it from the favorites and queue of every holder, one user at a time,
//  3. delete its ratings and card reports, then the card itself.
//
// A failure at any step rolls back all of them, so retrying a failed deletion
// starts from the same state and ends in the same place.
type DeletionService struct {
	repo   repository.Repository
	events EventPublisher
	log    *zap.Logger
}

// NewDeletionService creates a DeletionService publishing to events.
func NewDeletionService(repo repository.Repository, events EventPublisher, log *zap.Logger) *DeletionService {
	return &DeletionService{repo: repo, events: events, log: log}
}

// DeletionResult describes what a completed deletion touched.
type DeletionResult struct {
	Card           models.GameCard
	ScrubbedUsers  int
	RemovedRatings int
}

// DeleteByID deletes the card with the given ID.
func (s *DeletionService) DeleteByID(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.delete(ctx, func(r repository.Repository) (*models.GameCard, error) {
		return r.GameCards().FindByID(ctx, id)
	})
}

// DeleteByTitle deletes the card with the given title.
func (s *DeletionService) DeleteByTitle(ctx context.Context, title string) (*DeletionResult, error) {
	return s.delete(ctx, func(r repository.Repository) (*models.GameCard, error) {
		return r.GameCards().FindByTitle(ctx, title)
	})
}

func (s *DeletionService) delete(
	ctx context.Context,
	locate func(r repository.Repository) (*models.GameCard, error),
) (*DeletionResult, error) {
	result := &DeletionResult{}

	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		card, err := locate(r)
		if err != nil {
			return err
		}
		result.Card = *card

		holders, err := r.Collections().HoldersOf(ctx, card.ID)
		if err != nil {
			return fmt.Errorf("finding holders: %w", err)
		}
		for _, userID := range holders {
			if err := scrubUser(ctx, r, userID, card.ID); err != nil {
				return fmt.Errorf("scrubbing user %d: %w", userID, err)
			}
		}
		result.ScrubbedUsers = len(holders)

		ratingIDs, err := r.Ratings().IDsByCard(ctx, card.ID)
		if err != nil {
			return err
		}
		if err := r.Reports().DetachRatings(ctx, ratingIDs); err != nil {
			return fmt.Errorf("detaching comment reports: %w", err)
		}
		if err := r.Ratings().DeleteByCard(ctx, card.ID); err != nil {
			return fmt.Errorf("deleting ratings: %w", err)
		}
		result.RemovedRatings = len(ratingIDs)

		if err := r.Reports().DeleteGameCardReportsByCard(ctx, card.ID); err != nil {
			return fmt.Errorf("deleting card reports: %w", err)
		}
		return r.GameCards().Delete(ctx, card.ID)
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.log.Error("game card deletion rolled back", zap.Error(err))
		}
		return nil, fmt.Errorf("deleting game card: %w", err)
	}

	s.log.Info("game card deleted",
		zap.Uint("id", result.Card.ID),
		zap.String("title", result.Card.Title),
		zap.Int("scrubbed_users", result.ScrubbedUsers),
		zap.Int("removed_ratings", result.RemovedRatings),
	)
	publish(s.events, s.log, hub.EventGameCardDeleted, CardEvent{ID: result.Card.ID, Title: result.Card.Title})
	return result, nil
}

// scrubUser removes the card from the user's favorites and every occurrence from their queue.
func scrubUser(ctx context.Context, r repository.Repository, userID, cardID uint) error {
	if err := r.Collections().RemoveFavorite(ctx, userID, cardID); err != nil {
		return err
	}

	queue, err := r.Collections().Queue(ctx, userID)
	if err != nil {
		return err
	}
	next, removed := queue.RemoveAll(cardID)
	if removed == 0 {
		return nil
	}
	return r.Collections().SaveQueue(ctx, userID, next)
}
