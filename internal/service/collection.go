package service

import (
	"context"
	"errors"
	"fmt"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository"

	"go.uber.org/zap"
)

// CollectionService manages users' favorites (a set) and queues (an ordered list).
//
// Queue removal takes out the first occurrence of a card only. The deletion
// cascade is the one place that strips every occurrence.
type CollectionService struct {
	repo repository.Repository
	log  *zap.Logger
}

// NewCollectionService creates a CollectionService.
func NewCollectionService(repo repository.Repository, log *zap.Logger) *CollectionService {
	return &CollectionService{repo: repo, log: log}
}

// AddToFavorites is idempotent.
func (s *CollectionService) AddToFavorites(ctx context.Context, userID, cardID uint) error {
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		if err := requireUserAndCard(ctx, r, userID, cardID); err != nil {
			return err
		}
		return r.Collections().AddFavorite(ctx, userID, cardID)
	})
	if err != nil {
		return fmt.Errorf("adding favorite: %w", err)
	}
	return nil
}

// RemoveFromFavorites is idempotent; removing a card that is not a favorite does nothing.
func (s *CollectionService) RemoveFromFavorites(ctx context.Context, userID, cardID uint) error {
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		if _, err := r.Users().FindByID(ctx, userID); err != nil {
			return err
		}
		return r.Collections().RemoveFavorite(ctx, userID, cardID)
	})
	if err != nil {
		return fmt.Errorf("removing favorite: %w", err)
	}
	return nil
}

// AddToQueue appends the card to the end of the user's queue. Duplicates are allowed.
func (s *CollectionService) AddToQueue(ctx context.Context, userID, cardID uint) (models.Queue, error) {
	return s.mutateQueue(ctx, userID, func(r repository.Repository, q models.Queue) (models.Queue, bool, error) {
		if _, err := r.GameCards().FindByID(ctx, cardID); err != nil {
			return nil, false, err
		}
		return q.Append(cardID), true, nil
	})
}

// RemoveFromQueue removes the first occurrence of the card. Absent cards are a no-op.
func (s *CollectionService) RemoveFromQueue(ctx context.Context, userID, cardID uint) (models.Queue, error) {
	return s.mutateQueue(ctx, userID, func(_ repository.Repository, q models.Queue) (models.Queue, bool, error) {
		next, removed := q.RemoveFirst(cardID)
		return next, removed, nil
	})
}

// MoveInQueue moves the entry at position from to position to.
func (s *CollectionService) MoveInQueue(ctx context.Context, userID uint, from, to int) (models.Queue, error) {
	return s.mutateQueue(ctx, userID, func(_ repository.Repository, q models.Queue) (models.Queue, bool, error) {
		if len(q) == 0 {
			return nil, false, apperror.ValidationFailed("position", "queue is empty")
		}
		next, err := q.Move(from, to)
		if errors.Is(err, models.ErrPositionOutOfRange) {
			return nil, false, apperror.ValidationFailed("position",
				fmt.Sprintf("positions must be between 0 and %d", len(q)-1))
		}
		return next, from != to, err
	})
}

// QueueIDs returns the raw queue in position order.
func (s *CollectionService) QueueIDs(ctx context.Context, userID uint) (models.Queue, error) {
	return s.repo.Collections().Queue(ctx, userID)
}

// FavoriteIDs returns the IDs of the user's favorite cards.
func (s *CollectionService) FavoriteIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.repo.Collections().FavoriteIDs(ctx, userID)
}

// Favorites returns views of the user's favorite cards, ranked by rating.
func (s *CollectionService) Favorites(ctx context.Context, userID uint) ([]models.GameCardView, error) {
	ids, err := s.repo.Collections().FavoriteIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}
	cards, err := s.repo.GameCards().FindAllByIDIn(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}
	views, err := buildViews(ctx, s.repo, cards)
	if err != nil {
		return nil, err
	}
	models.SortByRating(views)
	return views, nil
}

// Queue returns views of the user's queue in position order, duplicates included.
func (s *CollectionService) Queue(ctx context.Context, userID uint) ([]models.GameCardView, error) {
	queue, err := s.repo.Collections().Queue(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading queue: %w", err)
	}
	cards, err := s.repo.GameCards().FindAllByIDIn(ctx, queue)
	if err != nil {
		return nil, fmt.Errorf("loading queue: %w", err)
	}
	views, err := buildViews(ctx, s.repo, cards)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.GameCardView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	ordered := make([]models.GameCardView, 0, len(queue))
	for _, id := range queue {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// mutateQueue loads, changes and persists a user's queue in one transaction.
// change reports whether anything changed; unchanged queues are not rewritten.
func (s *CollectionService) mutateQueue(
	ctx context.Context,
	userID uint,
	change func(r repository.Repository, q models.Queue) (models.Queue, bool, error),
) (models.Queue, error) {
	var result models.Queue
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		if _, err := r.Users().FindByID(ctx, userID); err != nil {
			return err
		}
		current, err := r.Collections().Queue(ctx, userID)
		if err != nil {
			return err
		}

		next, changed, err := change(r, current)
		if err != nil {
			return err
		}
		if !changed {
			result = current
			return nil
		}
		result = next
		return r.Collections().SaveQueue(ctx, userID, next)
	})
	if err != nil {
		return nil, fmt.Errorf("updating queue: %w", err)
	}
	s.log.Debug("queue updated", zap.Uint("user_id", userID), zap.Int("length", len(result)))
	return result, nil
}

func requireUserAndCard(ctx context.Context, r repository.Repository, userID, cardID uint) error {
	if _, err := r.Users().FindByID(ctx, userID); err != nil {
		return err
	}
	_, err := r.GameCards().FindByID(ctx, cardID)
	return err
}
