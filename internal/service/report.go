package service

import (
	"context"
	"fmt"
	"strings"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository"

	"go.uber.org/zap"
)

// ReportService records moderation flags on cards and rating comments.
type ReportService struct {
	repo repository.Repository
	log  *zap.Logger
}

// NewReportService creates a ReportService.
func NewReportService(repo repository.Repository, log *zap.Logger) *ReportService {
	return &ReportService{repo: repo, log: log}
}

// Reports is the moderation queue.
type Reports struct {
	GameCards []models.GameCardReport
	Comments  []models.CommentReport
}

// ReportGameCard flags a card for moderators. The reason must not be blank.
func (s *ReportService) ReportGameCard(ctx context.Context, userID, cardID uint, reason string) (*models.GameCardReport, error) {
	reason, err := requireReason(reason)
	if err != nil {
		return nil, err
	}

	report := &models.GameCardReport{UserID: userID, GameCardID: cardID, Reason: reason}
	err = s.repo.Transaction(ctx, func(r repository.Repository) error {
		if err := requireUserAndCard(ctx, r, userID, cardID); err != nil {
			return err
		}
		return r.Reports().CreateGameCardReport(ctx, report)
	})
	if err != nil {
		return nil, fmt.Errorf("reporting game card %d: %w", cardID, err)
	}

	s.log.Info("game card reported", zap.Uint("game_card_id", cardID), zap.Uint("user_id", userID))
	return report, nil
}

// ReportComment flags the comment on a rating for moderators.
func (s *ReportService) ReportComment(ctx context.Context, userID, ratingID uint, reason string) (*models.CommentReport, error) {
	reason, err := requireReason(reason)
	if err != nil {
		return nil, err
	}

	report := &models.CommentReport{UserID: userID, RatingID: &ratingID, Reason: reason}
	err = s.repo.Transaction(ctx, func(r repository.Repository) error {
		if _, err := r.Users().FindByID(ctx, userID); err != nil {
			return err
		}
		if _, err := r.Ratings().FindByID(ctx, ratingID); err != nil {
			return err
		}
		return r.Reports().CreateCommentReport(ctx, report)
	})
	if err != nil {
		return nil, fmt.Errorf("reporting comment %d: %w", ratingID, err)
	}

	s.log.Info("comment reported", zap.Uint("rating_id", ratingID), zap.Uint("user_id", userID))
	return report, nil
}

// List returns all open reports, newest first.
func (s *ReportService) List(ctx context.Context) (*Reports, error) {
	cards, err := s.repo.Reports().ListGameCardReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing card reports: %w", err)
	}
	comments, err := s.repo.Reports().ListCommentReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing comment reports: %w", err)
	}
	return &Reports{GameCards: cards, Comments: comments}, nil
}

func requireReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", apperror.ValidationFailed("reason", "reason is required")
	}
	return reason, nil
}
