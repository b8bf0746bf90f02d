package gormstore

import (
	"context"

	"icebreaker/backend/internal/models"

	"gorm.io/gorm"
)

type reportRepository struct{ db *gorm.DB }

func (r *reportRepository) CreateGameCardReport(ctx context.Context, report *models.GameCardReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) CreateCommentReport(ctx context.Context, report *models.CommentReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) ListGameCardReports(ctx context.Context) ([]models.GameCardReport, error) {
	reports := []models.GameCardReport{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) ListCommentReports(ctx context.Context) ([]models.CommentReport, error) {
	reports := []models.CommentReport{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) DeleteGameCardReportsByCard(ctx context.Context, cardID uint) error {
	return r.db.WithContext(ctx).Where("game_card_id = ?", cardID).Delete(&models.GameCardReport{}).Error
}

func (r *reportRepository) DetachRatings(ctx context.Context, ratingIDs []uint) error {
	if len(ratingIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.CommentReport{}).
		Where("rating_id IN ?", ratingIDs).
		Update("rating_id", nil).Error
}

func (r *reportRepository) DeleteByUser(ctx context.Context, userID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&models.CommentReport{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&models.GameCardReport{}).Error
}
