package gormstore

import (
	"context"

	"icebreaker/backend/internal/models"

	"gorm.io/gorm"
)

type ratingRepository struct{ db *gorm.DB }

func (r *ratingRepository) FindByUserAndCard(ctx context.Context, userID, cardID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_card_id = ?", userID, cardID).
		First(&rating).Error
	if err != nil {
		return nil, translate(err, "rating", "game card id", cardID)
	}
	return &rating, nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, translate(err, "rating", "id", id)
	}
	return &rating, nil
}

func (r *ratingRepository) FindByCard(ctx context.Context, cardID uint) ([]models.Rating, error) {
	ratings := []models.Rating{}
	err := r.db.WithContext(ctx).Preload("User").
		Where("game_card_id = ?", cardID).
		Order("updated_at DESC").Order("id DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) Save(ctx context.Context, rating *models.Rating) error {
	return translate(r.db.WithContext(ctx).Omit("User").Save(rating).Error, "rating", "game card id", rating.GameCardID)
}

func (r *ratingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Rating{}, id).Error
}

func (r *ratingRepository) IDsByCard(ctx context.Context, cardID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("game_card_id = ?", cardID).Pluck("id", &ids).Error
	return ids, err
}

func (r *ratingRepository) IDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

func (r *ratingRepository) DeleteByCard(ctx context.Context, cardID uint) error {
	return r.db.WithContext(ctx).Where("game_card_id = ?", cardID).Delete(&models.Rating{}).Error
}

func (r *ratingRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Rating{}).Error
}

func (r *ratingRepository) Summaries(ctx context.Context, cardIDs []uint) (map[uint]models.RatingSummary, error) {
	summaries := make(map[uint]models.RatingSummary)
	if cardIDs != nil && len(cardIDs) == 0 {
		return summaries, nil
	}

	query := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("game_card_id, CAST(AVG(score) AS FLOAT) AS average, COUNT(*) AS rating_count").
		Group("game_card_id")
	if cardIDs != nil {
		query = query.Where("game_card_id IN ?", cardIDs)
	}

	var rows []models.RatingSummary
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		summaries[row.GameCardID] = row
	}
	return summaries, nil
}
