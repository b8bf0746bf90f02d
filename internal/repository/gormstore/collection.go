package gormstore

import (
	"context"
	"sort"

	"icebreaker/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collectionRepository struct{ db *gorm.DB }

func (r *collectionRepository) FavoriteIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("game_card_id").
		Pluck("game_card_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *collectionRepository) AddFavorite(ctx context.Context, userID, cardID uint) error {
	favorite := models.Favorite{UserID: userID, GameCardID: cardID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error
}

func (r *collectionRepository) RemoveFavorite(ctx context.Context, userID, cardID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND game_card_id = ?", userID, cardID).
		Delete(&models.Favorite{}).Error
}

func (r *collectionRepository) Queue(ctx context.Context, userID uint) (models.Queue, error) {
	var entries []models.QueueEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	queue := make(models.Queue, len(entries))
	for i, e := range entries {
		queue[i] = e.GameCardID
	}
	return queue, nil
}

func (r *collectionRepository) SaveQueue(ctx context.Context, userID uint, queue models.Queue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.QueueEntry{}).Error; err != nil {
			return err
		}
		if len(queue) == 0 {
			return nil
		}
		entries := queue.Entries(userID)
		return tx.Create(&entries).Error
	})
}

func (r *collectionRepository) HoldersOf(ctx context.Context, cardID uint) ([]uint, error) {
	db := r.db.WithContext(ctx)

	var fromFavorites, fromQueues []uint
	if err := db.Model(&models.Favorite{}).Where("game_card_id = ?", cardID).
		Distinct().Pluck("user_id", &fromFavorites).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.QueueEntry{}).Where("game_card_id = ?", cardID).
		Distinct().Pluck("user_id", &fromQueues).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(fromFavorites)+len(fromQueues))
	holders := []uint{}
	for _, id := range append(fromFavorites, fromQueues...) {
		if !seen[id] {
			seen[id] = true
			holders = append(holders, id)
		}
	}
	sort.Slice(holders, func(i, j int) bool { return holders[i] < holders[j] })
	return holders, nil
}

func (r *collectionRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&models.QueueEntry{}).Error
}
