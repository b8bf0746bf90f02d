package gormstore

import (
	"context"

	"icebreaker/backend/internal/models"

	"gorm.io/gorm"
)

type gameCardRepository struct{ db *gorm.DB }

func (r *gameCardRepository) FindByID(ctx context.Context, id uint) (*models.GameCard, error) {
	var card models.GameCard
	if err := r.db.WithContext(ctx).Preload("Categories").First(&card, id).Error; err != nil {
		return nil, translate(err, "game card", "id", id)
	}
	return &card, nil
}

func (r *gameCardRepository) FindByTitle(ctx context.Context, title string) (*models.GameCard, error) {
	var card models.GameCard
	if err := r.db.WithContext(ctx).Preload("Categories").Where("title = ?", title).First(&card).Error; err != nil {
		return nil, translate(err, "game card", "title", title)
	}
	return &card, nil
}

func (r *gameCardRepository) FindAll(ctx context.Context) ([]models.GameCard, error) {
	var cards []models.GameCard
	if err := r.db.WithContext(ctx).Preload("Categories").Order("id").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *gameCardRepository) FindAllByCategoriesIn(ctx context.Context, categoryIDs []uint) ([]models.GameCard, error) {
	cards := []models.GameCard{}
	if len(categoryIDs) == 0 {
		return cards, nil
	}

	db := r.db.WithContext(ctx)
	// Subquery instead of a join so a card in several matching categories appears once.
	linked := db.Table("game_card_categories").Select("game_card_id").Where("category_id IN ?", categoryIDs)

	err := db.Preload("Categories").Where("id IN (?)", linked).Order("id").Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *gameCardRepository) FindAllByIDIn(ctx context.Context, ids []uint) ([]models.GameCard, error) {
	cards := []models.GameCard{}
	if len(ids) == 0 {
		return cards, nil
	}
	if err := r.db.WithContext(ctx).Preload("Categories").Where("id IN ?", ids).Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *gameCardRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GameCard{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}

func (r *gameCardRepository) Create(ctx context.Context, card *models.GameCard) error {
	return translate(r.db.WithContext(ctx).Create(card).Error, "game card", "title", card.Title)
}

func (r *gameCardRepository) Update(ctx context.Context, card *models.GameCard) error {
	db := r.db.WithContext(ctx)

	// Column updates first, then replace the category set as a whole.
	err := db.Model(card).Updates(map[string]any{
		"title":       card.Title,
		"rules":       card.Rules,
		"description": card.Description,
	}).Error
	if err != nil {
		return translate(err, "game card", "title", card.Title)
	}

	association := db.Model(card).Association("Categories")
	if len(card.Categories) == 0 {
		return association.Clear()
	}
	return association.Replace(card.Categories)
}

func (r *gameCardRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Categories").Delete(&models.GameCard{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "game card", "id", id)
	}
	return nil
}
