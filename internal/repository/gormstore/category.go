package gormstore

import (
	"context"

	"icebreaker/backend/internal/models"

	"gorm.io/gorm"
)

type categoryRepository struct{ db *gorm.DB }

func (r *categoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindAllByNameIn(ctx context.Context, names []string) ([]*models.Category, error) {
	categories := []*models.Category{}
	if len(names) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindAllByIDIn(ctx context.Context, ids []uint) ([]*models.Category, error) {
	categories := []*models.Category{}
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error, "category", "name", category.Name)
}
