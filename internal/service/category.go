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

// CategoryService lists and creates categories. Categories are never deleted.
type CategoryService struct {
	repo repository.Repository
	log  *zap.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(repo repository.Repository, log *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

// List returns every category ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories().FindAll(ctx)
}

// Create adds a category; names are unique.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "category name is required")
	}

	category := &models.Category{Name: name}
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		exists, err := r.Categories().ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return apperror.Conflict(fmt.Sprintf("category %q already exists", name))
		}
		return r.Categories().Create(ctx, category)
	})
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	s.log.Info("category created", zap.Uint("id", category.ID), zap.String("name", name))
	return category, nil
}
