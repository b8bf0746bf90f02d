// Package gormstore implements the repository contracts on top of GORM.
package gormstore

import (
	"context"
	"errors"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/repository"

	"gorm.io/gorm"
)

// Store is the GORM-backed repository.Repository.
type Store struct {
	db *gorm.DB
}

var _ repository.Repository = (*Store)(nil)

// New wraps an open GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Categories() repository.CategoryRepository { return &categoryRepository{db: s.db} }
func (s *Store) GameCards() repository.GameCardRepository { return &gameCardRepository{db: s.db} }
func (s *Store) Users() repository.UserRepository { return &userRepository{db: s.db} }
func (s *Store) Collections() repository.CollectionRepository { return &collectionRepository{db: s.db} }
func (s *Store) Ratings() repository.RatingRepository { return &ratingRepository{db: s.db} }
func (s *Store) Reports() repository.ReportRepository { return &reportRepository{db: s.db} }

// Transaction runs fn inside a GORM transaction. Nested calls use savepoints.
func (s *Store) Transaction(ctx context.Context, fn func(r repository.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// translate maps GORM sentinels onto apperror kinds.
func translate(err error, resource, key string, value any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(resource, key, value)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict(resource + " already exists")
	default:
		return err
	}
}
