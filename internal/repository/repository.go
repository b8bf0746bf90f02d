// Package repository declares the storage contracts the catalog services run on.
// Lookups of a single entity return an apperror.ErrNotFound kind when absent.
package repository

import (
	"context"

	"icebreaker/backend/internal/models"
)

// Repository groups the stores that make up one unit of work.
type Repository interface {
	Categories() CategoryRepository
	GameCards() GameCardRepository
	Users() UserRepository
	Collections() CollectionRepository
	Ratings() RatingRepository
	Reports() ReportRepository

	// Transaction runs fn against stores bound to a single transaction.
	// Any error returned by fn rolls the whole unit back.
	Transaction(ctx context.Context, fn func(r Repository) error) error
}

// CategoryRepository stores categories.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	// FindAllByNameIn returns only the categories whose names match; unknown names are skipped.
	FindAllByNameIn(ctx context.Context, names []string) ([]*models.Category, error)
	FindAllByIDIn(ctx context.Context, ids []uint) ([]*models.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, category *models.Category) error
}

// GameCardRepository stores game cards and their category links.
type GameCardRepository interface {
	FindByID(ctx context.Context, id uint) (*models.GameCard, error)
	FindByTitle(ctx context.Context, title string) (*models.GameCard, error)
	FindAll(ctx context.Context) ([]models.GameCard, error)
	// FindAllByCategoriesIn returns cards in any of the categories, each card once.
	FindAllByCategoriesIn(ctx context.Context, categoryIDs []uint) ([]models.GameCard, error)
	FindAllByIDIn(ctx context.Context, ids []uint) ([]models.GameCard, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, card *models.GameCard) error
	// Update overwrites the mutable fields and replaces the category set.
	Update(ctx context.Context, card *models.GameCard) error
	// Delete removes the card and its category links. It does not touch user collections.
	Delete(ctx context.Context, id uint) error
}

// UserRepository stores users and roles.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	// FindByLogin matches either username or email.
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	FindRolesByName(ctx context.Context, names ...string) ([]*models.Role, error)
}

// CollectionRepository stores favorites and queues.
type CollectionRepository interface {
	// FavoriteIDs returns the user's favorite card IDs in ascending order.
	FavoriteIDs(ctx context.Context, userID uint) ([]uint, error)
	// AddFavorite is a no-op if the pair already exists.
	AddFavorite(ctx context.Context, userID, cardID uint) error
	// RemoveFavorite is a no-op if the pair does not exist.
	RemoveFavorite(ctx context.Context, userID, cardID uint) error

	// Queue returns the user's queue in position order.
	Queue(ctx context.Context, userID uint) (models.Queue, error)
	// SaveQueue replaces the user's queue, writing positions 0..n-1.
	SaveQueue(ctx context.Context, userID uint, queue models.Queue) error

	// HoldersOf returns the IDs of users whose favorites or queue reference cardID.
	HoldersOf(ctx context.Context, cardID uint) ([]uint, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// RatingRepository stores ratings and computes their aggregates.
type RatingRepository interface {
	FindByUserAndCard(ctx context.Context, userID, cardID uint) (*models.Rating, error)
	FindByID(ctx context.Context, id uint) (*models.Rating, error)
	// FindByCard returns the card's ratings with users preloaded, newest first.
	FindByCard(ctx context.Context, cardID uint) ([]models.Rating, error)
	Save(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, id uint) error
	IDsByCard(ctx context.Context, cardID uint) ([]uint, error)
	IDsByUser(ctx context.Context, userID uint) ([]uint, error)
	DeleteByCard(ctx context.Context, cardID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
	// Summaries aggregates ratings per card. A nil cardIDs slice means every card.
	Summaries(ctx context.Context, cardIDs []uint) (map[uint]models.RatingSummary, error)
}

// ReportRepository stores moderation reports.
type ReportRepository interface {
	CreateGameCardReport(ctx context.Context, report *models.GameCardReport) error
	CreateCommentReport(ctx context.Context, report *models.CommentReport) error
	ListGameCardReports(ctx context.Context) ([]models.GameCardReport, error)
	ListCommentReports(ctx context.Context) ([]models.CommentReport, error)
	DeleteGameCardReportsByCard(ctx context.Context, cardID uint) error
	// DetachRatings clears the rating reference of comment reports on the given ratings.
	DetachRatings(ctx context.Context, ratingIDs []uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}
