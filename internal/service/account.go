package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"icebreaker/backend/internal/apperror"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository"
	"icebreaker/backend/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AccountService registers, authenticates and removes users.
type AccountService struct {
	repo      repository.Repository
	jwtSecret string
	tokenTTL  time.Duration
	log       *zap.Logger
}

// NewAccountService creates an AccountService that signs tokens with jwtSecret.
func NewAccountService(repo repository.Repository, jwtSecret string, tokenTTL time.Duration, log *zap.Logger) *AccountService {
	return &AccountService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a user with the default role and returns a token for them.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: string(hashedPassword)}
	err = s.repo.Transaction(ctx, func(r repository.Repository) error {
		exists, err := r.Users().ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return err
		}
		if exists {
			return apperror.Conflict("username or email already exists")
		}

		roles, err := r.Users().FindRolesByName(ctx, models.RoleUser)
		if err != nil {
			return err
		}
		user.Roles = roles
		return r.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, "", fmt.Errorf("registering user: %w", err)
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.ID, user.RoleNames(), s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	s.log.Info("user registered", zap.Uint("id", user.ID), zap.String("username", username))
	return user, token, nil
}

// Login checks the password of the user matching login (username or email).
func (s *AccountService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.repo.Users().FindByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, apperror.ErrNotFound) {
		return "", apperror.Unauthorized("invalid credentials")
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperror.Unauthorized("invalid credentials")
	}

	token, err := jwt.GenerateToken(s.jwtSecret, user.ID, user.RoleNames(), s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}

// Me loads the caller together with their roles.
func (s *AccountService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.repo.Users().FindByID(ctx, userID)
}

// Delete removes a user along with everything the user owns: ratings, reports and collections.
// Other users' reports on this user's comments are kept but detached.
func (s *AccountService) Delete(ctx context.Context, userID uint) error {
	err := s.repo.Transaction(ctx, func(r repository.Repository) error {
		if _, err := r.Users().FindByID(ctx, userID); err != nil {
			return err
		}

		ratingIDs, err := r.Ratings().IDsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := r.Reports().DetachRatings(ctx, ratingIDs); err != nil {
			return err
		}
		if err := r.Ratings().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := r.Reports().DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := r.Collections().DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		return r.Users().Delete(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", userID, err)
	}

	s.log.Info("user deleted", zap.Uint("id", userID))
	return nil
}
