package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("updating card: %w", Conflict("title taken"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "updating card: title taken", err.Error())
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("game card", "id", 7)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "game card not found with id 7", err.Error())
}

func TestValidationCarriesField(t *testing.T) {
	var appErr *AppError
	err := fmt.Errorf("rate: %w", ValidationFailed("score", "score must be between 1 and 5"))

	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "score", appErr.Field)
	assert.ErrorIs(t, err, ErrValidation)
}
