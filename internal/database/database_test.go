package database_test

import (
	"context"
	"testing"

	"icebreaker/backend/internal/database"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/testing/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	require.NoError(t, database.Seed(ctx, db, []string{"icebreaker", "team"}))
	require.NoError(t, database.Seed(ctx, db, []string{"team"}))

	var roles []models.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	assert.Equal(t, []string{models.RoleUser, models.RoleModerator, models.RoleAdmin}, names)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(5), count) // four from testdb plus "team"
}

func TestSeedWithoutCategories(t *testing.T) {
	db := testdb.New(t)
	assert.NoError(t, database.Seed(context.Background(), db, nil))
}
