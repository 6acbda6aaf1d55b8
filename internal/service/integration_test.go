package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodies-app/backend/internal/models"
	"github.com/foodies-app/backend/internal/testhelpers"
	"github.com/foodies-app/backend/internal/types"
)

// TestRecipeLifecycle_Postgres runs the full create/list/favorite/delete
// path against a real PostgreSQL instance. Skips without docker.
func TestRecipeLifecycle_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	db := testhelpers.SetupTestDatabase(t)
	svc := NewRecipeService(db, newStubBlobStore())
	ctx := context.Background()

	owner := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	category := createTestCategory(t, db, "Dessert")
	flour := createTestIngredient(t, db, "Flour")

	ingredients, err := json.Marshal([]types.IngredientInput{{ID: flour.ID, Measure: "200g"}})
	require.NoError(t, err)

	detail, err := svc.Create(ctx, types.CreateRecipeParams{
		Title:        "cake",
		CategoryID:   category.ID,
		Instructions: "mix and bake",
		Time:         45,
		Ingredients:  ingredients,
	}, owner.ID, &types.Upload{Data: []byte("img"), ContentType: "image/png"})
	require.NoError(t, err)

	require.NoError(t, svc.AddFavorite(ctx, fan.ID, detail.ID))
	// The conflict clause must also hold on postgres.
	require.NoError(t, svc.AddFavorite(ctx, fan.ID, detail.ID))

	popular, err := svc.Popular(ctx, 1, 10, &fan.ID)
	require.NoError(t, err)
	require.Len(t, popular.Results, 1)
	assert.Equal(t, int64(1), popular.Results[0].FavoritesCount)
	require.NotNil(t, popular.Results[0].IsFavorite)
	assert.True(t, *popular.Results[0].IsFavorite)

	require.NoError(t, svc.Delete(ctx, detail.ID, owner.ID))

	var remaining int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&remaining).Error)
	assert.Equal(t, int64(0), remaining)
}
