package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodies-app/backend/internal/models"
)

func TestLookupCategoriesAndAreas(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLookupService(db)

	createTestCategory(t, db, "Pasta")
	createTestCategory(t, db, "Dessert")
	createTestArea(t, db, "Thai")
	createTestArea(t, db, "French")

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Dessert", categories[0].Name)
	assert.Equal(t, "Pasta", categories[1].Name)

	areas, err := svc.Areas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "French", areas[0].Name)
	assert.Equal(t, "Thai", areas[1].Name)
}

func TestLookupIngredients(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLookupService(db)

	createTestIngredient(t, db, "Basil")
	createTestIngredient(t, db, "Garlic")
	createTestIngredient(t, db, "Ginger")

	page, err := svc.Ingredients(context.Background(), 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int64(2), page.TotalPages)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "Basil", page.Results[0].Name)

	// Name filter is case-insensitive substring.
	filtered, err := svc.Ingredients(context.Background(), 1, 10, "gIn")
	require.NoError(t, err)
	require.Len(t, filtered.Results, 1)
	assert.Equal(t, "Ginger", filtered.Results[0].Name)

	empty, err := svc.Ingredients(context.Background(), 1, 10, "zzz")
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.NotNil(t, empty.Results)
	assert.Empty(t, empty.Results)
}

func TestLookupTestimonials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLookupService(db)

	alice := createTestUser(t, db, "alice")
	older := models.Testimonial{UserID: alice.ID, Text: "older", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.Testimonial{UserID: alice.ID, Text: "newer", CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	testimonials, err := svc.Testimonials(context.Background())
	require.NoError(t, err)
	require.Len(t, testimonials, 2)
	assert.Equal(t, "newer", testimonials[0].Text)
	assert.Equal(t, "older", testimonials[1].Text)
}
