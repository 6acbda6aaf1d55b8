package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodies-app/backend/internal/database"
	"github.com/foodies-app/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// stubBlobStore is an in-memory BlobStore recording every upload.
type stubBlobStore struct {
	uploads map[string][]byte
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{uploads: make(map[string][]byte)}
}

func (s *stubBlobStore) UploadRecipeThumb(_ context.Context, recipeID uuid.UUID, data []byte, _ string) (string, error) {
	key := fmt.Sprintf("recipes/%s/thumb", recipeID)
	s.uploads[key] = data
	return key, nil
}

func (s *stubBlobStore) UploadAvatar(_ context.Context, userID uuid.UUID, data []byte, _ string) (string, error) {
	key := fmt.Sprintf("avatars/%s/avatar", userID)
	s.uploads[key] = data
	return key, nil
}

func (s *stubBlobStore) ResolveURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return "https://cdn.test/" + key, nil
}

// recordingMailer captures verification emails instead of sending them.
type recordingMailer struct {
	sent []sentMail
}

type sentMail struct {
	To    string
	Token string
}

func (m *recordingMailer) SendVerificationEmail(to, token string) error {
	m.sent = append(m.sent, sentMail{To: to, Token: token})
	return nil
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Verified:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createTestArea(t *testing.T, db *gorm.DB, name string) models.Area {
	t.Helper()

	area := models.Area{Name: name}
	require.NoError(t, db.Create(&area).Error)
	return area
}

func createTestIngredient(t *testing.T, db *gorm.DB, name string) models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{Name: name}
	require.NoError(t, db.Create(&ingredient).Error)
	return ingredient
}

// createTestRecipe inserts a recipe with an explicit creation time so
// ordering assertions are deterministic.
func createTestRecipe(t *testing.T, db *gorm.DB, owner models.User, category models.Category, title string, createdAt time.Time) models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		ID:           uuid.New(),
		CreatedAt:    createdAt,
		Title:        title,
		CategoryID:   category.ID,
		UserID:       owner.ID,
		Instructions: "cook it",
		Description:  "a test recipe",
		Thumb:        "recipes/test/thumb",
		Time:         30,
	}
	require.NoError(t, db.Create(&recipe).Error)
	return recipe
}

func favoriteRecipe(t *testing.T, db *gorm.DB, user models.User, recipe models.Recipe) {
	t.Helper()

	fav := models.UserFavorite{UserID: user.ID, RecipeID: recipe.ID}
	require.NoError(t, db.Create(&fav).Error)
}
