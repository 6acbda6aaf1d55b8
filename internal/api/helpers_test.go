package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodies-app/backend/config"
	"github.com/foodies-app/backend/internal/database"
	"github.com/foodies-app/backend/internal/models"
)

const testPassword = "s3cret-pass"

// memoryBlobStore keeps uploads in memory for handler tests.
type memoryBlobStore struct {
	uploads map[string][]byte
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{uploads: make(map[string][]byte)}
}

func (s *memoryBlobStore) UploadRecipeThumb(_ context.Context, recipeID uuid.UUID, data []byte, _ string) (string, error) {
	key := fmt.Sprintf("recipes/%s/thumb", recipeID)
	s.uploads[key] = data
	return key, nil
}

func (s *memoryBlobStore) UploadAvatar(_ context.Context, userID uuid.UUID, data []byte, _ string) (string, error) {
	key := fmt.Sprintf("avatars/%s/avatar", userID)
	s.uploads[key] = data
	return key, nil
}

func (s *memoryBlobStore) ResolveURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return "https://cdn.test/" + key, nil
}

// setupTestServer builds the full route tree against an in-memory sqlite
// database. Rate limiting is off (no Redis).
func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		PublicURL: "http://localhost:3000",
	}

	router := gin.New()
	RegisterRoutes(router, db, cfg, newMemoryBlobStore(), nil)
	return router, db
}

func createVerifiedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hashed),
		Verified:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// loginToken logs a user in through the API and returns the session token.
func loginToken(t *testing.T, router *gin.Engine, user models.User) string {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"email":    user.Email,
		"password": testPassword,
	})
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/auth/login", bytes.NewReader(body), "", "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doRequest(router *gin.Engine, method, path string, body io.Reader, token, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createRecipe(t *testing.T, db *gorm.DB, owner models.User, category models.Category, title string) models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		Title:        title,
		CategoryID:   category.ID,
		UserID:       owner.ID,
		Instructions: "cook it",
		Thumb:        "recipes/test/thumb",
		Time:         30,
	}
	require.NoError(t, db.Create(&recipe).Error)
	return recipe
}
