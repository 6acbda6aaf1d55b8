package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodies-app/backend/internal/types"
)

func TestUserInfo_Counts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, newStubBlobStore())
	social := NewSocialService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	category := createTestCategory(t, db, "Dessert")

	createTestRecipe(t, db, alice, category, "one", time.Now())
	createTestRecipe(t, db, alice, category, "two", time.Now())
	liked := createTestRecipe(t, db, bob, category, "liked", time.Now())
	favoriteRecipe(t, db, alice, liked)

	require.NoError(t, social.Follow(context.Background(), bob.ID, alice.ID))
	require.NoError(t, social.Follow(context.Background(), carol.ID, alice.ID))
	require.NoError(t, social.Follow(context.Background(), alice.ID, bob.ID))

	info, err := svc.Info(context.Background(), alice.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, int64(2), info.RecipesCount)
	assert.Equal(t, int64(1), info.FavoritesCount)
	assert.Equal(t, int64(2), info.FollowersCount)
	assert.Equal(t, int64(1), info.FollowingCount)
	assert.Nil(t, info.IsFollowing)
}

func TestUserInfo_IsFollowingVisibility(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, newStubBlobStore())
	social := NewSocialService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	require.NoError(t, social.Follow(context.Background(), bob.ID, alice.ID))

	// Viewer looking at someone they follow.
	info, err := svc.Info(context.Background(), alice.ID, &bob.ID)
	require.NoError(t, err)
	require.NotNil(t, info.IsFollowing)
	assert.True(t, *info.IsFollowing)

	// Viewer looking at someone they do not follow.
	info, err = svc.Info(context.Background(), bob.ID, &alice.ID)
	require.NoError(t, err)
	require.NotNil(t, info.IsFollowing)
	assert.False(t, *info.IsFollowing)

	// Viewer looking at themselves: the flag is meaningless, so absent.
	info, err = svc.Info(context.Background(), alice.ID, &alice.ID)
	require.NoError(t, err)
	assert.Nil(t, info.IsFollowing)
}

func TestUserInfo_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, newStubBlobStore())

	_, err := svc.Info(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateAvatar(t *testing.T) {
	db := setupTestDB(t)
	blobs := newStubBlobStore()
	svc := NewUserService(db, blobs)

	alice := createTestUser(t, db, "alice")

	url, err := svc.UpdateAvatar(context.Background(), alice.ID, &types.Upload{
		Data:        []byte("img"),
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Contains(t, url, "avatars/")

	info, err := svc.Info(context.Background(), alice.ID, nil)
	require.NoError(t, err)
	assert.Contains(t, info.Avatar, "avatars/")

	_, err = svc.UpdateAvatar(context.Background(), alice.ID, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateAvatar(context.Background(), uuid.New(), &types.Upload{Data: []byte("img")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
