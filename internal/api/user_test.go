package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodies-app/backend/internal/models"
)

func TestUserMe(t *testing.T) {
	router, db := setupTestServer(t)

	user := createVerifiedUser(t, db, "alice")
	category := createCategory(t, db, "Dessert")
	createRecipe(t, db, user, category, "cake")

	token := loginToken(t, router, user)
	w := doRequest(router, http.MethodGet, "/api/users/me", nil, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Username     string `json:"username"`
		RecipesCount int64  `json:"recipes_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, int64(1), resp.RecipesCount)

	w = doRequest(router, http.MethodGet, "/api/users/me", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserInfo_FollowFlag(t *testing.T) {
	router, db := setupTestServer(t)

	alice := createVerifiedUser(t, db, "alice")
	bob := createVerifiedUser(t, db, "bob")
	require.NoError(t, db.Create(&models.UserFollow{FollowerID: bob.ID, FollowingID: alice.ID}).Error)

	// Anonymous: no flag.
	w := doRequest(router, http.MethodGet, "/api/users/"+alice.ID.String(), nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var anon map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &anon))
	_, present := anon["is_following"]
	assert.False(t, present)

	// Authenticated viewer: flag reflects the edge.
	token := loginToken(t, router, bob)
	w = doRequest(router, http.MethodGet, "/api/users/"+alice.ID.String(), nil, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var seen struct {
		IsFollowing *bool `json:"is_following"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &seen))
	require.NotNil(t, seen.IsFollowing)
	assert.True(t, *seen.IsFollowing)
}

func TestFollowEndpoints(t *testing.T) {
	router, db := setupTestServer(t)

	alice := createVerifiedUser(t, db, "alice")
	bob := createVerifiedUser(t, db, "bob")
	token := loginToken(t, router, alice)

	w := doRequest(router, http.MethodPost, "/api/users/"+bob.ID.String()+"/follow", nil, token, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	// Self-follow is rejected.
	w = doRequest(router, http.MethodPost, "/api/users/"+alice.ID.String()+"/follow", nil, token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/users/following", nil, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var following []struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &following))
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	w = doRequest(router, http.MethodGet, "/api/users/"+bob.ID.String()+"/followers", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var followers []struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &followers))
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	w = doRequest(router, http.MethodDelete, "/api/users/"+bob.ID.String()+"/follow", nil, token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/users/following", nil, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	following = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &following))
	assert.Empty(t, following)
}

func TestFollowUnknownUser(t *testing.T) {
	router, db := setupTestServer(t)

	alice := createVerifiedUser(t, db, "alice")
	token := loginToken(t, router, alice)

	w := doRequest(router, http.MethodPost, "/api/users/9c7a6c8e-0000-0000-0000-000000000000/follow", nil, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
