package types

import "github.com/google/uuid"

// UserInfo is the aggregated profile view. IsFollowing is only set when a
// viewer identity was supplied and differs from the profile owner.
type UserInfo struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Avatar          string    `json:"avatar"`
	RecipesCount    int64     `json:"recipes_count"`
	FavoritesCount  int64     `json:"favorites_count"`
	FollowersCount  int64     `json:"followers_count"`
	FollowingCount  int64     `json:"following_count"`
	IsFollowing     *bool     `json:"is_following,omitempty"`
}

// FollowListItem is one row of a followers/following listing, annotated
// with the user's recipe count so clients don't issue per-row queries.
type FollowListItem struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Avatar      string    `json:"avatar"`
	RecipeCount int64     `json:"recipe_count"`
}
