package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UserRef is the creator slice of a recipe response.
type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type AreaRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type IngredientRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Img         string    `json:"img"`
	Description string    `json:"description"`
}

// RecipeIngredientItem is one entry of a recipe's ingredient list.
type RecipeIngredientItem struct {
	Measure    string        `json:"measure"`
	Ingredient IngredientRef `json:"ingredient"`
}

// RecipeSummary is a recipe row as returned by list endpoints, with the
// creator, category and area joined in. IsFavorite is nil (and omitted
// from JSON) for anonymous requests; a known non-favorite is &false.
type RecipeSummary struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Thumb          string       `json:"thumb"`
	Time           int          `json:"time"`
	Owner          UserRef      `json:"owner"`
	Category       *CategoryRef `json:"category,omitempty"`
	Area           *AreaRef     `json:"area,omitempty"`
	IsFavorite     *bool        `json:"is_favorite,omitempty"`
	FavoritesCount int64        `json:"favorites_count,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// RecipeDetail adds the full instructions and ingredient list to a summary.
type RecipeDetail struct {
	RecipeSummary
	Instructions      string                 `json:"instructions"`
	RecipeIngredients []RecipeIngredientItem `json:"recipe_ingredients"`
}

// ListRecipesParams controls the paginated recipe listing. Nil filter
// fields mean "no filter"; nil ViewerID means an anonymous request.
type ListRecipesParams struct {
	Page         int
	Limit        int
	CategoryID   *uuid.UUID
	AreaID       *uuid.UUID
	IngredientID *uuid.UUID
	OwnerID      *uuid.UUID
	ViewerID     *uuid.UUID
}

// RecipeListResult is the pagination envelope shared by recipe listings.
type RecipeListResult struct {
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int64           `json:"total_pages"`
	Results    []RecipeSummary `json:"results"`
}

// IngredientInput is one parsed element of the ingredients payload on
// recipe creation.
type IngredientInput struct {
	ID      uuid.UUID `json:"id"`
	Measure string    `json:"measure"`
}

// CreateRecipeParams carries the recipe creation payload. Ingredients is
// kept raw because multipart clients send it as a JSON-encoded string and
// JSON clients send a plain array; the service parses either form.
type CreateRecipeParams struct {
	Title        string          `json:"title"`
	CategoryID   uuid.UUID       `json:"category_id"`
	AreaID       *uuid.UUID      `json:"area_id,omitempty"`
	Instructions string          `json:"instructions"`
	Description  string          `json:"description"`
	Time         int             `json:"time"`
	Ingredients  json.RawMessage `json:"ingredients"`
}

// Upload is an in-memory file received from a multipart request.
type Upload struct {
	Data        []byte
	ContentType string
}
