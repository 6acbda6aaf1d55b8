package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	CategoryID   uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"category_id"`
	AreaID       *uuid.UUID `gorm:"type:varchar(36);index" json:"area_id,omitempty"`
	UserID       uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Instructions string     `gorm:"type:text;not null" json:"instructions"`
	Description  string     `gorm:"type:text" json:"description"`
	// Thumb is either an object-store key or a legacy public URL.
	Thumb string `gorm:"size:512" json:"thumb"`
	Time  int    `gorm:"not null" json:"time"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient records one ingredient of a recipe together with its
// free-text quantity. One row per (recipe, ingredient) pair.
type RecipeIngredient struct {
	RecipeID     uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"ingredient_id"`
	Measure      string    `gorm:"size:255;not null;default:''" json:"measure"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// UserFavorite marks a recipe as favorited by a user. Presence of the row
// is the whole fact; the composite key keeps the pair unique.
type UserFavorite struct {
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserFavorite) TableName() string {
	return "user_favorites"
}
