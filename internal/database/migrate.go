package database

import (
	"log"

	"github.com/foodies-app/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date for every model the application
// persists. AutoMigrate is additive, so it is safe to run at startup.
func Migrate(db *gorm.DB) error {
	log.Printf("Running schema migration (%s)", db.Dialector.Name())
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Area{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.UserFavorite{},
		&models.UserFollow{},
		&models.Testimonial{},
	)
}
