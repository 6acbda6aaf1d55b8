package main

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodies-app/backend/config"
	"github.com/foodies-app/backend/internal/database"
	"github.com/foodies-app/backend/internal/models"
)

var categories = []string{
	"Beef", "Breakfast", "Chicken", "Dessert", "Goat", "Lamb",
	"Miscellaneous", "Pasta", "Pork", "Seafood", "Side", "Starter",
	"Vegan", "Vegetarian",
}

var areas = []string{
	"American", "British", "Canadian", "Chinese", "Croatian", "Dutch",
	"Egyptian", "French", "Greek", "Indian", "Irish", "Italian",
	"Jamaican", "Japanese", "Kenyan", "Malaysian", "Mexican", "Moroccan",
	"Polish", "Portuguese", "Russian", "Spanish", "Thai", "Tunisian",
	"Turkish", "Ukrainian", "Vietnamese",
}

var ingredients = []models.Ingredient{
	{Name: "Chicken Breast", Description: "Boneless skinless chicken breast."},
	{Name: "Garlic", Description: "Fresh garlic cloves."},
	{Name: "Olive Oil", Description: "Extra virgin olive oil."},
	{Name: "Onion", Description: "Yellow cooking onion."},
	{Name: "Tomato", Description: "Ripe red tomatoes."},
	{Name: "Basil", Description: "Fresh basil leaves."},
	{Name: "Soy Sauce", Description: "Fermented soy sauce."},
	{Name: "Ginger", Description: "Fresh ginger root."},
	{Name: "Rice", Description: "Long grain white rice."},
	{Name: "Butter", Description: "Unsalted butter."},
	{Name: "Flour", Description: "All purpose wheat flour."},
	{Name: "Sugar", Description: "Granulated white sugar."},
	{Name: "Eggs", Description: "Large hen eggs."},
	{Name: "Milk", Description: "Whole milk."},
	{Name: "Salt", Description: "Fine sea salt."},
	{Name: "Black Pepper", Description: "Freshly ground black pepper."},
	{Name: "Lemon", Description: "Fresh lemon, juice and zest."},
	{Name: "Parmesan", Description: "Aged Parmigiano Reggiano."},
	{Name: "Salmon", Description: "Fresh Atlantic salmon fillet."},
	{Name: "Potatoes", Description: "Starchy potatoes for roasting or mashing."},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	log.Println("Reference data seeded")
}

// seed inserts the lookup reference data. Re-running is safe: existing
// rows are left untouched.
func seed(db *gorm.DB) error {
	for _, name := range categories {
		category := models.Category{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error; err != nil {
			return err
		}
	}

	for _, name := range areas {
		area := models.Area{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&area).Error; err != nil {
			return err
		}
	}

	for _, ingredient := range ingredients {
		var count int64
		if err := db.Model(&models.Ingredient{}).
			Where("name = ?", ingredient.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		row := ingredient
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}
