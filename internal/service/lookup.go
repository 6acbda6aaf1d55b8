package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/foodies-app/backend/internal/models"
)

// LookupService serves the static reference data: categories, areas,
// ingredients and testimonials.
type LookupService struct {
	db *gorm.DB
}

// NewLookupService creates a new LookupService instance.
func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

// Categories returns all categories ordered by name.
func (s *LookupService) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Areas returns all areas ordered by name.
func (s *LookupService) Areas(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// IngredientPage is the paginated ingredient listing.
type IngredientPage struct {
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int64               `json:"total_pages"`
	Results    []models.Ingredient `json:"results"`
}

// Ingredients returns a paginated ingredient listing, optionally filtered
// by a case-insensitive name substring.
func (s *LookupService) Ingredients(ctx context.Context, page, limit int, name string) (*IngredientPage, error) {
	page, limit = normalizePage(page, limit)

	q := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var ingredients []models.Ingredient
	if err := q.Order("name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}

	return &IngredientPage{
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
		Results:    ingredients,
	}, nil
}

// Testimonials returns all testimonials, newest first.
func (s *LookupService) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}
