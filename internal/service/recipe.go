package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodies-app/backend/internal/models"
	"github.com/foodies-app/backend/internal/types"
)

const defaultPageSize = 12

// RecipeService handles recipe queries and mutations.
type RecipeService struct {
	db    *gorm.DB
	blobs BlobStore
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB, blobs BlobStore) *RecipeService {
	return &RecipeService{
		db:    db,
		blobs: blobs,
	}
}

// List returns a filtered, paginated recipe listing ordered newest-first.
// The ingredient filter is resolved to a recipe-id set up front; an empty
// set short-circuits to an empty page without touching the recipes table.
func (s *RecipeService) List(ctx context.Context, p types.ListRecipesParams) (*types.RecipeListResult, error) {
	page, limit := normalizePage(p.Page, p.Limit)

	q := s.db.WithContext(ctx).Model(&models.Recipe{})
	if p.CategoryID != nil {
		q = q.Where("category_id = ?", *p.CategoryID)
	}
	if p.AreaID != nil {
		q = q.Where("area_id = ?", *p.AreaID)
	}
	if p.OwnerID != nil {
		q = q.Where("user_id = ?", *p.OwnerID)
	}
	if p.IngredientID != nil {
		var recipeIDs []uuid.UUID
		if err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
			Where("ingredient_id = ?", *p.IngredientID).
			Distinct().
			Pluck("recipe_id", &recipeIDs).Error; err != nil {
			return nil, err
		}
		if len(recipeIDs) == 0 {
			return emptyListResult(page), nil
		}
		q = q.Where("id IN ?", recipeIDs)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	results, err := s.summarize(ctx, recipes, p.ViewerID)
	if err != nil {
		return nil, err
	}

	return &types.RecipeListResult{
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
		Results:    results,
	}, nil
}

// Get fetches one recipe with creator, category, area and the full
// ingredient list joined in.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*types.RecipeDetail, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	summaries, err := s.summarize(ctx, []models.Recipe{recipe}, viewerID)
	if err != nil {
		return nil, err
	}

	items, err := s.ingredientItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return &types.RecipeDetail{
		RecipeSummary:     summaries[0],
		Instructions:      recipe.Instructions,
		RecipeIngredients: items,
	}, nil
}

// favoriteAggregate is one row of the grouped favorites query.
type favoriteAggregate struct {
	RecipeID       uuid.UUID `gorm:"column:recipe_id"`
	FavoritesCount int64     `gorm:"column:favorites_count"`
}

// Popular ranks recipes by favorite count. The aggregate over
// user_favorites is paginated first so the ranking and page window are
// fixed before any recipe rows are fetched; the counts are merged back
// onto the fetched recipes afterwards.
func (s *RecipeService) Popular(ctx context.Context, page, limit int, viewerID *uuid.UUID) (*types.RecipeListResult, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.UserFavorite{}).
		Distinct("recipe_id").
		Count(&total).Error; err != nil {
		return nil, err
	}

	var aggs []favoriteAggregate
	if err := s.db.WithContext(ctx).Model(&models.UserFavorite{}).
		Select("recipe_id, COUNT(*) AS favorites_count").
		Group("recipe_id").
		Order("favorites_count DESC, recipe_id").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&aggs).Error; err != nil {
		return nil, err
	}

	if len(aggs) == 0 {
		return emptyListResult(page), nil
	}

	ids := make([]uuid.UUID, len(aggs))
	counts := make(map[uuid.UUID]int64, len(aggs))
	for i, agg := range aggs {
		ids[i] = agg.RecipeID
		counts[agg.RecipeID] = agg.FavoritesCount
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}

	summaries, err := s.summarize(ctx, recipes, viewerID)
	if err != nil {
		return nil, err
	}

	// Restore the aggregate's ranking order and attach the counts.
	byID := make(map[uuid.UUID]types.RecipeSummary, len(summaries))
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}
	results := make([]types.RecipeSummary, 0, len(aggs))
	for _, agg := range aggs {
		sum, ok := byID[agg.RecipeID]
		if !ok {
			// Favorite edge pointing at a recipe deleted mid-request.
			continue
		}
		sum.FavoritesCount = counts[agg.RecipeID]
		results = append(results, sum)
	}

	return &types.RecipeListResult{
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
		Results:    results,
	}, nil
}

// ListByOwner returns the recipes created by one user, newest first.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (*types.RecipeListResult, error) {
	return s.List(ctx, types.ListRecipesParams{
		Page:     page,
		Limit:    limit,
		OwnerID:  &ownerID,
		ViewerID: &ownerID,
	})
}

// ListFavorites returns the recipes a user has favorited, most recently
// favorited first.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID, page, limit int) (*types.RecipeListResult, error) {
	page, limit = normalizePage(page, limit)

	q := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Joins("JOIN user_favorites ON user_favorites.recipe_id = recipes.id").
		Where("user_favorites.user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := q.Order("user_favorites.created_at DESC, recipes.id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}

	results, err := s.summarize(ctx, recipes, &userID)
	if err != nil {
		return nil, err
	}

	return &types.RecipeListResult{
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
		Results:    results,
	}, nil
}

// Create validates the payload and creates the recipe, its thumbnail blob
// and its ingredient rows in one transaction. A failure after the blob
// upload rolls back every row; the orphan blob is accepted.
func (s *RecipeService) Create(ctx context.Context, p types.CreateRecipeParams, ownerID uuid.UUID, thumb *types.Upload) (*types.RecipeDetail, error) {
	if p.Title == "" {
		return nil, validationError("title is required")
	}
	if p.CategoryID == uuid.Nil {
		return nil, validationError("category is required")
	}
	if p.Instructions == "" {
		return nil, validationError("instructions is required")
	}
	if p.Time <= 0 {
		return nil, validationError("time is required")
	}
	if thumb == nil || len(thumb.Data) == 0 {
		return nil, validationError("thumb is required")
	}

	ingredients, err := parseIngredients(p.Ingredients)
	if err != nil {
		return nil, err
	}

	recipeID := uuid.New()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		thumbKey, err := s.blobs.UploadRecipeThumb(ctx, recipeID, thumb.Data, thumb.ContentType)
		if err != nil {
			return err
		}

		recipe := models.Recipe{
			ID:           recipeID,
			Title:        p.Title,
			CategoryID:   p.CategoryID,
			AreaID:       p.AreaID,
			UserID:       ownerID,
			Instructions: p.Instructions,
			Description:  p.Description,
			Thumb:        thumbKey,
			Time:         p.Time,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		if len(ingredients) > 0 {
			rows := make([]models.RecipeIngredient, len(ingredients))
			for i, ing := range ingredients {
				rows[i] = models.RecipeIngredient{
					RecipeID:     recipeID,
					IngredientID: ing.ID,
					Measure:      ing.Measure,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipeID, &ownerID)
}

// Delete removes a recipe and its associations. Only the owner may delete;
// a foreign recipe yields ErrForbidden, never ErrRecipeNotFound.
func (s *RecipeService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if recipe.UserID != requesterID {
		return ErrForbidden
	}

	// Children first so the order also holds on backends without cascades.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.UserFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// AddFavorite records a favorite edge. Favoriting twice is a no-op, not an
// error; the unique pair constraint absorbs the duplicate insert.
func (s *RecipeService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecipeNotFound
	}

	fav := models.UserFavorite{UserID: userID, RecipeID: recipeID}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

// RemoveFavorite deletes a favorite edge, reporting ErrFavoriteNotFound
// when no edge existed.
func (s *RecipeService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.UserFavorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// summarize builds response rows for a recipe batch, joining creators,
// categories and areas with one bulk query each and, when a viewer is
// known, one favorite-membership query. Result order follows the input.
func (s *RecipeService) summarize(ctx context.Context, recipes []models.Recipe, viewerID *uuid.UUID) ([]types.RecipeSummary, error) {
	if len(recipes) == 0 {
		return []types.RecipeSummary{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(recipes))
	categoryIDs := make([]uuid.UUID, 0, len(recipes))
	areaIDs := make([]uuid.UUID, 0, len(recipes))
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		userIDs = append(userIDs, r.UserID)
		categoryIDs = append(categoryIDs, r.CategoryID)
		if r.AreaID != nil {
			areaIDs = append(areaIDs, *r.AreaID)
		}
		recipeIDs = append(recipeIDs, r.ID)
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	usersByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return nil, err
	}
	categoriesByID := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}

	areasByID := make(map[uuid.UUID]models.Area)
	if len(areaIDs) > 0 {
		var areas []models.Area
		if err := s.db.WithContext(ctx).Where("id IN ?", areaIDs).Find(&areas).Error; err != nil {
			return nil, err
		}
		for _, a := range areas {
			areasByID[a.ID] = a
		}
	}

	favorited := make(map[uuid.UUID]bool)
	if viewerID != nil {
		var favIDs []uuid.UUID
		if err := s.db.WithContext(ctx).Model(&models.UserFavorite{}).
			Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
			Pluck("recipe_id", &favIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range favIDs {
			favorited[id] = true
		}
	}

	results := make([]types.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		sum := types.RecipeSummary{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Thumb:       r.Thumb,
			Time:        r.Time,
			CreatedAt:   r.CreatedAt,
		}
		if owner, ok := usersByID[r.UserID]; ok {
			sum.Owner = types.UserRef{ID: owner.ID, Username: owner.Username, Avatar: owner.Avatar}
		}
		if cat, ok := categoriesByID[r.CategoryID]; ok {
			sum.Category = &types.CategoryRef{ID: cat.ID, Name: cat.Name}
		}
		if r.AreaID != nil {
			if area, ok := areasByID[*r.AreaID]; ok {
				sum.Area = &types.AreaRef{ID: area.ID, Name: area.Name}
			}
		}
		if viewerID != nil {
			fav := favorited[r.ID]
			sum.IsFavorite = &fav
		}
		results = append(results, sum)
	}
	return results, nil
}

// ingredientItems fetches the ingredient list of one recipe through an
// explicit join against the reference table.
func (s *RecipeService) ingredientItems(ctx context.Context, recipeID uuid.UUID) ([]types.RecipeIngredientItem, error) {
	var rows []struct {
		Measure      string    `gorm:"column:measure"`
		IngredientID uuid.UUID `gorm:"column:ingredient_id"`
		Name         string    `gorm:"column:name"`
		Img          string    `gorm:"column:img"`
		Description  string    `gorm:"column:description"`
	}
	if err := s.db.WithContext(ctx).Table("recipe_ingredients").
		Select("recipe_ingredients.measure, ingredients.id AS ingredient_id, ingredients.name, ingredients.img, ingredients.description").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id = ?", recipeID).
		Order("ingredients.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]types.RecipeIngredientItem, len(rows))
	for i, row := range rows {
		items[i] = types.RecipeIngredientItem{
			Measure: row.Measure,
			Ingredient: types.IngredientRef{
				ID:          row.IngredientID,
				Name:        row.Name,
				Img:         row.Img,
				Description: row.Description,
			},
		}
	}
	return items, nil
}

// parseIngredients accepts the ingredients payload either as a JSON array
// or as a JSON string containing one (multipart forms send the latter).
func parseIngredients(raw json.RawMessage) ([]types.IngredientInput, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || string(data) == "null" {
		return nil, validationError("ingredients is required")
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, validationError("ingredients must be a valid JSON array")
		}
		data = []byte(inner)
	}

	var items []types.IngredientInput
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, validationError("ingredients must be a valid JSON array")
	}

	// One row per (recipe, ingredient) pair; a repeated id would violate
	// the composite key mid-transaction.
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return nil, validationError("ingredients contains duplicate ingredient %s", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return items, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func emptyListResult(page int) *types.RecipeListResult {
	return &types.RecipeListResult{
		Total:      0,
		Page:       page,
		TotalPages: 0,
		Results:    []types.RecipeSummary{},
	}
}
