package api

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodies-app/backend/internal/middleware"
	"github.com/foodies-app/backend/internal/service"
	"github.com/foodies-app/backend/internal/types"
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	authService     *service.AuthService
	creationLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService, creationLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		authService:     authService,
		creationLimiter: creationLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.List)
		recipes.GET("/popular", middleware.OptionalAuthMiddleware(h.authService), h.Popular)
		recipes.GET("/own", middleware.AuthMiddleware(h.authService), h.ListOwn)
		recipes.GET("/favorites", middleware.AuthMiddleware(h.authService), h.ListFavorites)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.Get)

		create := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
		if h.creationLimiter != nil {
			create = append(create, h.creationLimiter.RateLimitMiddleware())
		}
		create = append(create, h.Create)
		recipes.POST("", create...)

		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.Delete)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.RemoveFavorite)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	params := types.ListRecipesParams{
		Page:     page,
		Limit:    limit,
		ViewerID: middleware.OptionalUserID(c),
	}

	// "all" and "" both mean no category filter.
	if v := c.Query("category"); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		params.CategoryID = &id
	}
	if v := c.Query("area"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid area id"})
			return
		}
		params.AreaID = &id
	}
	if v := c.Query("ingredient"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
			return
		}
		params.IngredientID = &id
	}

	result, err := h.recipeService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) Popular(c *gin.Context) {
	page, limit := pagination(c)

	result, err := h.recipeService.Popular(c.Request.Context(), page, limit, middleware.OptionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	page, limit := pagination(c)

	result, err := h.recipeService.ListByOwner(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	page, limit := pagination(c)

	result, err := h.recipeService.ListFavorites(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id, middleware.OptionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// Create accepts a multipart form: title, category, area, instructions,
// description, time, ingredients (JSON array, usually sent as a string)
// and the thumb file.
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	params := types.CreateRecipeParams{
		Title:        c.PostForm("title"),
		Instructions: c.PostForm("instructions"),
		Description:  c.PostForm("description"),
	}

	if v := c.PostForm("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		params.CategoryID = id
	}
	if v := c.PostForm("area"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid area id"})
			return
		}
		params.AreaID = &id
	}
	if v := c.PostForm("time"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "time must be a number of minutes"})
			return
		}
		params.Time = minutes
	}
	if v := c.PostForm("ingredients"); v != "" {
		params.Ingredients = json.RawMessage(v)
	}

	thumb, err := formFileUpload(c, "thumb")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read thumb"})
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), params, userID, thumb)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipeService.AddFavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Recipe added to favorites"})
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipeService.RemoveFavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// pagination reads page/limit query params, leaving defaulting to the
// service layer.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	return page, limit
}

// formFileUpload reads one multipart file into memory. A missing file is
// not an error here; required-file validation belongs to the service.
func formFileUpload(c *gin.Context, field string) (*types.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readUpload(fh)
}

func readUpload(fh *multipart.FileHeader) (*types.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &types.Upload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
