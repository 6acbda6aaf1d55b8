package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodies-app/backend/config"
	"github.com/foodies-app/backend/internal/middleware"
	"github.com/foodies-app/backend/internal/service"
)

// HealthCheck returns the health status of the API.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Foodies API is running",
	})
}

// RegisterRoutes wires up every handler under /api. redisClient may be nil,
// in which case recipe creation runs without rate limiting.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, blobs service.BlobStore, redisClient *redis.Client) {
	router.GET("/health", HealthCheck)

	mail := service.NewEmailService(cfg.PublicURL)
	authService := service.NewAuthService(db, cfg.JWTSecret, mail)
	recipeService := service.NewRecipeService(db, blobs)
	socialService := service.NewSocialService(db)
	userService := service.NewUserService(db, blobs)
	lookupService := service.NewLookupService(db)

	var creationLimiter *middleware.RateLimiter
	if redisClient != nil {
		creationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
	}

	group := router.Group("/api")
	NewAuthHandler(authService).RegisterRoutes(group)
	NewRecipeHandler(recipeService, authService, creationLimiter).RegisterRoutes(group)
	NewUserHandler(userService, socialService, authService).RegisterRoutes(group)
	NewLookupHandler(lookupService).RegisterRoutes(group)
}

// respondError maps service errors onto HTTP statuses. Anything outside
// the service taxonomy is an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrFavoriteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrEmailAlreadyVerified):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
