package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodies-app/backend/internal/middleware"
	"github.com/foodies-app/backend/internal/service"
)

type UserHandler struct {
	userService   *service.UserService
	socialService *service.SocialService
	authService   *service.AuthService
}

func NewUserHandler(userService *service.UserService, socialService *service.SocialService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		socialService: socialService,
		authService:   authService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
		users.GET("/following", middleware.AuthMiddleware(h.authService), h.Following)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.Info)
		users.GET("/:id/followers", middleware.OptionalAuthMiddleware(h.authService), h.Followers)
		users.POST("/:id/follow", middleware.AuthMiddleware(h.authService), h.Follow)
		users.DELETE("/:id/follow", middleware.AuthMiddleware(h.authService), h.Unfollow)
		users.PATCH("/avatar", middleware.AuthMiddleware(h.authService), h.UpdateAvatar)
	}
}

// Me returns the authenticated user's profile with aggregate counts.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	info, err := h.userService.Info(c.Request.Context(), userID, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// Info returns another user's profile. With a viewer present the response
// also says whether the viewer follows them.
func (h *UserHandler) Info(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	info, err := h.userService.Info(c.Request.Context(), id, middleware.OptionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *UserHandler) Followers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	followers, err := h.socialService.Followers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, followers)
}

func (h *UserHandler) Following(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	following, err := h.socialService.Following(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, following)
}

func (h *UserHandler) Follow(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.socialService.Follow(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully followed user"})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.socialService.Unfollow(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	avatar, err := formFileUpload(c, "avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar"})
		return
	}

	url, err := h.userService.UpdateAvatar(c.Request.Context(), userID, avatar)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": url})
}
