package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodies-app/backend/internal/service"
)

type LookupHandler struct {
	lookupService *service.LookupService
}

func NewLookupHandler(lookupService *service.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

func (h *LookupHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", h.Categories)
	router.GET("/areas", h.Areas)
	router.GET("/ingredients", h.Ingredients)
	router.GET("/testimonials", h.Testimonials)
}

func (h *LookupHandler) Categories(c *gin.Context) {
	categories, err := h.lookupService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *LookupHandler) Areas(c *gin.Context) {
	areas, err := h.lookupService.Areas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, areas)
}

func (h *LookupHandler) Ingredients(c *gin.Context) {
	page, limit := pagination(c)

	result, err := h.lookupService.Ingredients(c.Request.Context(), page, limit, c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LookupHandler) Testimonials(c *gin.Context) {
	testimonials, err := h.lookupService.Testimonials(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, testimonials)
}
