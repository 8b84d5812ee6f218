package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loyalty-platform-backend/internal/features/news/models"
	"loyalty-platform-backend/internal/features/news/service"
)

type NewsHandler struct {
	service service.NewsService
}

func NewNewsHandler(service service.NewsService) *NewsHandler {
	return &NewsHandler{
		service: service,
	}
}

func (h *NewsHandler) RegisterRoutes(router *gin.RouterGroup) {
	news := router.Group("/news")
	{
		news.GET("", h.ListNews)
		news.GET("/recommended/:userId", h.GetRecommended)
		news.GET("/preferences/:userId", h.GetPreferences)
		news.POST("/preferences/:userId", h.SavePreferences)
		news.POST("/interactions", h.RecordInteraction)
	}
}

// @Summary Latest news feed
// @Tags news
// @Produce json
// @Router /news [get]
func (h *NewsHandler) ListNews(c *gin.Context) {
	articles, err := h.service.ListNews(c.Request.Context(), service.DefaultLimit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// @Summary Personalized news feed
// @Tags news
// @Produce json
// @Param userId path int true "User ID"
// @Router /news/recommended/{userId} [get]
func (h *NewsHandler) GetRecommended(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	articles, err := h.service.GetRecommended(c.Request.Context(), userID, service.DefaultLimit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// @Summary Get saved news preferences
// @Tags news
// @Produce json
// @Param userId path int true "User ID"
// @Router /news/preferences/{userId} [get]
func (h *NewsHandler) GetPreferences(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	prefs, err := h.service.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		if err == service.ErrPreferencesNotFound {
			c.Status(http.StatusNoContent)
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// @Summary Save news preferences (upsert)
// @Tags news
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Router /news/preferences/{userId} [post]
func (h *NewsHandler) SavePreferences(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var input models.SavePreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.service.SavePreferences(c.Request.Context(), userID, &input)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// @Summary Record a news interaction
// @Tags news
// @Accept json
// @Produce json
// @Router /news/interactions [post]
func (h *NewsHandler) RecordInteraction(c *gin.Context) {
	var input models.CreateInteractionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interaction, err := h.service.RecordInteraction(c.Request.Context(), &input)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, interaction)
}
