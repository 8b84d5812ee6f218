package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loyalty-platform-backend/internal/features/referral/models"
	"loyalty-platform-backend/internal/features/referral/service"
)

type ReferralHandler struct {
	service service.ReferralService
}

func NewReferralHandler(service service.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		service: service,
	}
}

func (h *ReferralHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/referrals/:userId", h.GetReferrals)
	router.POST("/referrals", h.CreateReferral)
}

// @Summary List referrals by referrer
// @Tags referrals
// @Produce json
// @Param userId path int true "Referrer user ID"
// @Router /referrals/{userId} [get]
func (h *ReferralHandler) GetReferrals(c *gin.Context) {
	referrerID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	referrals, err := h.service.GetReferrals(c.Request.Context(), referrerID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, referrals)
}

// @Summary Record a referral
// @Tags referrals
// @Accept json
// @Produce json
// @Router /referrals [post]
func (h *ReferralHandler) CreateReferral(c *gin.Context) {
	var input models.CreateReferralInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	referral, err := h.service.CreateReferral(c.Request.Context(), &input)
	if err != nil {
		if err == service.ErrUserNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, referral)
}
