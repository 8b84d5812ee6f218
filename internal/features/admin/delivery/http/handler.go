package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loyalty-platform-backend/internal/common/middleware"
	referralservice "loyalty-platform-backend/internal/features/referral/service"
	userservice "loyalty-platform-backend/internal/features/user/service"
)

// AdminHandler exposes the role-gated admin panel endpoints.
type AdminHandler struct {
	users     userservice.UserService
	referrals referralservice.ReferralService
}

func NewAdminHandler(users userservice.UserService, referrals referralservice.ReferralService) *AdminHandler {
	return &AdminHandler{
		users:     users,
		referrals: referrals,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/referrals", h.ListReferrals)
	}

	superadmin := router.Group("/admin")
	superadmin.Use(middleware.RequireSuperadmin())
	{
		superadmin.POST("/bulk-send", h.BulkSend)
	}
}

// @Summary List all users (admin)
// @Tags admin
// @Produce json
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary List all referrals (admin)
// @Tags admin
// @Produce json
// @Router /admin/referrals [get]
func (h *AdminHandler) ListReferrals(c *gin.Context) {
	referrals, err := h.referrals.ListReferrals(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, referrals)
}

// @Summary Trigger a bulk payout (superadmin)
// @Tags admin
// @Produce json
// @Router /admin/bulk-send [post]
func (h *AdminHandler) BulkSend(c *gin.Context) {
	// Intentionally a stub: no payout semantics are defined for this
	// endpoint (no idempotency key, no partial-failure handling).
	c.JSON(http.StatusOK, gin.H{"status": "Processing bulk transactions"})
}
