package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loyalty-platform-backend/internal/features/transaction/models"
	"loyalty-platform-backend/internal/features/transaction/service"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(service service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		service: service,
	}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions/:userId", h.GetTransactions)
	router.POST("/transactions", h.CreateTransaction)
	router.GET("/convert/rate", h.GetConversionRate)
}

// @Summary List transactions for a user
// @Tags transactions
// @Produce json
// @Param userId path int true "User ID"
// @Router /transactions/{userId} [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	txs, err := h.service.GetTransactions(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, txs)
}

// @Summary Record a ledger transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var input models.CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.service.CreateTransaction(c.Request.Context(), &input)
	if err != nil {
		if err == service.ErrUserNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tx)
}

// @Summary Mocked points-to-USD conversion rate
// @Tags transactions
// @Produce json
// @Router /convert/rate [get]
func (h *TransactionHandler) GetConversionRate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rate": models.PointsToUSDRate})
}
