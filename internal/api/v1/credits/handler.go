package credits

import (
	"car-marketplace-backend/internal/models"
	"car-marketplace-backend/internal/services"
	"car-marketplace-backend/internal/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// operationTimeout bounds the whole debit/grant sequence. Past the deadline
// the context cancels the next collaborator call and the usual compensation
// path takes over.
const operationTimeout = 10 * time.Second

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Operations is the single credit-operations endpoint. It dispatches on the
// operation field and maps service errors onto the wire contract the mobile
// clients expect.
func (h *Handler) Operations(c *gin.Context) {
	start := time.Now()

	var req OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Operation == "" || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operation and userId are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), operationTimeout)
	defer cancel()

	switch req.Operation {
	case services.OperationPostListing:
		result, err := services.PostListing(ctx, req.UserID, req.CarID)
		if err != nil {
			writeOperationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"charged": result.Charged,
			"balance": result.Balance,
			"message": result.Message,
		})

	case services.OperationBoostListing:
		if req.CarID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "carId is required for boost_listing"})
			return
		}
		if req.BoostConfig == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "boostConfig is required for boost_listing"})
			return
		}
		result, err := services.BoostListing(ctx, req.UserID, req.CarID, services.BoostConfig{
			Priority:     req.BoostConfig.Priority,
			DurationDays: req.BoostConfig.DurationDays,
		})
		if err != nil {
			writeOperationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"charged":          result.Charged,
			"balance":          result.Balance,
			"priority":         result.Priority,
			"endDate":          result.EndDate.UTC().Format(time.RFC3339),
			"message":          result.Message,
			"processingTimeMs": time.Since(start).Milliseconds(),
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown operation: " + req.Operation})
	}
}

// Balance returns the authenticated user's balance plus recent ledger entries
// so the wallet screen needs no second lookup.
func (h *Handler) Balance(c *gin.Context) {
	userRaw, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	user, ok := userRaw.(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	// Force reload from DB: the cached user in context may predate a debit.
	fresh, err := services.FindUserByID(user.ID)
	if err == nil {
		user = fresh
	}

	entries, _, err := services.FindTransactions(services.TransactionFilter{
		UserID: &user.ID,
		Page:   1,
		Limit:  10,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", BalanceResponse{
		Balance:      user.CreditBalance,
		Transactions: toTransactionResponses(entries),
	}))
}

func writeOperationError(c *gin.Context, err error) {
	var insufficient *services.InsufficientCreditsError
	var conflict *services.BoostConflictError

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, services.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
	case errors.Is(err, services.ErrInvalidBoostPriority),
		errors.Is(err, services.ErrInvalidBoostDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     "insufficient credits",
			"required":  insufficient.Required,
			"available": insufficient.Available,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":                "listing already has an active boost",
			"existingBoostEndDate": conflict.ExistingEndDate.UTC().Format(time.RFC3339),
			"existingPriority":     conflict.ExistingPriority,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "credit operation failed",
			"message": err.Error(),
		})
	}
}
