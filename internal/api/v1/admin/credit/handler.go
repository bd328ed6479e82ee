package credit

import (
	"car-marketplace-backend/internal/models"
	"car-marketplace-backend/internal/services"
	"car-marketplace-backend/internal/utils"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// AdjustCredits applies a manual credit grant or deduction to a user account.
func AdjustCredits(c *gin.Context) {
	var req AdjustRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	operator := "admin"
	if userRaw, exists := c.Get("user"); exists {
		if user, ok := userRaw.(models.User); ok {
			operator = user.Username
		}
	}

	balance, err := services.AdjustCredits(c.Request.Context(), req.UserID, req.Amount, req.Reason, operator)
	if err != nil {
		var insufficient *services.InsufficientCreditsError
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "user not found"))
		case errors.As(err, &insufficient):
			c.JSON(http.StatusPaymentRequired, utils.NewErrorResponse(http.StatusPaymentRequired, err.Error()))
		case errors.Is(err, services.ErrNonPositiveAmount):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "amount must not be zero"))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("balance adjusted", AdjustResponse{
		UserID:  req.UserID,
		Amount:  req.Amount,
		Balance: balance,
	}))
}

// ListTransactions returns a filtered, paginated view of the credit ledger.
func ListTransactions(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	transactions, total, err := services.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}))
}

// ExportTransactions streams the filtered ledger as CSV.
func ExportTransactions(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}
	// Exports ignore pagination
	filter.Page = 1
	filter.Limit = 100000

	transactions, _, err := services.FindTransactions(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	data, err := services.GenerateTransactionCSV(transactions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("credit_transactions_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

func parseFilter(c *gin.Context) (services.TransactionFilter, error) {
	filter := services.TransactionFilter{Page: 1, Limit: 20}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, fmt.Errorf("invalid page: %s", v)
		}
		filter.Page = page
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 500 {
			return filter, fmt.Errorf("invalid limit: %s", v)
		}
		filter.Limit = limit
	}
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid user_id: %s", v)
		}
		uid := uint(id)
		filter.UserID = &uid
	}
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		filter.Type = &t
	}
	if v := c.Query("purpose"); v != "" {
		p := v
		filter.Purpose = &p
	}
	if v := c.Query("start_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("invalid start_time: %s", v)
		}
		filter.StartTime = &t
	}
	if v := c.Query("end_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("invalid end_time: %s", v)
		}
		filter.EndTime = &t
	}

	return filter, nil
}
