package credit

import (
	"bytes"
	"car-marketplace-backend/internal/database"
	"car-marketplace-backend/internal/models"
	"car-marketplace-backend/internal/services"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdminTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.Migrator().DropTable(&models.User{}, &models.Dealership{}, &models.Car{}, &models.CreditTransaction{}, &models.BoostHistory{})
	db.AutoMigrate(&models.User{}, &models.Dealership{}, &models.Car{}, &models.CreditTransaction{}, &models.BoostHistory{})
	database.DB = db
	database.RedisClient = nil

	r := gin.New()
	admin := r.Group("/api/v1/admin")
	RegisterRoutes(admin)
	return r
}

func postAdjust(r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/v1/admin/credits/adjust", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdjustCredits(t *testing.T) {
	r := setupAdminTestRouter()

	user := models.User{Username: "topup", Password: "x", CreditBalance: 10}
	database.DB.Create(&user)

	w := postAdjust(r, gin.H{"user_id": user.ID, "amount": 50, "reason": "goodwill top-up"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status int            `json:"status"`
		Data   AdjustResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(60), resp.Data.Balance)

	var entry models.CreditTransaction
	database.DB.Last(&entry)
	assert.Equal(t, models.PurposeAdminAdjustment, entry.Purpose)
	assert.Equal(t, int64(50), entry.Amount)
}

func TestAdjustCredits_Validation(t *testing.T) {
	r := setupAdminTestRouter()

	user := models.User{Username: "strict", Password: "x", CreditBalance: 10}
	database.DB.Create(&user)

	// Missing reason
	w := postAdjust(r, gin.H{"user_id": user.ID, "amount": 50})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Reason too short
	w = postAdjust(r, gin.H{"user_id": user.ID, "amount": 50, "reason": "ok"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown user
	w = postAdjust(r, gin.H{"user_id": 999, "amount": 50, "reason": "goodwill top-up"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Claw-back below zero
	w = postAdjust(r, gin.H{"user_id": user.ID, "amount": -100, "reason": "claw-back of promo"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestListTransactions(t *testing.T) {
	r := setupAdminTestRouter()
	ctx := context.Background()

	user := models.User{Username: "audited", Password: "x", CreditBalance: 100}
	database.DB.Create(&user)
	_, err := services.DebitCredits(ctx, user.ID, 10, models.PurposePostListing, "1", "Listing posting fee", nil)
	assert.NoError(t, err)
	_, err = services.DebitCredits(ctx, user.ID, 13, models.PurposeBoostListing, "1", "Boost purchase", nil)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/admin/credits/transactions?user_id=%d", user.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status int                     `json:"status"`
		Data   TransactionListResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(2), resp.Data.Total)
	assert.Len(t, resp.Data.Transactions, 2)

	// Purpose filter narrows the result
	req, _ = http.NewRequest("GET", "/api/v1/admin/credits/transactions?purpose=boost_listing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(1), resp.Data.Total)
}

func TestListTransactions_InvalidQuery(t *testing.T) {
	r := setupAdminTestRouter()

	for _, query := range []string{"page=0", "limit=9999", "user_id=abc", "start_time=yesterday"} {
		req, _ := http.NewRequest("GET", "/api/v1/admin/credits/transactions?"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestExportTransactions(t *testing.T) {
	r := setupAdminTestRouter()
	ctx := context.Background()

	user := models.User{Username: "exported", Password: "x", CreditBalance: 100}
	database.DB.Create(&user)
	_, err := services.DebitCredits(ctx, user.ID, 10, models.PurposePostListing, "1", "Listing posting fee", nil)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/v1/admin/credits/transactions/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	assert.Contains(t, body, "Balance Before")
	assert.Contains(t, body, "Listing posting fee")
}
