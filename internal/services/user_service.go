package services

import (
	"car-marketplace-backend/internal/database"
	"car-marketplace-backend/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	cacheKey := fmt.Sprintf("user:%d", userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return user, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, time.Hour)
		}
	}

	return user, nil
}

// invalidateUserCache drops the cached user row after a balance mutation so a
// follow-up read never observes a stale balance.
func invalidateUserCache(userID uint) {
	if database.RedisClient != nil {
		cacheKey := fmt.Sprintf("user:%d", userID)
		database.RedisClient.Del(database.Ctx, cacheKey)
	}
}

// IsDealer reports whether the user owns a dealership. Callers must treat an
// error as a hard failure rather than defaulting to "not a dealer".
func IsDealer(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := database.DB.WithContext(ctx).
		Model(&models.Dealership{}).
		Where("owner_user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
