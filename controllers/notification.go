// controllers/notification.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"tailorpro-backend/config"
	"tailorpro-backend/models"
	"tailorpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotifications lists notifications for open orders due tomorrow,
// newest first
func GetNotifications(c *gin.Context) {
	if _, exists := c.Get("userId"); !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	tomorrow := utils.NextDay(time.Now())
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var notifications []models.Notification
	if err := db.Where("order_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&models.Order{}).
			Select("id").
			Where("due_date >= ? AND due_date < ? AND status <> ?",
				tomorrow, dayAfter, models.OrderCompleted),
	).Order("created_at DESC").Find(&notifications).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to retrieve notifications", err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flags a notification as read
func MarkNotificationRead(c *gin.Context) {
	if _, exists := c.Get("userId"); !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	var notification models.Notification
	if err := db.Where("id = ?", notificationID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	notification.IsRead = true
	if err := db.Save(&notification).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to update notification", err)
		return
	}

	c.JSON(http.StatusOK, notification)
}
