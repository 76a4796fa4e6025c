package controllers

import (
	"net/http"

	"tailorpro-backend/config"
	"tailorpro-backend/models"
	"tailorpro-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	ShopName    string `json:"shopName"`
	ShopAddress string `json:"shopAddress"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shopName":              user.ShopName,
		"shopAddress":           user.ShopAddress,
		"phone":                 user.Phone,
		"email":                 user.Email,
		"notifyPhone":           user.NotifyPhone,
		"smsNotifications":      user.SMSNotifications,
		"whatsAppNotifications": user.WhatsAppNotifications,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	user.ShopName = input.ShopName
	user.ShopAddress = input.ShopAddress
	user.Phone = input.Phone
	user.Email = input.Email

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input struct {
		NotifyPhone           string `json:"notifyPhone"`
		SMSNotifications      bool   `json:"smsNotifications"`
		WhatsAppNotifications bool   `json:"whatsAppNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.NotifyPhone != "" && !utils.ValidatePhone(input.NotifyPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"notify_phone":           input.NotifyPhone,
			"sms_notifications":      input.SMSNotifications,
			"whatsapp_notifications": input.WhatsAppNotifications,
		}).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to update notification settings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
