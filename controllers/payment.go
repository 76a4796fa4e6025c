// controllers/payment.go
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

// CreatePaymentInput defines the expected JSON structure for recording a payment
type CreatePaymentInput struct {
	OrderID     string     `json:"orderId" binding:"required"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Method      string     `json:"method" binding:"required,oneof=cash card bank_transfer other"`
	PaymentDate *time.Time `json:"paymentDate"`
	Notes       string     `json:"notes"`
}

// CreatePayment records a payment and recomputes the owning order's rollup.
// The paid amount is always the sum of all payments for the order, derived
// fresh rather than adjusted incrementally, so the rollup cannot drift.
func CreatePayment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.WithContext(c.Request.Context()).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order, err := models.FindOrderByRef(tx, input.OrderID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	// Allocate before building the payment; recording aborts if this fails.
	paymentNo, err := models.NextSequence(tx, models.CounterPayment)
	if err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to allocate payment number", err)
		return
	}

	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := models.Payment{
		ID:           uuid.New(),
		UserID:       userUUID,
		PaymentNo:    paymentNo,
		OrderID:      order.ID,
		OrderNo:      order.OrderNo,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Amount:       input.Amount,
		Method:       input.Method,
		Status:       "completed",
		PaymentDate:  paymentDate,
		Notes:        input.Notes,
	}

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to record payment", err)
		return
	}

	var paidAmount float64
	if err := tx.Model(&models.Payment{}).
		Where("order_id = ?", order.ID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paidAmount).Error; err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to total payments", err)
		return
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"paid_amount":    paidAmount,
			"payment_status": models.DerivePaymentStatus(paidAmount, order.TotalAmount),
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to update order payment status", err)
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, payment)
}

// GetPayments retrieves the caller's payments, newest first
func GetPayments(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var payments []models.Payment
	if err := config.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userUUID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to retrieve payments", err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
