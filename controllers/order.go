// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"tailorpro-backend/config"
	"tailorpro-backend/models"
	"tailorpro-backend/services"
	"tailorpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItemInput defines the structure for an order line item
type OrderItemInput struct {
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
}

// CreateOrderInput defines the expected JSON structure for creating an order
type CreateOrderInput struct {
	CustomerID string           `json:"customerId" binding:"required"`
	DueDate    time.Time        `json:"dueDate" binding:"required"`
	Items      []OrderItemInput `json:"items" binding:"required,min=1"`
	Notes      string           `json:"notes"`
}

// UpdateOrderInput defines the expected JSON structure for updating an order
type UpdateOrderInput struct {
	DueDate *time.Time        `json:"dueDate"`
	Status  *string           `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Items   *[]OrderItemInput `json:"items"`
	Notes   *string           `json:"notes"`
}

// CreateOrder creates a new order with a customer snapshot and a sequential
// order number from the atomic counter
func CreateOrder(c *gin.Context) {
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

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	customer, err := models.FindCustomerByRef(db, userUUID, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	// Allocate before building the order; creation aborts if this fails.
	orderNo, err := models.NextSequence(db, models.CounterOrder)
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to allocate order number", err)
		return
	}

	orderID := uuid.New()
	var total float64
	var items []models.OrderItem
	for _, item := range input.Items {
		total += item.Price
		items = append(items, models.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	order := models.Order{
		ID:            orderID,
		OrderNo:       orderNo,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		DueDate:       input.DueDate,
		Status:        models.OrderPending,
		Items:         items,
		TotalAmount:   total,
		PaidAmount:    0,
		PaymentStatus: models.PaymentStatusPending,
		Notes:         input.Notes,
	}

	if err := db.Create(&order).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders retrieves all orders, oldest number first
func GetOrders(c *gin.Context) {
	if _, exists := c.Get("userId"); !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var orders []models.Order
	if err := config.DB.WithContext(c.Request.Context()).
		Preload("Items").
		Order("order_no").
		Find(&orders).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to retrieve orders", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder retrieves a specific order by internal id or sequential number
func GetOrder(c *gin.Context) {
	if _, exists := c.Get("userId"); !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	order, err := models.FindOrderByRef(db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder updates an existing order
func UpdateOrder(c *gin.Context) {
	if _, exists := c.Get("userId"); !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input UpdateOrderInput
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

	order, err := models.FindOrderByRef(tx, c.Param("id"))
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	if input.DueDate != nil {
		order.DueDate = *input.DueDate
	}
	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	// Replacing the items recomputes the total and the rollup status.
	if input.Items != nil {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to clear existing items", err)
			return
		}

		var total float64
		var items []models.OrderItem
		for _, item := range *input.Items {
			total += item.Price
			items = append(items, models.OrderItem{
				ID:          uuid.New(),
				OrderID:     order.ID,
				Description: item.Description,
				Price:       item.Price,
			})
		}
		order.Items = items
		order.TotalAmount = total
		order.PaymentStatus = models.DerivePaymentStatus(order.PaidAmount, total)
	}

	if err := tx.Save(order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to update order", err)
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order that has no payments. Orders with recorded
// payments cannot be deleted.
func DeleteOrder(c *gin.Context) {
	if _, exists := c.Get("userId"); !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	tx := config.DB.WithContext(c.Request.Context()).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order, err := models.FindOrderByRef(tx, c.Param("id"))
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	var paymentCount int64
	if err := tx.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&paymentCount).Error; err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		return
	}
	if paymentCount > 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Order has recorded payments and cannot be deleted")
		return
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to delete order items", err)
		return
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.Notification{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to delete order notifications", err)
		return
	}

	if err := tx.Delete(order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to delete order", err)
		return
	}

	tx.Commit()

	c.Status(http.StatusNoContent)
}

// CheckDueDates triggers the windowed due-date scan on demand and reports
// the reminders it created
func CheckDueDates(dueDates *services.DueDateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("userId"); !exists {
			utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
			return
		}

		reminders, err := dueDates.RunHourlyScan(c.Request.Context())
		if err != nil {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to check due dates", err)
			return
		}

		message := "No notifications needed at this time"
		if len(reminders) > 0 {
			message = "Notifications created successfully"
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       message,
			"remindersSent": reminders,
		})
	}
}
