package controllers

import (
	"fmt"
	"net/http"
	"time"

	"tailorpro-backend/config"
	"tailorpro-backend/models"
	"tailorpro-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpcomingDueOrder struct {
	OrderNo      int64  `json:"orderNo"`
	CustomerName string `json:"customerName"`
	Due          string `json:"due"` // e.g. "Today", "Tomorrow", "3 days"
	Status       string `json:"status"`
}

type RecentPayment struct {
	PaymentNo    int64   `json:"paymentNo"`
	CustomerName string  `json:"customerName"`
	Amount       float64 `json:"amount"`
	Method       string  `json:"method"`
	When         string  `json:"when"` // e.g. "Today", "Yesterday", "3 days ago"
}

func GetDashboardOverview(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	// Total Customers
	var totalCustomers int64
	db.Model(&models.Customer{}).Where("user_id = ?", userID).Count(&totalCustomers)

	// Total and open orders
	var totalOrders int64
	db.Model(&models.Order{}).Count(&totalOrders)

	var openOrders int64
	db.Model(&models.Order{}).Where("status <> ?", models.OrderCompleted).Count(&openOrders)

	// This Month's Revenue from payments
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	db.Model(&models.Payment{}).
		Where("payment_date >= ?", firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthlyRevenue)

	// Outstanding balance across open orders
	var outstanding float64
	db.Model(&models.Order{}).
		Where("status <> ?", models.OrderCompleted).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").Scan(&outstanding)

	// Orders due in the next 7 days
	var dueOrders []models.Order
	db.Where("due_date >= ? AND due_date < ? AND status <> ?",
		utils.BeginningOfDay(now), utils.BeginningOfDay(now).AddDate(0, 0, 7), models.OrderCompleted).
		Order("due_date").
		Limit(7).
		Find(&dueOrders)

	var upcomingDue []UpcomingDueOrder
	for _, order := range dueOrders {
		daysUntil := utils.DaysBetween(now, order.DueDate)
		var label string
		switch daysUntil {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", daysUntil)
		}
		upcomingDue = append(upcomingDue, UpcomingDueOrder{
			OrderNo:      order.OrderNo,
			CustomerName: order.CustomerName,
			Due:          label,
			Status:       order.Status,
		})
	}

	// Recent payments (last 3)
	var payments []models.Payment
	db.Order("payment_date DESC").Limit(3).Find(&payments)

	var recentPayments []RecentPayment
	for _, payment := range payments {
		daysAgo := utils.DaysBetween(payment.PaymentDate, now)
		var when string
		switch daysAgo {
		case 0:
			when = "Today"
		case 1:
			when = "Yesterday"
		default:
			when = fmt.Sprintf("%d days ago", daysAgo)
		}
		recentPayments = append(recentPayments, RecentPayment{
			PaymentNo:    payment.PaymentNo,
			CustomerName: payment.CustomerName,
			Amount:       payment.Amount,
			Method:       payment.Method,
			When:         when,
		})
	}

	// Unread notifications
	var unreadNotifications int64
	db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&unreadNotifications)

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":      totalCustomers,
		"totalOrders":         totalOrders,
		"openOrders":          openOrders,
		"monthlyRevenue":      monthlyRevenue,
		"outstandingBalance":  outstanding,
		"upcomingDue":         upcomingDue,
		"recentPayments":      recentPayments,
		"unreadNotifications": unreadNotifications,
	})
}
