// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"tailorpro-backend/config"
	"tailorpro-backend/models"
	"tailorpro-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64           `json:"currentMonthRevenue"`
	MonthGrowth           float64           `json:"monthGrowth"`
	CurrentQuarterRevenue float64           `json:"currentQuarterRevenue"`
	QuarterGrowth         float64           `json:"quarterGrowth"`
	CurrentYearRevenue    float64           `json:"currentYearRevenue"`
	YearGrowth            float64           `json:"yearGrowth"`
	TopCustomers          []CustomerSummary `json:"topCustomers"`
	QuickStats            QuickStatistics   `json:"quickStats"`
}

type CustomerSummary struct {
	Name   string  `json:"name"`
	Orders int     `json:"orders"`
	Paid   float64 `json:"paid"`
}

type QuickStatistics struct {
	TotalCustomers     int64   `json:"totalCustomers"`
	TotalOrders        int64   `json:"totalOrders"`
	TotalPayments      int64   `json:"totalPayments"`
	AvgOrderValue      float64 `json:"avgOrderValue"`
	OutstandingBalance float64 `json:"outstandingBalance"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	if _, exists := c.Get("userId"); !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to get monthly revenue", err)
		return
	}

	lastMonthRevenue, err := rc.getRevenue(
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to get last month revenue", err)
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(
		rc.getQuarterStart(now),
		rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to get quarterly revenue", err)
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to get last quarter revenue", err)
		return
	}

	currentYearRevenue, err := rc.getRevenue(
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to get yearly revenue", err)
		return
	}

	lastYearRevenue, err := rc.getRevenue(
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to get last year revenue", err)
		return
	}

	topCustomers, err := rc.getTopCustomers(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to get top customers", err)
		return
	}

	quickStats, err := rc.getQuickStatistics()
	if err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to get quick statistics", err)
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopCustomers:          topCustomers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var revenue float64
	err := config.DB.Model(&models.Payment{}).
		Where("payment_date >= ? AND payment_date <= ?", start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (rc *ReportController) getTopCustomers(start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary
	err := config.DB.Raw(`
		SELECT customer_name AS name,
		       COUNT(DISTINCT order_id) AS orders,
		       SUM(amount) AS paid
		FROM payments
		WHERE payment_date >= ? AND payment_date <= ?
		GROUP BY customer_name
		ORDER BY paid DESC
		LIMIT ?
	`, start, end, limit).Scan(&customers).Error
	return customers, err
}

func (rc *ReportController) getQuickStatistics() (QuickStatistics, error) {
	var stats QuickStatistics

	if err := config.DB.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Payment{}).Count(&stats.TotalPayments).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Order{}).
		Select("COALESCE(AVG(total_amount), 0)").
		Scan(&stats.AvgOrderValue).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Order{}).
		Where("status <> ?", models.OrderCompleted).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Scan(&stats.OutstandingBalance).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

func (rc *ReportController) getQuarterStart(t time.Time) time.Time {
	quarterMonth := time.Month(((int(t.Month())-1)/3)*3 + 1)
	return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, t.Location())
}

func (rc *ReportController) getQuarterEnd(t time.Time) time.Time {
	return rc.getQuarterStart(t).AddDate(0, 3, -1)
}
