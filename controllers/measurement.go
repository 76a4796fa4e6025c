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

// MeasurementInput carries the six body dimensions. All six are required
// and must be numeric; a non-numeric value fails the JSON bind with 400.
type MeasurementInput struct {
	Chest        *float64   `json:"chest" binding:"required"`
	Waist        *float64   `json:"waist" binding:"required"`
	Hips         *float64   `json:"hips" binding:"required"`
	SleeveLength *float64   `json:"sleeveLength" binding:"required"`
	Shoulder     *float64   `json:"shoulder" binding:"required"`
	Neck         *float64   `json:"neck" binding:"required"`
	TakenAt      *time.Time `json:"takenAt"`
	Notes        string     `json:"notes"`
}

// CreateMeasurementInput defines the expected JSON structure for recording
// a measurement against a customer
type CreateMeasurementInput struct {
	CustomerID  string           `json:"customerId" binding:"required"`
	Measurement MeasurementInput `json:"measurement" binding:"required"`
}

// UpdateMeasurementInput defines the expected JSON structure for updating
// a measurement
type UpdateMeasurementInput struct {
	Chest        *float64   `json:"chest"`
	Waist        *float64   `json:"waist"`
	Hips         *float64   `json:"hips"`
	SleeveLength *float64   `json:"sleeveLength"`
	Shoulder     *float64   `json:"shoulder"`
	Neck         *float64   `json:"neck"`
	TakenAt      *time.Time `json:"takenAt"`
	Notes        *string    `json:"notes"`
}

// findOwnedMeasurement resolves a measurement by id and verifies its
// customer belongs to the caller.
func findOwnedMeasurement(db *gorm.DB, userUUID uuid.UUID, idStr string) (*models.Measurement, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var measurement models.Measurement
	if err := db.Joins("JOIN customers ON customers.id = measurements.customer_id").
		Where("measurements.id = ? AND customers.user_id = ? AND customers.deleted_at IS NULL", id, userUUID).
		First(&measurement).Error; err != nil {
		return nil, err
	}
	return &measurement, nil
}

// CreateMeasurement appends a measurement to a customer's history
func CreateMeasurement(c *gin.Context) {
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

	var input CreateMeasurementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	customer, err := models.FindCustomerByRef(db, userUUID, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	takenAt := time.Now()
	if input.Measurement.TakenAt != nil {
		takenAt = *input.Measurement.TakenAt
	}

	measurement := models.Measurement{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		Chest:        *input.Measurement.Chest,
		Waist:        *input.Measurement.Waist,
		Hips:         *input.Measurement.Hips,
		SleeveLength: *input.Measurement.SleeveLength,
		Shoulder:     *input.Measurement.Shoulder,
		Neck:         *input.Measurement.Neck,
		TakenAt:      takenAt,
		Notes:        input.Measurement.Notes,
	}

	if err := db.Create(&measurement).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to save measurement", err)
		return
	}

	c.JSON(http.StatusCreated, measurement)
}

// GetMeasurements lists a customer's measurement history in insertion order
func GetMeasurements(c *gin.Context) {
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

	customerRef := c.Query("customerId")
	if customerRef == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "customerId is required")
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	customer, err := models.FindCustomerByRef(db, userUUID, customerRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	var measurements []models.Measurement
	if err := db.Where("customer_id = ?", customer.ID).
		Order("created_at").
		Find(&measurements).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to retrieve measurements", err)
		return
	}

	c.JSON(http.StatusOK, measurements)
}

// UpdateMeasurement updates a measurement addressed by its id
func UpdateMeasurement(c *gin.Context) {
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

	var input UpdateMeasurementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	measurement, err := findOwnedMeasurement(db, userUUID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Measurement not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	if input.Chest != nil {
		measurement.Chest = *input.Chest
	}
	if input.Waist != nil {
		measurement.Waist = *input.Waist
	}
	if input.Hips != nil {
		measurement.Hips = *input.Hips
	}
	if input.SleeveLength != nil {
		measurement.SleeveLength = *input.SleeveLength
	}
	if input.Shoulder != nil {
		measurement.Shoulder = *input.Shoulder
	}
	if input.Neck != nil {
		measurement.Neck = *input.Neck
	}
	if input.TakenAt != nil {
		measurement.TakenAt = *input.TakenAt
	}
	if input.Notes != nil {
		measurement.Notes = *input.Notes
	}

	if err := db.Save(measurement).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to update measurement", err)
		return
	}

	c.JSON(http.StatusOK, measurement)
}

// DeleteMeasurement removes a measurement addressed by its id. An unknown
// id is a 404, never a silent no-op.
func DeleteMeasurement(c *gin.Context) {
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

	db := config.DB.WithContext(c.Request.Context())

	measurement, err := findOwnedMeasurement(db, userUUID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Measurement not found")
		} else {
			utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Database error", err)
		}
		return
	}

	if err := db.Delete(measurement).Error; err != nil {
		utils.RespondWithErrorDetails(c, http.StatusInternalServerError, "Failed to delete measurement", err)
		return
	}

	c.Status(http.StatusNoContent)
}
