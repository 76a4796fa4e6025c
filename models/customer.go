package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	// Human-facing sequential number, distinct from the internal id.
	// Assigned exactly once from the customer counter before first persist.
	CustomerNo int64 `gorm:"uniqueIndex;not null" json:"customerNo"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	Measurements []Measurement `gorm:"foreignKey:CustomerID" json:"measurements"`

	gorm.Model
}

// Measurement is one set of body dimensions taken for a customer. Each row
// carries its own stable id and is addressed by that id, never by position
// in the customer's list.
type Measurement struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Chest        float64 `gorm:"not null" json:"chest"`
	Waist        float64 `gorm:"not null" json:"waist"`
	Hips         float64 `gorm:"not null" json:"hips"`
	SleeveLength float64 `gorm:"not null" json:"sleeveLength"`
	Shoulder     float64 `gorm:"not null" json:"shoulder"`
	Neck         float64 `gorm:"not null" json:"neck"`

	TakenAt time.Time `gorm:"not null" json:"takenAt"`
	Notes   string    `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}
