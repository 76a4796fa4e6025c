package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses
const (
	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
)

// Payment rollup statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// Human-facing sequential number, assigned exactly once from the
	// order counter.
	OrderNo int64 `gorm:"uniqueIndex;not null" json:"orderNo"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	// Snapshot of the customer's name at creation time. Not kept in sync
	// if the customer is later renamed.
	CustomerName string `gorm:"not null" json:"customerName"`

	DueDate time.Time `gorm:"not null" json:"dueDate"`
	Status  string    `gorm:"type:varchar(20);default:'pending'" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	// PaidAmount is recomputed from the sum of all payments whenever a
	// payment is recorded, never adjusted incrementally.
	PaidAmount    float64 `gorm:"type:decimal(10,2);default:0.0" json:"paidAmount"`
	PaymentStatus string  `gorm:"type:varchar(20);default:'pending'" json:"paymentStatus"`

	Notes string `json:"notes"`

	gorm.Model
}

type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	Description string    `json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
}

// DerivePaymentStatus maps the paid-vs-total relation onto a rollup status.
func DerivePaymentStatus(paid, total float64) string {
	switch {
	case total > 0 && paid >= total:
		return PaymentStatusPaid
	case paid > 0:
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}
