package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment methods
const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
	MethodOther        = "other"
)

// Payment is immutable once recorded: there is no update or delete path.
type Payment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	// Human-facing sequential number, assigned exactly once from the
	// payment counter.
	PaymentNo int64 `gorm:"uniqueIndex;not null" json:"paymentNo"`

	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	// Snapshots of the order and customer at the time the payment was
	// recorded, for the audit trail. Not kept in sync afterwards.
	OrderNo      int64     `gorm:"not null" json:"orderNo"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null" json:"customerId"`
	CustomerName string    `gorm:"not null" json:"customerName"`

	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method string  `gorm:"type:varchar(20);not null" json:"method"`
	Status string  `gorm:"type:varchar(20);not null" json:"status"`

	PaymentDate time.Time `gorm:"not null" json:"paymentDate"`
	Notes       string    `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}
