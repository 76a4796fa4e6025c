package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification tiers. One dedupe key (order + day + tier) covers both the
// daily scan and the hourly windows, so every tier is created at most once
// per order per calendar day.
const (
	TierDaily       = "daily"
	TierApproaching = "approaching"
	TierUrgent      = "urgent"
)

// Notification is a disposable projection over order state: it can always be
// reconstructed from orders, so deleting and recreating it is safe.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_order_day_tier,priority:1" json:"orderId"`

	// Display snapshots taken from the order when the notification was
	// created.
	OrderNo      int64     `gorm:"not null" json:"orderNo"`
	CustomerName string    `gorm:"not null" json:"customerName"`
	DueDate      time.Time `gorm:"not null" json:"dueDate"`

	HoursUntilDue int    `gorm:"not null" json:"hoursUntilDue"`
	Tier          string `gorm:"type:varchar(20);not null;uniqueIndex:idx_order_day_tier,priority:3" json:"tier"`
	// Local calendar day the notification belongs to, part of the dedupe key.
	DedupeDay time.Time `gorm:"type:date;not null;uniqueIndex:idx_order_day_tier,priority:2" json:"dedupeDay"`

	IsUrgent bool `gorm:"not null" json:"isUrgent"`
	IsRead   bool `gorm:"not null" json:"isRead"`

	CreatedAt time.Time `json:"createdAt"`
}
