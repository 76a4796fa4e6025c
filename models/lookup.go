package models

import (
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dual-key lookup: single-entity reads accept either the internal uuid or
// the human-facing sequential number. The uuid form is tried first, the
// number is the fallback. All handlers go through these two functions so the
// fallback semantics stay identical everywhere.

// FindCustomerByRef resolves a customer owned by the given user from either
// key form.
func FindCustomerByRef(db *gorm.DB, userID uuid.UUID, ref string) (*Customer, error) {
	var customer Customer

	if id, err := uuid.Parse(ref); err == nil {
		err := db.Where("user_id = ? AND id = ?", userID, id).First(&customer).Error
		if err == nil {
			return &customer, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	no, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := db.Where("user_id = ? AND customer_no = ?", userID, no).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindOrderByRef resolves an order from either key form. Orders are shared
// across the shop's staff accounts, so there is no owner filter.
func FindOrderByRef(db *gorm.DB, ref string) (*Order, error) {
	var order Order

	if id, err := uuid.Parse(ref); err == nil {
		err := db.Preload("Items").Where("id = ?", id).First(&order).Error
		if err == nil {
			return &order, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	no, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := db.Preload("Items").Where("order_no = ?", no).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
