package models

import (
	"gorm.io/gorm"
)

// Counter holds the last issued sequential number per entity type.
// Mutated only through NextSequence; never read-modify-write in handlers.
type Counter struct {
	Name string `gorm:"primaryKey" json:"name"`
	Seq  int64  `gorm:"not null;default:0" json:"seq"`
}

// Entity type keys for NextSequence.
const (
	CounterCustomer = "customer"
	CounterOrder    = "order"
	CounterPayment  = "payment"
)

// NextSequence atomically increments and returns the counter for the given
// entity type, creating it at 1 on first use. The whole operation is a single
// upsert so concurrent callers can never receive the same value.
// Retries once before surfacing the error; callers must abort entity
// creation when this fails.
func NextSequence(db *gorm.DB, name string) (int64, error) {
	var seq int64
	err := db.Raw(`
		INSERT INTO counters (name, seq) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`, name).Scan(&seq).Error

	if err != nil {
		// A failure here is usually a transient race or connection blip,
		// not bad data. One retry, then fail loudly.
		err = db.Raw(`
			INSERT INTO counters (name, seq) VALUES (?, 1)
			ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
			RETURNING seq
		`, name).Scan(&seq).Error
	}
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// ResetSequence sets a counter back to zero. Admin/maintenance use only.
func ResetSequence(db *gorm.DB, name string) error {
	return db.Exec(`
		INSERT INTO counters (name, seq) VALUES (?, 0)
		ON CONFLICT (name) DO UPDATE SET seq = 0
	`, name).Error
}
