package schema

import (
	"time"

	"github.com/feral-file/world-conquest/internal/domain"
)

// StampTransaction represents the stamp_transactions table - an append-only ledger of stamp awards and deductions
type StampTransaction struct {
	// ID is the transaction identifier (uuid)
	ID string `gorm:"column:id;primaryKey;type:text" json:"id"`
	// StudentID references the student whose balance changes
	StudentID string `gorm:"column:student_id;not null;type:text;index" json:"student_id"`
	// ClassID references the student's class
	ClassID string `gorm:"column:class_id;not null;type:text;index" json:"class_id"`
	// Amount is positive for awards and negative for deductions
	Amount int `gorm:"column:amount;not null" json:"amount"`
	// Reason is a free-form note shown in the history
	Reason string `gorm:"column:reason;not null;type:text" json:"reason"`
	// IdempotencyKey deduplicates retried submissions
	IdempotencyKey *string `gorm:"column:idempotency_key;type:text;uniqueIndex" json:"idempotency_key,omitempty"`
	// Timestamp is when the transaction was recorded
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz" json:"timestamp"`

	// Associations
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the StampTransaction model
func (StampTransaction) TableName() string {
	return string(domain.TableStamps)
}

// RecordKey returns the identity used when merging change events
func (s StampTransaction) RecordKey() string {
	return s.ID
}
