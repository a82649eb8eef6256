package schema

import (
	"time"

	"github.com/feral-file/world-conquest/internal/domain"
)

// InventoryEntry represents the class_inventory table - unit counts per class
type InventoryEntry struct {
	// ID is the entry identifier (uuid)
	ID string `gorm:"column:id;primaryKey;type:text" json:"id"`
	// ClassID references the owning class
	ClassID string `gorm:"column:class_id;not null;type:text;uniqueIndex:idx_class_inventory_class_unit,priority:1" json:"class_id"`
	// UnitType is the kind of unit held
	UnitType domain.UnitType `gorm:"column:unit_type;not null;type:text;uniqueIndex:idx_class_inventory_class_unit,priority:2" json:"unit_type"`
	// Quantity is never negative
	Quantity int `gorm:"column:quantity;not null;default:0" json:"quantity"`
	// UpdatedAt is the timestamp when the quantity last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz" json:"updated_at"`

	// Associations
	Class Class `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the InventoryEntry model
func (InventoryEntry) TableName() string {
	return string(domain.TableInventory)
}

// RecordKey returns the identity used when merging change events
func (e InventoryEntry) RecordKey() string {
	return e.ID
}
