package schema

import (
	"time"

	"github.com/feral-file/world-conquest/internal/domain"
)

// Class represents the classes table - one competing class per period
type Class struct {
	// ID is the class identifier (uuid)
	ID string `gorm:"column:id;primaryKey;type:text" json:"id"`
	// Period is the class period, unique across classes
	Period domain.Period `gorm:"column:period;not null;uniqueIndex" json:"period"`
	// Color is the map colour of territories owned by this class, e.g. #e63946
	Color string `gorm:"column:color;not null;type:text" json:"color"`
	// CreatedAt is the timestamp when this class was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz" json:"created_at"`
}

// TableName specifies the table name for the Class model
func (Class) TableName() string {
	return string(domain.TableClasses)
}

// RecordKey returns the identity used when merging change events
func (c Class) RecordKey() string {
	return c.ID
}
