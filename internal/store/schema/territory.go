package schema

import (
	"time"

	"github.com/feral-file/world-conquest/internal/domain"
)

// Territory represents the territories table - a capturable country on the map
type Territory struct {
	// ID is the territory identifier (uuid)
	ID string `gorm:"column:id;primaryKey;type:text" json:"id"`
	// CountryName is the unique country name shown on the map
	CountryName string `gorm:"column:country_name;not null;type:text;uniqueIndex" json:"country_name"`
	// OwnerClassID references the owning class, nil when unowned
	OwnerClassID *string `gorm:"column:owner_class_id;type:text;index" json:"owner_class_id"`
	// UpdatedAt is the timestamp of the last ownership change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz" json:"updated_at"`
}

// TableName specifies the table name for the Territory model
func (Territory) TableName() string {
	return string(domain.TableTerritories)
}

// RecordKey returns the identity used when merging change events
func (t Territory) RecordKey() string {
	return t.ID
}

// OwnedBy reports whether the territory belongs to the given class
func (t Territory) OwnedBy(classID string) bool {
	return t.OwnerClassID != nil && *t.OwnerClassID == classID
}

// TerritoryWithOwner is a territory joined with its owner's colour for map rendering
type TerritoryWithOwner struct {
	Territory
	// OwnerPeriod is the period of the owning class, nil when unowned
	OwnerPeriod *domain.Period `gorm:"column:owner_period" json:"owner_period"`
	// Color is the owner's colour, or the unowned colour
	Color string `gorm:"column:color" json:"color"`
}
