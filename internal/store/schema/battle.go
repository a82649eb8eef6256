package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/world-conquest/internal/domain"
)

// Battle represents the battles table - the historical record of each resolved battle
type Battle struct {
	// ID is the battle identifier (uuid)
	ID               string         `gorm:"column:id;primaryKey;type:text" json:"id"`
	AttackerClassID  string         `gorm:"column:attacker_class_id;not null;type:text;index" json:"attacker_class_id"`
	DefenderClassID  string         `gorm:"column:defender_class_id;not null;type:text;index" json:"defender_class_id"`
	TerritoryID      string         `gorm:"column:territory_id;not null;type:text;index" json:"territory_id"`
	AttackerRoll     int            `gorm:"column:attacker_roll;not null" json:"attacker_roll"`
	DefenderRoll     int            `gorm:"column:defender_roll;not null" json:"defender_roll"`
	AttackerModifier int            `gorm:"column:attacker_modifier;not null" json:"attacker_modifier"`
	DefenderModifier int            `gorm:"column:defender_modifier;not null" json:"defender_modifier"`
	Outcome          domain.Outcome `gorm:"column:outcome;not null;type:text" json:"outcome"`
	// UnitsUsed lists the units consumed from the attacker's inventory
	UnitsUsed datatypes.JSONSlice[domain.UnitType] `gorm:"column:units_used;not null;type:jsonb" json:"units_used"`
	// Narrative is the flavour text shown after the battle
	Narrative string `gorm:"column:narrative;not null;type:text" json:"narrative"`
	// Timestamp is when the battle was resolved
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz" json:"timestamp"`
}

// TableName specifies the table name for the Battle model
func (Battle) TableName() string {
	return string(domain.TableBattles)
}

// RecordKey returns the identity used when merging change events
func (b Battle) RecordKey() string {
	return b.ID
}
