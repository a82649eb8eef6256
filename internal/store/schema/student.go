package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/world-conquest/internal/domain"
)

// Student represents the students table
type Student struct {
	// ID is the student identifier (uuid)
	ID string `gorm:"column:id;primaryKey;type:text" json:"id"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text" json:"name"`
	// Period is the class period the student attends
	Period domain.Period `gorm:"column:period;not null;index" json:"period"`
	// ClassID references the class of the student's period
	ClassID string `gorm:"column:class_id;not null;type:text;index" json:"class_id"`
	// SelectedCountries holds up to three country names chosen by the student
	SelectedCountries datatypes.JSONSlice[string] `gorm:"column:selected_countries;not null;type:jsonb" json:"selected_countries"`
	// CreatedAt is the timestamp when this student was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz" json:"created_at"`
	// UpdatedAt is the timestamp when this student was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz" json:"updated_at"`

	// Associations
	Class Class `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the Student model
func (Student) TableName() string {
	return string(domain.TableStudents)
}

// RecordKey returns the identity used when merging change events
func (s Student) RecordKey() string {
	return s.ID
}
