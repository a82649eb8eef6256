package schema

import (
	"fmt"
	"time"

	"github.com/feral-file/world-conquest/internal/domain"
)

// DailyPollResponse represents the daily_polls table - at most one response per student, class and day
type DailyPollResponse struct {
	// ClassID references the class the student answered for
	ClassID string `gorm:"column:class_id;primaryKey;type:text" json:"class_id"`
	// StudentID references the responding student
	StudentID string `gorm:"column:student_id;primaryKey;type:text" json:"student_id"`
	// Date is the calendar day of the response (UTC)
	Date time.Time `gorm:"column:date;primaryKey;type:date" json:"date"`
	// FeelsRepresented answers "do you feel represented"
	FeelsRepresented bool `gorm:"column:feels_represented;not null" json:"feels_represented"`
	// LikesLeader answers "do you like the leader"
	LikesLeader bool `gorm:"column:likes_leader;not null" json:"likes_leader"`
	// UpdatedAt is when the response was last submitted
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz" json:"updated_at"`
}

// TableName specifies the table name for the DailyPollResponse model
func (DailyPollResponse) TableName() string {
	return string(domain.TablePolls)
}

// RecordKey returns the composite identity class:student:date
func (p DailyPollResponse) RecordKey() string {
	return fmt.Sprintf("%s:%s:%s", p.ClassID, p.StudentID, p.Date.UTC().Format(domain.POLL_DATE_LAYOUT))
}
