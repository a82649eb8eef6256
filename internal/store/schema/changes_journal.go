package schema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/world-conquest/internal/domain"
)

// ChangesJournal represents the changes_journal table - audit log of every committed row mutation.
// Rows are relayed in cursor order to the change feed.
type ChangesJournal struct {
	// Cursor is an auto-incrementing sequence number for efficient pagination and ordering
	Cursor int64 `gorm:"column:\"cursor\";primaryKey;autoIncrement"`
	// EventID is the ULID of the change event
	EventID string `gorm:"column:event_id;not null;type:text;uniqueIndex"`
	// SubjectTable identifies which collection changed
	SubjectTable domain.Table `gorm:"column:subject_table;not null;type:text"`
	// SubjectID is the record key of the changed row
	SubjectID string `gorm:"column:subject_id;not null;type:text"`
	// ChangeType is insert or update
	ChangeType domain.ChangeType `gorm:"column:change_type;not null;type:text"`
	// Record is the full row after the change
	Record datatypes.JSON `gorm:"column:record;not null;type:jsonb"`
	// ChangedAt is the timestamp when the change occurred
	ChangedAt time.Time `gorm:"column:changed_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ChangesJournal model
func (ChangesJournal) TableName() string {
	return "changes_journal"
}

// ToEvent converts the journal row to the change event published on the feed
func (j ChangesJournal) ToEvent() domain.ChangeEvent {
	return domain.ChangeEvent{
		ID:         j.EventID,
		Cursor:     j.Cursor,
		Table:      j.SubjectTable,
		Type:       j.ChangeType,
		RecordID:   j.SubjectID,
		Record:     json.RawMessage(j.Record),
		OccurredAt: j.ChangedAt,
	}
}
