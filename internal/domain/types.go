package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Period represents a class period. Each competing class owns exactly one period.
type Period int

const (
	Period1 Period = 1
	Period2 Period = 2
	Period5 Period = 5
	Period6 Period = 6
)

// IsValidPeriod checks if a period is one of the game's class periods
func IsValidPeriod(p Period) bool {
	return p == Period1 || p == Period2 || p == Period5 || p == Period6
}

// Outcome represents the resolved winner of a battle
type Outcome string

const (
	OutcomeAttackerWins Outcome = "attacker_wins"
	OutcomeDefenderWins Outcome = "defender_wins"
)

// Valid reports whether the outcome is a known value
func (o Outcome) Valid() bool {
	return o == OutcomeAttackerWins || o == OutcomeDefenderWins
}

// Winner returns the side that won the battle
func (o Outcome) Winner() Side {
	if o == OutcomeAttackerWins {
		return SideAttacker
	}
	return SideDefender
}

// Side is one of the two parties of a battle
type Side string

const (
	SideAttacker Side = "attacker"
	SideDefender Side = "defender"
)

// BattleCategory classifies an outcome by winning side and margin
type BattleCategory string

const (
	CategoryAttackerDominant BattleCategory = "attacker_dominant"
	CategoryAttackerNarrow   BattleCategory = "attacker_narrow"
	CategoryDefenderDominant BattleCategory = "defender_dominant"
	CategoryDefenderNarrow   BattleCategory = "defender_narrow"
)

// UnitType represents a consumable military unit held in a class inventory
type UnitType string

const (
	UnitTypeInfantry    UnitType = "infantry"
	UnitTypeTank        UnitType = "tank"
	UnitTypeDrone       UnitType = "drone"
	UnitTypeICBM        UnitType = "icbm"
	UnitTypeNuke        UnitType = "nuke"
	UnitTypeCivilUnrest UnitType = "civil_unrest"
	UnitTypeBattleship  UnitType = "battleship"
)

// AllUnitTypes lists every unit type in catalogue order
var AllUnitTypes = []UnitType{
	UnitTypeInfantry,
	UnitTypeTank,
	UnitTypeDrone,
	UnitTypeICBM,
	UnitTypeNuke,
	UnitTypeCivilUnrest,
	UnitTypeBattleship,
}

// IsValidUnitType checks if a unit type is part of the catalogue
func IsValidUnitType(u UnitType) bool {
	return slices.Contains(AllUnitTypes, u)
}

// Table identifies a collection in the record store
type Table string

const (
	TableClasses     Table = "classes"
	TableStudents    Table = "students"
	TableTerritories Table = "territories"
	TableInventory   Table = "class_inventory"
	TableStamps      Table = "stamp_transactions"
	TableBattles     Table = "battles"
	TablePolls       Table = "daily_polls"
)

// IsValidTable checks if a table name is known
func IsValidTable(t Table) bool {
	switch t {
	case TableClasses, TableStudents, TableTerritories, TableInventory, TableStamps, TableBattles, TablePolls:
		return true
	default:
		return false
	}
}

// ChangeType is the kind of mutation carried by a change event
type ChangeType string

const (
	ChangeTypeInsert ChangeType = "insert"
	ChangeTypeUpdate ChangeType = "update"
)

// ChangeEvent represents a single row mutation in the record store.
// This is the standard format published to NATS and to websocket feed clients.
type ChangeEvent struct {
	ID         string          `json:"id"`          // ULID, sortable by emission time
	Cursor     int64           `json:"cursor"`      // changes journal cursor
	Table      Table           `json:"table"`       // e.g., "territories"
	Type       ChangeType      `json:"event_type"`  // insert or update
	RecordID   string          `json:"record_id"`   // primary key of the changed row
	Record     json.RawMessage `json:"record"`      // full row after the change
	OccurredAt time.Time       `json:"occurred_at"` // write time
}

// Valid checks the structural validity of a change event
func (e *ChangeEvent) Valid() bool {
	if !IsValidTable(e.Table) {
		return false
	}
	if e.Type != ChangeTypeInsert && e.Type != ChangeTypeUpdate {
		return false
	}
	return e.RecordID != "" && len(e.Record) > 0
}

// Subject returns the NATS subject for the event, e.g. changes.territories.update
func (e *ChangeEvent) Subject() string {
	return fmt.Sprintf("changes.%s.%s", e.Table, e.Type)
}

// PollDate normalizes a timestamp to the UTC calendar day used for daily polls
func PollDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParsePollDate parses a YYYY-MM-DD string into a poll date
func ParsePollDate(s string) (time.Time, error) {
	t, err := time.Parse(POLL_DATE_LAYOUT, s)
	if err != nil {
		return time.Time{}, NewValidationError("date", "must be formatted as YYYY-MM-DD")
	}
	return t, nil
}
