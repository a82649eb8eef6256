package statesync

import (
	"fmt"
	"slices"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// Scope selects the period whose students and inventory are cached.
// Classes, territories and battles are global.
type Scope struct {
	Period domain.Period
}

// Snapshot is the cached game state shown by every presentation surface
type Snapshot struct {
	Scope Scope
	// ActiveClassID is the class of the scoped period, empty until classes are loaded
	ActiveClassID string

	Classes     []schema.Class
	Students    []schema.Student
	Territories []schema.TerritoryWithOwner
	// Inventory holds the entries of the active class only
	Inventory []schema.InventoryEntry
	// Battles are kept oldest first so inserts append
	Battles []schema.Battle

	// Cursor is the highest change cursor merged so far
	Cursor int64
}

// Clone returns a deep copy that shares nothing with s
func (s *Snapshot) Clone() Snapshot {
	c := *s
	c.Classes = slices.Clone(s.Classes)

	c.Students = slices.Clone(s.Students)
	for i := range c.Students {
		c.Students[i].SelectedCountries = slices.Clone(c.Students[i].SelectedCountries)
	}

	c.Territories = slices.Clone(s.Territories)
	for i := range c.Territories {
		c.Territories[i].OwnerClassID = clonePtr(c.Territories[i].OwnerClassID)
		c.Territories[i].OwnerPeriod = clonePtr(c.Territories[i].OwnerPeriod)
	}

	c.Inventory = slices.Clone(s.Inventory)

	c.Battles = slices.Clone(s.Battles)
	for i := range c.Battles {
		c.Battles[i].UnitsUsed = slices.Clone(c.Battles[i].UnitsUsed)
	}

	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// mergeByID folds one record into items. An update replaces the record with the
// same id and is dropped when no such record is cached. An insert appends unless
// the id is already cached, in which case it replaces it.
func mergeByID[T any](items []T, item T, id func(T) string, changeType domain.ChangeType) ([]T, bool) {
	key := id(item)
	for i := range items {
		if id(items[i]) == key {
			items[i] = item
			return items, true
		}
	}
	if changeType == domain.ChangeTypeUpdate {
		return items, false
	}
	return append(items, item), true
}

func classID(c schema.Class) string                  { return c.ID }
func studentID(s schema.Student) string              { return s.ID }
func territoryID(t schema.TerritoryWithOwner) string { return t.ID }
func inventoryID(e schema.InventoryEntry) string     { return e.ID }
func battleID(b schema.Battle) string                { return b.ID }

// activeClassID returns the class playing in period, empty when there is none
func activeClassID(classes []schema.Class, period domain.Period) string {
	for _, c := range classes {
		if c.Period == period {
			return c.ID
		}
	}
	return ""
}

// withOwner joins a territory with its owner's colour from the cached classes
func (s *Snapshot) withOwner(t schema.Territory) schema.TerritoryWithOwner {
	row := schema.TerritoryWithOwner{Territory: t, Color: domain.UNOWNED_TERRITORY_COLOR}
	if t.OwnerClassID == nil {
		return row
	}
	for _, c := range s.Classes {
		if c.ID == *t.OwnerClassID {
			period := c.Period
			row.OwnerPeriod = &period
			row.Color = c.Color
			break
		}
	}
	return row
}

func (s *Snapshot) recolor() {
	for i := range s.Territories {
		s.Territories[i] = s.withOwner(s.Territories[i].Territory)
	}
}

// merge folds a change event into the snapshot. It reports whether the snapshot changed.
// Events at or below the snapshot cursor are already reflected and skipped. Records outside
// the scope and tables that are not cached are ignored. The cursor only advances once the
// record was decoded.
func (s *Snapshot) merge(event domain.ChangeEvent, codec adapter.JSON) (bool, error) {
	if event.Cursor > 0 && event.Cursor <= s.Cursor {
		return false, nil
	}

	changed, err := s.mergeRecord(event, codec)
	if err != nil {
		return false, err
	}

	if event.Cursor > s.Cursor {
		s.Cursor = event.Cursor
	}
	return changed, nil
}

func (s *Snapshot) mergeRecord(event domain.ChangeEvent, codec adapter.JSON) (bool, error) {
	var changed bool
	switch event.Table {
	case domain.TableClasses:
		var class schema.Class
		if err := codec.Unmarshal(event.Record, &class); err != nil {
			return false, fmt.Errorf("failed to decode class: %w", err)
		}
		s.Classes, changed = mergeByID(s.Classes, class, classID, event.Type)
		if changed {
			if class.Period == s.Scope.Period {
				s.ActiveClassID = class.ID
			}
			s.recolor()
		}

	case domain.TableStudents:
		var student schema.Student
		if err := codec.Unmarshal(event.Record, &student); err != nil {
			return false, fmt.Errorf("failed to decode student: %w", err)
		}
		if student.Period != s.Scope.Period {
			return false, nil
		}
		s.Students, changed = mergeByID(s.Students, student, studentID, event.Type)

	case domain.TableTerritories:
		var territory schema.Territory
		if err := codec.Unmarshal(event.Record, &territory); err != nil {
			return false, fmt.Errorf("failed to decode territory: %w", err)
		}
		s.Territories, changed = mergeByID(s.Territories, s.withOwner(territory), territoryID, event.Type)

	case domain.TableInventory:
		var entry schema.InventoryEntry
		if err := codec.Unmarshal(event.Record, &entry); err != nil {
			return false, fmt.Errorf("failed to decode inventory entry: %w", err)
		}
		if s.ActiveClassID == "" || entry.ClassID != s.ActiveClassID {
			return false, nil
		}
		s.Inventory, changed = mergeByID(s.Inventory, entry, inventoryID, event.Type)

	case domain.TableBattles:
		var battle schema.Battle
		if err := codec.Unmarshal(event.Record, &battle); err != nil {
			return false, fmt.Errorf("failed to decode battle: %w", err)
		}
		s.Battles, changed = mergeByID(s.Battles, battle, battleID, event.Type)
	}

	return changed, nil
}
