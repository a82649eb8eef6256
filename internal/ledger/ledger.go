// Package ledger holds the pure state transitions of territory ownership and class inventory.
// The store applies them inside its transactions.
package ledger

import (
	"fmt"

	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// OwnershipChange describes the effect of one battle on a territory
type OwnershipChange struct {
	TerritoryID     string         `json:"territory_id"`
	Outcome         domain.Outcome `json:"outcome"`
	PreviousOwnerID *string        `json:"previous_owner_id"`
	NewOwnerID      *string        `json:"new_owner_id"`
	// Changed is false for defender wins and for an attacker re-taking its own territory
	Changed bool `json:"changed"`
}

// ApplyBattleResult returns the territory after a battle.
// An attacker win hands the territory to the attacker whatever the previous owner was;
// a defender win leaves it untouched.
func ApplyBattleResult(outcome domain.Outcome, territory schema.Territory, attackerClassID, defenderClassID string) (schema.Territory, OwnershipChange, error) {
	if !outcome.Valid() {
		return territory, OwnershipChange{}, domain.NewValidationError("outcome", fmt.Sprintf("unknown outcome %q", outcome))
	}
	if attackerClassID == "" || defenderClassID == "" {
		return territory, OwnershipChange{}, domain.NewValidationError("class_id", "attacker and defender classes are required")
	}

	change := OwnershipChange{
		TerritoryID:     territory.ID,
		Outcome:         outcome,
		PreviousOwnerID: copyID(territory.OwnerClassID),
	}

	if outcome == domain.OutcomeAttackerWins {
		change.Changed = !territory.OwnedBy(attackerClassID)
		territory.OwnerClassID = copyID(&attackerClassID)
	}
	change.NewOwnerID = copyID(territory.OwnerClassID)

	return territory, change, nil
}

// UseUnit consumes one unit. The entry is returned unchanged with
// ErrInsufficientInventory when its quantity is already zero.
func UseUnit(entry schema.InventoryEntry) (schema.InventoryEntry, error) {
	if entry.Quantity <= 0 {
		return entry, fmt.Errorf("%w: class %s has no %s left", domain.ErrInsufficientInventory, entry.ClassID, entry.UnitType)
	}
	entry.Quantity--
	return entry, nil
}

// AwardUnit adds one unit, without an upper bound
func AwardUnit(entry schema.InventoryEntry) schema.InventoryEntry {
	entry.Quantity++
	return entry
}

// CountUnits groups a list of units into per-type counts, rejecting unknown types
func CountUnits(units []domain.UnitType) (map[domain.UnitType]int, error) {
	counts := make(map[domain.UnitType]int, len(units))
	for _, u := range units {
		if !domain.IsValidUnitType(u) {
			return nil, domain.NewValidationError("units_used", fmt.Sprintf("unknown unit type %q", u))
		}
		counts[u]++
	}
	return counts, nil
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
