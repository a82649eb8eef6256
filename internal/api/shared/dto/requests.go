package dto

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/feral-file/world-conquest/internal/api/shared/constants"
	"github.com/feral-file/world-conquest/internal/domain"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CreateClassRequest represents the request body for creating a class
type CreateClassRequest struct {
	Period int    `json:"period"`
	Color  string `json:"color"`
	// InitialInventory seeds unit quantities keyed by unit type
	InitialInventory map[string]int `json:"initial_inventory,omitempty"`
}

// Validate validates the request body
func (r *CreateClassRequest) Validate() error {
	verr := &domain.ValidationError{}
	if !domain.IsValidPeriod(domain.Period(r.Period)) {
		verr.Add("period", "period must be one of 1, 2, 5, 6")
	}
	if !colorPattern.MatchString(r.Color) {
		verr.Add("color", "color must be a hex colour like #e63946")
	}
	for unit, qty := range r.InitialInventory {
		if !domain.IsValidUnitType(domain.UnitType(unit)) {
			verr.Add("initial_inventory", fmt.Sprintf("unknown unit type %q", unit))
			continue
		}
		if qty < 0 {
			verr.Add("initial_inventory", fmt.Sprintf("quantity of %s must not be negative", unit))
		}
	}
	return verr.OrNil()
}

// Inventory converts the seed quantities to unit types
func (r *CreateClassRequest) Inventory() map[domain.UnitType]int {
	inventory := make(map[domain.UnitType]int, len(r.InitialInventory))
	for unit, qty := range r.InitialInventory {
		inventory[domain.UnitType(unit)] = qty
	}
	return inventory
}

// CreateStudentRequest represents the request body for enrolling a student
type CreateStudentRequest struct {
	Name   string `json:"name"`
	Period int    `json:"period"`
}

// Validate validates the request body
func (r *CreateStudentRequest) Validate() error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(r.Name) == "" {
		verr.Add("name", "name is required")
	}
	if !domain.IsValidPeriod(domain.Period(r.Period)) {
		verr.Add("period", "period must be one of 1, 2, 5, 6")
	}
	return verr.OrNil()
}

// SelectCountriesRequest represents the request body for a student's country picks
type SelectCountriesRequest struct {
	Countries []string `json:"countries"`
}

// Validate checks the shape of the selection; existence is checked against the store
func (r *SelectCountriesRequest) Validate() error {
	if len(r.Countries) > domain.MAX_SELECTED_COUNTRIES {
		return domain.NewValidationError("countries", fmt.Sprintf("at most %d countries can be selected", domain.MAX_SELECTED_COUNTRIES))
	}

	seen := make(map[string]bool, len(r.Countries))
	for _, name := range r.Countries {
		if strings.TrimSpace(name) == "" {
			return domain.NewValidationError("countries", "country name must not be empty")
		}
		if seen[name] {
			return domain.NewValidationError("countries", fmt.Sprintf("country %s selected twice", name))
		}
		seen[name] = true
	}
	return nil
}

// CreateTerritoryRequest represents the request body for creating a territory
type CreateTerritoryRequest struct {
	CountryName  string  `json:"country_name"`
	OwnerClassID *string `json:"owner_class_id,omitempty"`
}

// Validate validates the request body
func (r *CreateTerritoryRequest) Validate() error {
	if strings.TrimSpace(r.CountryName) == "" {
		return domain.NewValidationError("country_name", "country_name is required")
	}
	return nil
}

// AwardStampsRequest represents the request body for awarding or deducting stamps
type AwardStampsRequest struct {
	StudentID string `json:"student_id"`
	ClassID   string `json:"class_id"`
	// Amount is positive for an award and negative for a penalty
	Amount         int    `json:"amount"`
	Reason         string `json:"reason"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// Validate validates the request body
func (r *AwardStampsRequest) Validate() error {
	if utf8.RuneCountInString(r.Reason) > constants.MAX_STAMP_REASON_CHARS {
		return domain.NewValidationError("reason", fmt.Sprintf("reason must be at most %d characters", constants.MAX_STAMP_REASON_CHARS))
	}
	return nil
}

// ExecuteBattleRequest represents the request body for running a battle
type ExecuteBattleRequest struct {
	AttackerClassID  string   `json:"attacker_class_id"`
	DefenderClassID  string   `json:"defender_class_id"`
	TerritoryID      string   `json:"territory_id"`
	AttackerModifier int      `json:"attacker_modifier"`
	DefenderModifier int      `json:"defender_modifier"`
	UnitsUsed        []string `json:"units_used,omitempty"`
}

// Units converts the used unit names to unit types
func (r *ExecuteBattleRequest) Units() []domain.UnitType {
	units := make([]domain.UnitType, len(r.UnitsUsed))
	for i, u := range r.UnitsUsed {
		units[i] = domain.UnitType(u)
	}
	return units
}

// Validate checks the references of the request; modifier ranges are checked by the battle resolver
func (r *ExecuteBattleRequest) Validate() error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(r.AttackerClassID) == "" {
		verr.Add("attacker_class_id", "attacker_class_id is required")
	}
	if strings.TrimSpace(r.DefenderClassID) == "" {
		verr.Add("defender_class_id", "defender_class_id is required")
	}
	if r.AttackerClassID != "" && r.AttackerClassID == r.DefenderClassID {
		verr.Add("defender_class_id", "attacker and defender must be different classes")
	}
	if strings.TrimSpace(r.TerritoryID) == "" {
		verr.Add("territory_id", "territory_id is required")
	}
	return verr.OrNil()
}

// SubmitPollRequest represents the request body for a daily poll response
type SubmitPollRequest struct {
	ClassID   string `json:"class_id"`
	StudentID string `json:"student_id"`
	// Date is YYYY-MM-DD, today when omitted
	Date             string `json:"date,omitempty"`
	FeelsRepresented bool   `json:"feels_represented"`
	LikesLeader      bool   `json:"likes_leader"`
}
