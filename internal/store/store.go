package store

import (
	"context"
	"time"

	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/ledger"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// CreateClassInput represents the input for creating a class
type CreateClassInput struct {
	Period domain.Period
	Color  string
	// InitialInventory seeds unit quantities; every catalogue unit gets an entry, zero when absent
	InitialInventory map[domain.UnitType]int
}

// CreateStudentInput represents the input for enrolling a student
type CreateStudentInput struct {
	Name   string
	Period domain.Period
}

// CreateTerritoryInput represents the input for creating a territory
type CreateTerritoryInput struct {
	CountryName  string
	OwnerClassID *string
}

// AppendStampInput represents the input for appending a stamp transaction
type AppendStampInput struct {
	StudentID      string
	ClassID        string
	Amount         int
	Reason         string
	IdempotencyKey *string
	Timestamp      time.Time
}

// RecordBattleInput represents a resolved battle to be recorded
type RecordBattleInput struct {
	AttackerClassID  string
	DefenderClassID  string
	TerritoryID      string
	AttackerRoll     int
	DefenderRoll     int
	AttackerModifier int
	DefenderModifier int
	Outcome          domain.Outcome
	UnitsUsed        []domain.UnitType
	Narrative        string
	Timestamp        time.Time
}

// RecordBattleResult holds every row written by RecordBattle
type RecordBattleResult struct {
	Battle    schema.Battle
	Territory schema.Territory
	Ownership ledger.OwnershipChange
	// Inventory holds the attacker entries after unit consumption
	Inventory []schema.InventoryEntry
}

// BattleFilter narrows the battle history
type BattleFilter struct {
	TerritoryID string
	// ClassID matches either side
	ClassID string
	Limit   int
}

// ChangesQueryFilter represents the filter for querying the changes journal
type ChangesQueryFilter struct {
	// Anchor returns changes with a cursor strictly greater than it
	Anchor *int64
	Tables []domain.Table
	Limit  int
}

// Store defines the interface for the game record store.
// Every mutation writes its changes journal rows in the same transaction.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	CursorStore

	// Ping checks the database connection
	Ping(ctx context.Context) error

	// CreateClass creates a class and its inventory entries
	CreateClass(ctx context.Context, input CreateClassInput) (*schema.Class, error)
	// ListClasses lists all classes ordered by period
	ListClasses(ctx context.Context) ([]schema.Class, error)
	// GetClassByID retrieves a class, nil when it does not exist
	GetClassByID(ctx context.Context, id string) (*schema.Class, error)

	// CreateStudent enrolls a student into the class of their period
	CreateStudent(ctx context.Context, input CreateStudentInput) (*schema.Student, error)
	// ListStudentsByPeriod lists the students of a period ordered by name
	ListStudentsByPeriod(ctx context.Context, period domain.Period) ([]schema.Student, error)
	// GetStudentByID retrieves a student, nil when it does not exist
	GetStudentByID(ctx context.Context, id string) (*schema.Student, error)
	// UpdateStudentCountries replaces the selected countries of a student
	UpdateStudentCountries(ctx context.Context, studentID string, countries []string) (*schema.Student, error)

	// CreateTerritory creates a territory
	CreateTerritory(ctx context.Context, input CreateTerritoryInput) (*schema.Territory, error)
	// ListTerritories lists all territories ordered by country name
	ListTerritories(ctx context.Context) ([]schema.Territory, error)
	// ListTerritoriesWithOwner lists territories joined with the owner colour
	ListTerritoriesWithOwner(ctx context.Context) ([]schema.TerritoryWithOwner, error)
	// GetTerritoryByID retrieves a territory, nil when it does not exist
	GetTerritoryByID(ctx context.Context, id string) (*schema.Territory, error)
	// GetTerritoriesByNames retrieves the territories matching the country names
	GetTerritoriesByNames(ctx context.Context, names []string) ([]schema.Territory, error)

	// ListInventoryByClass lists the inventory entries of a class
	ListInventoryByClass(ctx context.Context, classID string) ([]schema.InventoryEntry, error)
	// UseUnit consumes one unit, failing with domain.ErrInsufficientInventory at zero
	UseUnit(ctx context.Context, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error)
	// AwardUnit grants one unit
	AwardUnit(ctx context.Context, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error)

	// AppendStampTransaction appends a stamp transaction.
	// When the idempotency key was already used the existing row is returned with created = false.
	AppendStampTransaction(ctx context.Context, input AppendStampInput) (tx *schema.StampTransaction, created bool, err error)
	// ListStampTransactions lists a student's transactions newest first
	ListStampTransactions(ctx context.Context, studentID string) ([]schema.StampTransaction, error)

	// RecordBattle consumes the units used, records the battle and applies the ownership change atomically
	RecordBattle(ctx context.Context, input RecordBattleInput) (*RecordBattleResult, error)
	// ListBattles lists battles newest first
	ListBattles(ctx context.Context, filter BattleFilter) ([]schema.Battle, error)

	// UpsertPollResponse inserts or replaces the response of (class, student, date)
	UpsertPollResponse(ctx context.Context, response schema.DailyPollResponse) (*schema.DailyPollResponse, error)
	// ListPollResponses lists responses for a date, for all classes when classID is empty
	ListPollResponses(ctx context.Context, classID string, date time.Time) ([]schema.DailyPollResponse, error)

	// GetChanges lists journal rows in cursor order
	GetChanges(ctx context.Context, filter ChangesQueryFilter) ([]schema.ChangesJournal, error)
	// GetLatestChangeCursor returns the highest journal cursor, 0 when empty
	GetLatestChangeCursor(ctx context.Context) (int64, error)
}
