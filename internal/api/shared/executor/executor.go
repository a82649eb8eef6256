package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/api/shared/constants"
	"github.com/feral-file/world-conquest/internal/api/shared/dto"
	"github.com/feral-file/world-conquest/internal/battle"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/ledger"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/poll"
	"github.com/feral-file/world-conquest/internal/stamps"
	"github.com/feral-file/world-conquest/internal/store"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor,Notifier=MockNotifier
type Executor interface {
	// Ping checks the record store
	Ping(ctx context.Context) error

	// CreateClass creates a class with one inventory entry per unit type
	CreateClass(ctx context.Context, req dto.CreateClassRequest) (*schema.Class, error)
	// ListClasses lists classes ordered by period
	ListClasses(ctx context.Context) ([]schema.Class, error)

	// CreateStudent enrolls a student into the class of their period
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*schema.Student, error)
	// ListStudents lists the students of a period
	ListStudents(ctx context.Context, period domain.Period) ([]schema.Student, error)
	// SelectCountries replaces a student's picks with up to three existing countries
	SelectCountries(ctx context.Context, studentID string, req dto.SelectCountriesRequest) (*schema.Student, error)

	// CreateTerritory creates a territory, optionally owned
	CreateTerritory(ctx context.Context, req dto.CreateTerritoryRequest) (*schema.Territory, error)
	// ListTerritories lists territories with their owner colour
	ListTerritories(ctx context.Context) ([]schema.TerritoryWithOwner, error)

	// ListInventory lists a class's unit quantities
	ListInventory(ctx context.Context, classID string) ([]schema.InventoryEntry, error)
	// UseUnit consumes one unit of a class
	UseUnit(ctx context.Context, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error)
	// AwardUnit grants one unit to a class
	AwardUnit(ctx context.Context, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error)

	// AwardStamps appends a stamp award or penalty
	AwardStamps(ctx context.Context, req dto.AwardStampsRequest) (*dto.AwardStampsResponse, error)
	// GetStampAccount returns a student's balance and history
	GetStampAccount(ctx context.Context, studentID string) (*stamps.Account, error)

	// ExecuteBattle resolves and records a battle with strict modifier validation
	ExecuteBattle(ctx context.Context, req dto.ExecuteBattleRequest) (*dto.BattleResponse, error)
	// ListBattles lists battles newest first
	ListBattles(ctx context.Context, territoryID string, classID string, limit *int) ([]schema.Battle, error)
	// GetOdds previews win chances, clamping out-of-range modifiers
	GetOdds(attackerModifier, defenderModifier int) battle.Odds

	// SubmitPoll upserts a student's poll response for a day
	SubmitPoll(ctx context.Context, req dto.SubmitPollRequest) (*schema.DailyPollResponse, error)
	// GetPollResults tallies a day for one class, or for every class when classID is empty
	GetPollResults(ctx context.Context, classID string, date *time.Time) (*dto.PollResultsResponse, error)

	// GetChanges pages through the changes journal after anchor
	GetChanges(ctx context.Context, anchor *int64, tables []domain.Table, limit *int) (*dto.ChangeListResponse, error)
	// GetLatestChangeCursor returns the highest journal cursor, the anchor for a snapshot taken afterwards
	GetLatestChangeCursor(ctx context.Context) (*dto.ChangeCursorResponse, error)
}

// Notifier is told about every committed write so the change feed can relay it promptly
type Notifier interface {
	Notify()
}

type executor struct {
	store    store.Store
	resolver *battle.Resolver
	stamps   *stamps.Service
	polls    *poll.Service
	notifier Notifier
	clock    adapter.Clock
}

func NewExecutor(st store.Store, resolver *battle.Resolver, notifier Notifier, clock adapter.Clock) Executor {
	return &executor{
		store:    st,
		resolver: resolver,
		stamps:   stamps.NewService(st, clock),
		polls:    poll.NewService(st, clock),
		notifier: notifier,
		clock:    clock,
	}
}

// storeError passes typed domain errors through and wraps everything else as a persistence failure
func storeError(op string, err error) error {
	if domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsPersistence(err) ||
		errors.Is(err, domain.ErrInsufficientInventory) {
		return err
	}
	return domain.NewPersistenceError(op, err)
}

func (e *executor) committed() {
	if e.notifier != nil {
		e.notifier.Notify()
	}
}

func (e *executor) Ping(ctx context.Context) error {
	if err := e.store.Ping(ctx); err != nil {
		return domain.NewPersistenceError("ping", err)
	}
	return nil
}

func (e *executor) CreateClass(ctx context.Context, req dto.CreateClassRequest) (*schema.Class, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	class, err := e.store.CreateClass(ctx, store.CreateClassInput{
		Period:           domain.Period(req.Period),
		Color:            strings.ToLower(req.Color),
		InitialInventory: req.Inventory(),
	})
	if err != nil {
		return nil, storeError("create class", err)
	}

	e.committed()
	return class, nil
}

func (e *executor) ListClasses(ctx context.Context) ([]schema.Class, error) {
	classes, err := e.store.ListClasses(ctx)
	if err != nil {
		return nil, storeError("list classes", err)
	}
	return classes, nil
}

func (e *executor) requireClass(ctx context.Context, classID string) (*schema.Class, error) {
	class, err := e.store.GetClassByID(ctx, classID)
	if err != nil {
		return nil, storeError("get class", err)
	}
	if class == nil {
		return nil, domain.NewNotFoundError("class", classID)
	}
	return class, nil
}

func (e *executor) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*schema.Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	student, err := e.store.CreateStudent(ctx, store.CreateStudentInput{
		Name:   strings.TrimSpace(req.Name),
		Period: domain.Period(req.Period),
	})
	if err != nil {
		return nil, storeError("create student", err)
	}

	e.committed()
	return student, nil
}

func (e *executor) ListStudents(ctx context.Context, period domain.Period) ([]schema.Student, error) {
	if !domain.IsValidPeriod(period) {
		return nil, domain.NewValidationError("period", "period must be one of 1, 2, 5, 6")
	}

	students, err := e.store.ListStudentsByPeriod(ctx, period)
	if err != nil {
		return nil, storeError("list students", err)
	}
	return students, nil
}

func (e *executor) SelectCountries(ctx context.Context, studentID string, req dto.SelectCountriesRequest) (*schema.Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if len(req.Countries) > 0 {
		territories, err := e.store.GetTerritoriesByNames(ctx, req.Countries)
		if err != nil {
			return nil, storeError("get territories", err)
		}

		known := make(map[string]bool, len(territories))
		for _, t := range territories {
			known[t.CountryName] = true
		}
		verr := &domain.ValidationError{}
		for _, name := range req.Countries {
			if !known[name] {
				verr.Add("countries", fmt.Sprintf("unknown country %s", name))
			}
		}
		if err := verr.OrNil(); err != nil {
			return nil, err
		}
	}

	countries := req.Countries
	if countries == nil {
		countries = []string{}
	}
	student, err := e.store.UpdateStudentCountries(ctx, studentID, countries)
	if err != nil {
		return nil, storeError("update selected countries", err)
	}

	e.committed()
	return student, nil
}

func (e *executor) CreateTerritory(ctx context.Context, req dto.CreateTerritoryRequest) (*schema.Territory, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.OwnerClassID != nil {
		if _, err := e.requireClass(ctx, *req.OwnerClassID); err != nil {
			return nil, err
		}
	}

	territory, err := e.store.CreateTerritory(ctx, store.CreateTerritoryInput{
		CountryName:  strings.TrimSpace(req.CountryName),
		OwnerClassID: req.OwnerClassID,
	})
	if err != nil {
		return nil, storeError("create territory", err)
	}

	e.committed()
	return territory, nil
}

func (e *executor) ListTerritories(ctx context.Context) ([]schema.TerritoryWithOwner, error) {
	territories, err := e.store.ListTerritoriesWithOwner(ctx)
	if err != nil {
		return nil, storeError("list territories", err)
	}
	return territories, nil
}

func (e *executor) ListInventory(ctx context.Context, classID string) ([]schema.InventoryEntry, error) {
	if _, err := e.requireClass(ctx, classID); err != nil {
		return nil, err
	}

	entries, err := e.store.ListInventoryByClass(ctx, classID)
	if err != nil {
		return nil, storeError("list inventory", err)
	}
	return entries, nil
}

func validateUnit(unitType domain.UnitType) error {
	if !domain.IsValidUnitType(unitType) {
		return domain.NewValidationError("unit_type", fmt.Sprintf("unknown unit type %q", unitType))
	}
	return nil
}

func (e *executor) UseUnit(ctx context.Context, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error) {
	if err := validateUnit(unitType); err != nil {
		return nil, err
	}

	entry, err := e.store.UseUnit(ctx, classID, unitType)
	if err != nil {
		return nil, storeError("use unit", err)
	}

	e.committed()
	return entry, nil
}

func (e *executor) AwardUnit(ctx context.Context, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error) {
	if err := validateUnit(unitType); err != nil {
		return nil, err
	}
	if _, err := e.requireClass(ctx, classID); err != nil {
		return nil, err
	}

	entry, err := e.store.AwardUnit(ctx, classID, unitType)
	if err != nil {
		return nil, storeError("award unit", err)
	}

	e.committed()
	return entry, nil
}

func (e *executor) AwardStamps(ctx context.Context, req dto.AwardStampsRequest) (*dto.AwardStampsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, created, err := e.stamps.Award(ctx, stamps.AwardInput{
		StudentID:      req.StudentID,
		ClassID:        req.ClassID,
		Amount:         req.Amount,
		Reason:         req.Reason,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	if created {
		e.committed()
	} else {
		logger.InfoCtx(ctx, "Stamp award replayed", zap.String("idempotencyKey", req.IdempotencyKey), zap.String("transaction", tx.ID))
	}

	return &dto.AwardStampsResponse{Transaction: *tx, Created: created}, nil
}

func (e *executor) GetStampAccount(ctx context.Context, studentID string) (*stamps.Account, error) {
	return e.stamps.Account(ctx, studentID)
}

func (e *executor) ExecuteBattle(ctx context.Context, req dto.ExecuteBattleRequest) (*dto.BattleResponse, error) {
	// Collect every violation before touching the store
	verr := &domain.ValidationError{}
	var refErr *domain.ValidationError
	if errors.As(req.Validate(), &refErr) {
		verr.Violations = append(verr.Violations, refErr.Violations...)
	}
	var modErr *domain.ValidationError
	if errors.As(battle.Validate(req.AttackerModifier, req.DefenderModifier), &modErr) {
		verr.Violations = append(verr.Violations, modErr.Violations...)
	}
	units := req.Units()
	var unitErr *domain.ValidationError
	if _, err := ledger.CountUnits(units); errors.As(err, &unitErr) {
		verr.Violations = append(verr.Violations, unitErr.Violations...)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := e.requireClass(ctx, req.AttackerClassID); err != nil {
		return nil, err
	}
	if _, err := e.requireClass(ctx, req.DefenderClassID); err != nil {
		return nil, err
	}
	territory, err := e.store.GetTerritoryByID(ctx, req.TerritoryID)
	if err != nil {
		return nil, storeError("get territory", err)
	}
	if territory == nil {
		return nil, domain.NewNotFoundError("territory", req.TerritoryID)
	}

	result, err := e.resolver.Resolve(req.AttackerModifier, req.DefenderModifier)
	if err != nil {
		return nil, err
	}

	recorded, err := e.store.RecordBattle(ctx, store.RecordBattleInput{
		AttackerClassID:  req.AttackerClassID,
		DefenderClassID:  req.DefenderClassID,
		TerritoryID:      req.TerritoryID,
		AttackerRoll:     result.AttackerRoll,
		DefenderRoll:     result.DefenderRoll,
		AttackerModifier: result.AttackerModifier,
		DefenderModifier: result.DefenderModifier,
		Outcome:          result.Outcome,
		UnitsUsed:        units,
		Narrative:        result.Narrative,
		Timestamp:        e.clock.Now(),
	})
	if err != nil {
		return nil, storeError("record battle", err)
	}

	e.committed()

	logger.InfoCtx(ctx, "Battle recorded",
		zap.String("battle", recorded.Battle.ID),
		zap.String("territory", territory.CountryName),
		zap.String("outcome", string(result.Outcome)),
		zap.String("category", string(result.Category)),
		zap.Bool("ownershipChanged", recorded.Ownership.Changed))

	return &dto.BattleResponse{
		Battle:    recorded.Battle,
		Result:    *result,
		Territory: recorded.Territory,
		Ownership: recorded.Ownership,
		Inventory: recorded.Inventory,
	}, nil
}

func (e *executor) ListBattles(ctx context.Context, territoryID string, classID string, limit *int) ([]schema.Battle, error) {
	l := constants.DEFAULT_BATTLES_LIMIT
	if limit != nil && *limit > 0 {
		l = min(*limit, constants.MAX_PAGE_SIZE)
	}

	battles, err := e.store.ListBattles(ctx, store.BattleFilter{
		TerritoryID: territoryID,
		ClassID:     classID,
		Limit:       l,
	})
	if err != nil {
		return nil, storeError("list battles", err)
	}
	return battles, nil
}

func (e *executor) GetOdds(attackerModifier, defenderModifier int) battle.Odds {
	return e.resolver.Odds(attackerModifier, defenderModifier)
}

func (e *executor) SubmitPoll(ctx context.Context, req dto.SubmitPollRequest) (*schema.DailyPollResponse, error) {
	var date time.Time
	if req.Date != "" {
		d, err := domain.ParsePollDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	response, err := e.polls.Submit(ctx, poll.SubmitInput{
		ClassID:          req.ClassID,
		StudentID:        req.StudentID,
		Date:             date,
		FeelsRepresented: req.FeelsRepresented,
		LikesLeader:      req.LikesLeader,
	})
	if err != nil {
		return nil, err
	}

	e.committed()
	return response, nil
}

func (e *executor) GetPollResults(ctx context.Context, classID string, date *time.Time) (*dto.PollResultsResponse, error) {
	day := e.clock.Today()
	if date != nil {
		day = domain.PollDate(*date)
	}

	resp := &dto.PollResultsResponse{Date: day.Format(domain.POLL_DATE_LAYOUT)}

	if classID == "" {
		tallies, err := e.polls.AggregateAll(ctx, day)
		if err != nil {
			return nil, err
		}
		resp.Classes = tallies
		return resp, nil
	}

	if _, err := e.requireClass(ctx, classID); err != nil {
		return nil, err
	}
	tally, err := e.polls.AggregateForDate(ctx, classID, day)
	if err != nil {
		return nil, err
	}
	resp.Classes = []poll.Tally{tally}
	return resp, nil
}

func (e *executor) GetChanges(ctx context.Context, anchor *int64, tables []domain.Table, limit *int) (*dto.ChangeListResponse, error) {
	l := constants.DEFAULT_CHANGES_LIMIT
	if limit != nil && *limit > 0 {
		l = min(*limit, constants.MAX_CHANGES_PAGE_SIZE)
	}

	for _, t := range tables {
		if !domain.IsValidTable(t) {
			return nil, domain.NewValidationError("table", fmt.Sprintf("unknown table %q", t))
		}
	}

	rows, err := e.store.GetChanges(ctx, store.ChangesQueryFilter{
		Anchor: anchor,
		Tables: tables,
		Limit:  l,
	})
	if err != nil {
		return nil, storeError("get changes", err)
	}

	return dto.MapChangesToDTO(rows, l), nil
}

func (e *executor) GetLatestChangeCursor(ctx context.Context) (*dto.ChangeCursorResponse, error) {
	cursor, err := e.store.GetLatestChangeCursor(ctx)
	if err != nil {
		return nil, storeError("get latest change cursor", err)
	}
	return &dto.ChangeCursorResponse{Cursor: cursor}, nil
}
