package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/ledger"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// journalLockKey is the advisory lock held while journal rows are inserted
const journalLockKey int64 = 0x636f6e71

type pgStore struct {
	db    *gorm.DB
	json  adapter.JSON
	clock adapter.Clock
}

// NewPGStore creates a new PostgreSQL store instance.
// The connection should be opened with gorm.Config{TranslateError: true} so unique
// violations surface as gorm.ErrDuplicatedKey.
func NewPGStore(db *gorm.DB, json adapter.JSON, clock adapter.Clock) Store {
	return &pgStore{db: db, json: json, clock: clock}
}

// ConfigureConnectionPool configures the connection pool settings of the underlying *sql.DB.
// Zero values fall back to: 20 open, 5 idle, 5 minutes lifetime, 10 minutes idle time.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	maxIdleConns = min(maxIdleConns, maxOpenConns)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// recordKeyer is implemented by every journaled entity
type recordKeyer interface {
	RecordKey() string
}

type pendingChange struct {
	table      domain.Table
	changeType domain.ChangeType
	record     recordKeyer
}

// journal buffers the change rows of one transaction until it commits
type journal struct {
	changes []pendingChange
}

func (j *journal) add(table domain.Table, changeType domain.ChangeType, record recordKeyer) {
	j.changes = append(j.changes, pendingChange{table: table, changeType: changeType, record: record})
}

// transaction runs fn in a database transaction and writes its journal rows just before commit
func (s *pgStore) transaction(ctx context.Context, fn func(tx *gorm.DB, j *journal) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		j := &journal{}
		if err := fn(tx, j); err != nil {
			return err
		}
		return s.flushJournal(tx, j)
	})
}

// flushJournal inserts the buffered rows while holding journalLockKey until the transaction ends.
// Cursors are only drawn under the lock, so a journal row never becomes visible before
// a row with a lower cursor.
func (s *pgStore) flushJournal(tx *gorm.DB, j *journal) error {
	if len(j.changes) == 0 {
		return nil
	}

	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", journalLockKey).Error; err != nil {
		return fmt.Errorf("failed to lock change journal: %w", err)
	}

	now := s.clock.Now()
	for _, change := range j.changes {
		data, err := s.json.Marshal(change.record)
		if err != nil {
			return fmt.Errorf("failed to marshal journal record: %w", err)
		}

		entry := schema.ChangesJournal{
			EventID:      ulid.Make().String(),
			SubjectTable: change.table,
			SubjectID:    change.record.RecordKey(),
			ChangeType:   change.changeType,
			Record:       datatypes.JSON(data),
			ChangedAt:    now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create change journal: %w", err)
		}
	}

	return nil
}

// Ping checks the database connection
func (s *pgStore) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

// CreateClass creates a class and one inventory entry per catalogue unit
func (s *pgStore) CreateClass(ctx context.Context, input CreateClassInput) (*schema.Class, error) {
	now := s.clock.Now()
	class := schema.Class{
		ID:        uuid.NewString(),
		Period:    input.Period,
		Color:     input.Color,
		CreatedAt: now,
	}

	err := s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		if err := tx.Create(&class).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewValidationError("period", fmt.Sprintf("period %d already has a class", input.Period))
			}
			return fmt.Errorf("failed to create class: %w", err)
		}
		j.add(domain.TableClasses, domain.ChangeTypeInsert, class)

		for _, unit := range domain.AllUnitTypes {
			entry := schema.InventoryEntry{
				ID:        uuid.NewString(),
				ClassID:   class.ID,
				UnitType:  unit,
				Quantity:  max(input.InitialInventory[unit], 0),
				UpdatedAt: now,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create inventory entry: %w", err)
			}
			j.add(domain.TableInventory, domain.ChangeTypeInsert, entry)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &class, nil
}

// ListClasses lists all classes ordered by period
func (s *pgStore) ListClasses(ctx context.Context) ([]schema.Class, error) {
	var classes []schema.Class
	if err := s.db.WithContext(ctx).Order("period ASC").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

// GetClassByID retrieves a class by ID
func (s *pgStore) GetClassByID(ctx context.Context, id string) (*schema.Class, error) {
	var class schema.Class
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return &class, nil
}

// CreateStudent enrolls a student into the class of their period
func (s *pgStore) CreateStudent(ctx context.Context, input CreateStudentInput) (*schema.Student, error) {
	var student schema.Student

	err := s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		var class schema.Class
		if err := tx.Where("period = ?", input.Period).First(&class).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("class", fmt.Sprintf("for period %d", input.Period))
			}
			return fmt.Errorf("failed to get class for period: %w", err)
		}

		now := s.clock.Now()
		student = schema.Student{
			ID:                uuid.NewString(),
			Name:              input.Name,
			Period:            input.Period,
			ClassID:           class.ID,
			SelectedCountries: datatypes.JSONSlice[string]{},
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.Create(&student).Error; err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}

		j.add(domain.TableStudents, domain.ChangeTypeInsert, student)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &student, nil
}

// ListStudentsByPeriod lists the students of a period ordered by name
func (s *pgStore) ListStudentsByPeriod(ctx context.Context, period domain.Period) ([]schema.Student, error) {
	var students []schema.Student
	err := s.db.WithContext(ctx).
		Where("period = ?", period).
		Order("name ASC, id ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// GetStudentByID retrieves a student by ID
func (s *pgStore) GetStudentByID(ctx context.Context, id string) (*schema.Student, error) {
	var student schema.Student
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &student, nil
}

// UpdateStudentCountries replaces the selected countries of a student
func (s *pgStore) UpdateStudentCountries(ctx context.Context, studentID string, countries []string) (*schema.Student, error) {
	var student schema.Student

	err := s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", studentID).First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("student", studentID)
			}
			return fmt.Errorf("failed to get student: %w", err)
		}

		student.SelectedCountries = datatypes.JSONSlice[string](countries)
		student.UpdatedAt = s.clock.Now()
		if err := tx.Model(&schema.Student{}).Where("id = ?", studentID).Updates(map[string]any{
			"selected_countries": student.SelectedCountries,
			"updated_at":         student.UpdatedAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to update selected countries: %w", err)
		}

		j.add(domain.TableStudents, domain.ChangeTypeUpdate, student)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &student, nil
}

// CreateTerritory creates a territory
func (s *pgStore) CreateTerritory(ctx context.Context, input CreateTerritoryInput) (*schema.Territory, error) {
	territory := schema.Territory{
		ID:           uuid.NewString(),
		CountryName:  input.CountryName,
		OwnerClassID: input.OwnerClassID,
		UpdatedAt:    s.clock.Now(),
	}

	err := s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		if err := tx.Create(&territory).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewValidationError("country_name", fmt.Sprintf("territory %s already exists", input.CountryName))
			}
			return fmt.Errorf("failed to create territory: %w", err)
		}
		j.add(domain.TableTerritories, domain.ChangeTypeInsert, territory)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &territory, nil
}

// ListTerritories lists all territories ordered by country name
func (s *pgStore) ListTerritories(ctx context.Context) ([]schema.Territory, error) {
	var territories []schema.Territory
	if err := s.db.WithContext(ctx).Order("country_name ASC").Find(&territories).Error; err != nil {
		return nil, fmt.Errorf("failed to list territories: %w", err)
	}
	return territories, nil
}

// ListTerritoriesWithOwner lists territories joined with the owner's period and colour
func (s *pgStore) ListTerritoriesWithOwner(ctx context.Context) ([]schema.TerritoryWithOwner, error) {
	var rows []schema.TerritoryWithOwner
	err := s.db.WithContext(ctx).
		Table("territories").
		Select("territories.*, classes.period AS owner_period, COALESCE(classes.color, ?) AS color", domain.UNOWNED_TERRITORY_COLOR).
		Joins("LEFT JOIN classes ON classes.id = territories.owner_class_id").
		Order("territories.country_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list territories with owner: %w", err)
	}
	return rows, nil
}

// GetTerritoryByID retrieves a territory by ID
func (s *pgStore) GetTerritoryByID(ctx context.Context, id string) (*schema.Territory, error) {
	var territory schema.Territory
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&territory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get territory: %w", err)
	}
	return &territory, nil
}

// GetTerritoriesByNames retrieves the territories matching the country names
func (s *pgStore) GetTerritoriesByNames(ctx context.Context, names []string) ([]schema.Territory, error) {
	if len(names) == 0 {
		return []schema.Territory{}, nil
	}

	var territories []schema.Territory
	if err := s.db.WithContext(ctx).Where("country_name IN ?", names).Find(&territories).Error; err != nil {
		return nil, fmt.Errorf("failed to get territories by names: %w", err)
	}
	return territories, nil
}

// ListInventoryByClass lists the inventory entries of a class
func (s *pgStore) ListInventoryByClass(ctx context.Context, classID string) ([]schema.InventoryEntry, error) {
	var entries []schema.InventoryEntry
	err := s.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("unit_type ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return entries, nil
}

// lockInventoryEntry loads an inventory entry with a row lock, nil when absent
func lockInventoryEntry(tx *gorm.DB, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error) {
	var entry schema.InventoryEntry
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("class_id = ? AND unit_type = ?", classID, unitType).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock inventory entry: %w", err)
	}
	return &entry, nil
}

func (s *pgStore) saveInventoryEntry(tx *gorm.DB, j *journal, entry *schema.InventoryEntry) error {
	entry.UpdatedAt = s.clock.Now()
	if err := tx.Model(&schema.InventoryEntry{}).Where("id = ?", entry.ID).Updates(map[string]any{
		"quantity":   entry.Quantity,
		"updated_at": entry.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update inventory entry: %w", err)
	}
	j.add(domain.TableInventory, domain.ChangeTypeUpdate, *entry)
	return nil
}

// UseUnit consumes one unit of a class
func (s *pgStore) UseUnit(ctx context.Context, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error) {
	var result schema.InventoryEntry

	err := s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		entry, err := lockInventoryEntry(tx, classID, unitType)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.NewNotFoundError("inventory entry", fmt.Sprintf("%s/%s", classID, unitType))
		}

		updated, err := ledger.UseUnit(*entry)
		if err != nil {
			return err
		}
		if err := s.saveInventoryEntry(tx, j, &updated); err != nil {
			return err
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AwardUnit grants one unit to a class, creating the entry when the class has none
func (s *pgStore) AwardUnit(ctx context.Context, classID string, unitType domain.UnitType) (*schema.InventoryEntry, error) {
	var result schema.InventoryEntry

	err := s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		entry, err := lockInventoryEntry(tx, classID, unitType)
		if err != nil {
			return err
		}

		if entry == nil {
			result = ledger.AwardUnit(schema.InventoryEntry{
				ID:        uuid.NewString(),
				ClassID:   classID,
				UnitType:  unitType,
				UpdatedAt: s.clock.Now(),
			})
			if err := tx.Create(&result).Error; err != nil {
				return fmt.Errorf("failed to create inventory entry: %w", err)
			}
			j.add(domain.TableInventory, domain.ChangeTypeInsert, result)
			return nil
		}

		result = ledger.AwardUnit(*entry)
		return s.saveInventoryEntry(tx, j, &result)
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AppendStampTransaction appends a stamp transaction, deduplicating on the idempotency key
func (s *pgStore) AppendStampTransaction(ctx context.Context, input AppendStampInput) (*schema.StampTransaction, bool, error) {
	stamp := schema.StampTransaction{
		ID:             uuid.NewString(),
		StudentID:      input.StudentID,
		ClassID:        input.ClassID,
		Amount:         input.Amount,
		Reason:         input.Reason,
		IdempotencyKey: input.IdempotencyKey,
		Timestamp:      input.Timestamp.UTC(),
	}
	created := false

	err := s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		// ON CONFLICT DO NOTHING on the idempotency key: a retried award returns the original row
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoNothing: true,
		}).Create(&stamp)
		if res.Error != nil {
			return fmt.Errorf("failed to append stamp transaction: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			if input.IdempotencyKey == nil {
				return fmt.Errorf("stamp transaction %s was not inserted", stamp.ID)
			}
			var existing schema.StampTransaction
			if err := tx.Where("idempotency_key = ?", *input.IdempotencyKey).First(&existing).Error; err != nil {
				return fmt.Errorf("failed to get existing stamp transaction: %w", err)
			}
			stamp = existing
			return nil
		}

		created = true
		j.add(domain.TableStamps, domain.ChangeTypeInsert, stamp)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &stamp, created, nil
}

// ListStampTransactions lists a student's transactions newest first
func (s *pgStore) ListStampTransactions(ctx context.Context, studentID string) ([]schema.StampTransaction, error) {
	var stamps []schema.StampTransaction
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order(`"timestamp" DESC, id DESC`).
		Find(&stamps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stamp transactions: %w", err)
	}
	return stamps, nil
}

// RecordBattle consumes the attacker's units, records the battle and applies the ownership change.
// Nothing is written when any unit is short.
func (s *pgStore) RecordBattle(ctx context.Context, input RecordBattleInput) (*RecordBattleResult, error) {
	counts, err := ledger.CountUnits(input.UnitsUsed)
	if err != nil {
		return nil, err
	}

	result := RecordBattleResult{}

	err = s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		// 1. Lock the territory so the ownership write sees the latest owner
		var territory schema.Territory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", input.TerritoryID).First(&territory).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("territory", input.TerritoryID)
			}
			return fmt.Errorf("failed to get territory: %w", err)
		}

		// 2. Consume the units used, in catalogue order
		for _, unit := range domain.AllUnitTypes {
			n := counts[unit]
			if n == 0 {
				continue
			}

			entry, err := lockInventoryEntry(tx, input.AttackerClassID, unit)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("%w: class %s has no %s", domain.ErrInsufficientInventory, input.AttackerClassID, unit)
			}

			updated := *entry
			for rangeIdx := 0; rangeIdx < n; rangeIdx++ {
				if updated, err = ledger.UseUnit(updated); err != nil {
					return err
				}
			}
			if err := s.saveInventoryEntry(tx, j, &updated); err != nil {
				return err
			}
			result.Inventory = append(result.Inventory, updated)
		}

		// 3. Record the battle
		units := input.UnitsUsed
		if units == nil {
			units = []domain.UnitType{}
		}
		result.Battle = schema.Battle{
			ID:               uuid.NewString(),
			AttackerClassID:  input.AttackerClassID,
			DefenderClassID:  input.DefenderClassID,
			TerritoryID:      input.TerritoryID,
			AttackerRoll:     input.AttackerRoll,
			DefenderRoll:     input.DefenderRoll,
			AttackerModifier: input.AttackerModifier,
			DefenderModifier: input.DefenderModifier,
			Outcome:          input.Outcome,
			UnitsUsed:        datatypes.JSONSlice[domain.UnitType](units),
			Narrative:        input.Narrative,
			Timestamp:        input.Timestamp.UTC(),
		}
		if err := tx.Create(&result.Battle).Error; err != nil {
			return fmt.Errorf("failed to create battle: %w", err)
		}
		j.add(domain.TableBattles, domain.ChangeTypeInsert, result.Battle)

		// 4. Apply the ownership change
		updated, change, err := ledger.ApplyBattleResult(input.Outcome, territory, input.AttackerClassID, input.DefenderClassID)
		if err != nil {
			return err
		}
		result.Territory = updated
		result.Ownership = change

		if !change.Changed {
			return nil
		}

		result.Territory.UpdatedAt = input.Timestamp.UTC()
		if err := tx.Model(&schema.Territory{}).Where("id = ?", territory.ID).Updates(map[string]any{
			"owner_class_id": result.Territory.OwnerClassID,
			"updated_at":     result.Territory.UpdatedAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to update territory owner: %w", err)
		}

		j.add(domain.TableTerritories, domain.ChangeTypeUpdate, result.Territory)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ListBattles lists battles newest first
func (s *pgStore) ListBattles(ctx context.Context, filter BattleFilter) ([]schema.Battle, error) {
	query := s.db.WithContext(ctx).Model(&schema.Battle{})

	if filter.TerritoryID != "" {
		query = query.Where("territory_id = ?", filter.TerritoryID)
	}
	if filter.ClassID != "" {
		query = query.Where("attacker_class_id = ? OR defender_class_id = ?", filter.ClassID, filter.ClassID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var battles []schema.Battle
	if err := query.Order(`"timestamp" DESC, id DESC`).Find(&battles).Error; err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}
	return battles, nil
}

// UpsertPollResponse inserts or replaces the response of (class, student, date)
func (s *pgStore) UpsertPollResponse(ctx context.Context, response schema.DailyPollResponse) (*schema.DailyPollResponse, error) {
	response.Date = domain.PollDate(response.Date)
	response.UpdatedAt = s.clock.Now()

	err := s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
		var existing int64
		if err := tx.Model(&schema.DailyPollResponse{}).
			Where("class_id = ? AND student_id = ? AND date = ?", response.ClassID, response.StudentID, response.Date).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check existing poll response: %w", err)
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "class_id"}, {Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"feels_represented", "likes_leader", "updated_at"}),
		}).Create(&response).Error; err != nil {
			return fmt.Errorf("failed to upsert poll response: %w", err)
		}

		changeType := domain.ChangeTypeInsert
		if existing > 0 {
			changeType = domain.ChangeTypeUpdate
		}
		j.add(domain.TablePolls, changeType, response)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// ListPollResponses lists responses for a date, for all classes when classID is empty
func (s *pgStore) ListPollResponses(ctx context.Context, classID string, date time.Time) ([]schema.DailyPollResponse, error) {
	query := s.db.WithContext(ctx).Where("date = ?", domain.PollDate(date))
	if classID != "" {
		query = query.Where("class_id = ?", classID)
	}

	var responses []schema.DailyPollResponse
	if err := query.Order("class_id ASC, student_id ASC").Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to list poll responses: %w", err)
	}
	return responses, nil
}

// GetChanges lists journal rows in cursor order
func (s *pgStore) GetChanges(ctx context.Context, filter ChangesQueryFilter) ([]schema.ChangesJournal, error) {
	query := s.db.WithContext(ctx).Model(&schema.ChangesJournal{})

	if filter.Anchor != nil {
		query = query.Where(`"cursor" > ?`, *filter.Anchor)
	}
	if len(filter.Tables) > 0 {
		query = query.Where("subject_table IN ?", filter.Tables)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var changes []schema.ChangesJournal
	if err := query.Order(`"cursor" ASC`).Find(&changes).Error; err != nil {
		return nil, fmt.Errorf("failed to query changes: %w", err)
	}
	return changes, nil
}

// GetLatestChangeCursor returns the highest journal cursor
func (s *pgStore) GetLatestChangeCursor(ctx context.Context) (int64, error) {
	var cursor int64
	err := s.db.WithContext(ctx).
		Model(&schema.ChangesJournal{}).
		Select(`COALESCE(MAX("cursor"), 0)`).
		Scan(&cursor).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get latest change cursor: %w", err)
	}
	return cursor, nil
}
