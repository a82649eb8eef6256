package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// seedClass creates a class for a period with optional initial units
func seedClass(t *testing.T, store Store, period domain.Period, color string, units map[domain.UnitType]int) *schema.Class {
	t.Helper()
	class, err := store.CreateClass(context.Background(), CreateClassInput{
		Period:           period,
		Color:            color,
		InitialInventory: units,
	})
	require.NoError(t, err)
	require.NotNil(t, class)
	return class
}

// seedTerritory creates a territory, optionally owned
func seedTerritory(t *testing.T, store Store, name string, owner *string) *schema.Territory {
	t.Helper()
	territory, err := store.CreateTerritory(context.Background(), CreateTerritoryInput{
		CountryName:  name,
		OwnerClassID: owner,
	})
	require.NoError(t, err)
	return territory
}

// seedStudent enrolls a student
func seedStudent(t *testing.T, store Store, name string, period domain.Period) *schema.Student {
	t.Helper()
	student, err := store.CreateStudent(context.Background(), CreateStudentInput{Name: name, Period: period})
	require.NoError(t, err)
	return student
}

// changesSince returns journal rows after the anchor for one table
func changesSince(t *testing.T, store Store, anchor int64, table domain.Table) []schema.ChangesJournal {
	t.Helper()
	changes, err := store.GetChanges(context.Background(), ChangesQueryFilter{
		Anchor: &anchor,
		Tables: []domain.Table{table},
	})
	require.NoError(t, err)
	return changes
}

func latestCursor(t *testing.T, store Store) int64 {
	t.Helper()
	cursor, err := store.GetLatestChangeCursor(context.Background())
	require.NoError(t, err)
	return cursor
}

func inventoryOf(t *testing.T, store Store, classID string) map[domain.UnitType]int {
	t.Helper()
	entries, err := store.ListInventoryByClass(context.Background(), classID)
	require.NoError(t, err)
	out := make(map[domain.UnitType]int, len(entries))
	for _, e := range entries {
		out[e.UnitType] = e.Quantity
	}
	return out
}

func stringPtr(s string) *string {
	return &s
}

// =============================================================================
// Test: Classes
// =============================================================================

func testClasses(t *testing.T, store Store) {
	ctx := context.Background()
	anchor := latestCursor(t, store)

	t.Run("create class seeds the full unit catalogue", func(t *testing.T) {
		class := seedClass(t, store, domain.Period2, "#1d3557", map[domain.UnitType]int{domain.UnitTypeTank: 3})

		inventory := inventoryOf(t, store, class.ID)
		assert.Len(t, inventory, len(domain.AllUnitTypes))
		assert.Equal(t, 3, inventory[domain.UnitTypeTank])
		assert.Equal(t, 0, inventory[domain.UnitTypeNuke])

		got, err := store.GetClassByID(ctx, class.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.Period2, got.Period)
		assert.Equal(t, "#1d3557", got.Color)

		classChanges := changesSince(t, store, anchor, domain.TableClasses)
		require.Len(t, classChanges, 1)
		assert.Equal(t, domain.ChangeTypeInsert, classChanges[0].ChangeType)
		assert.Equal(t, class.ID, classChanges[0].SubjectID)
		assert.Len(t, changesSince(t, store, anchor, domain.TableInventory), len(domain.AllUnitTypes))
	})

	t.Run("period is unique", func(t *testing.T) {
		_, err := store.CreateClass(ctx, CreateClassInput{Period: domain.Period2, Color: "#ffffff"})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("list is ordered by period", func(t *testing.T) {
		seedClass(t, store, domain.Period1, "#e63946", nil)

		classes, err := store.ListClasses(ctx)
		require.NoError(t, err)
		require.Len(t, classes, 2)
		assert.Equal(t, domain.Period1, classes[0].Period)
		assert.Equal(t, domain.Period2, classes[1].Period)
	})

	t.Run("missing class returns nil", func(t *testing.T) {
		got, err := store.GetClassByID(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

// =============================================================================
// Test: Students
// =============================================================================

func testStudents(t *testing.T, store Store) {
	ctx := context.Background()
	class := seedClass(t, store, domain.Period5, "#2a9d8f", nil)

	t.Run("student joins the class of the period", func(t *testing.T) {
		student := seedStudent(t, store, "Ada", domain.Period5)
		assert.Equal(t, class.ID, student.ClassID)
		assert.Empty(t, student.SelectedCountries)

		got, err := store.GetStudentByID(ctx, student.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Ada", got.Name)
	})

	t.Run("period without class is not found", func(t *testing.T) {
		_, err := store.CreateStudent(ctx, CreateStudentInput{Name: "Bob", Period: domain.Period6})
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("list by period", func(t *testing.T) {
		seedStudent(t, store, "Zoe", domain.Period5)

		students, err := store.ListStudentsByPeriod(ctx, domain.Period5)
		require.NoError(t, err)
		require.Len(t, students, 2)
		assert.Equal(t, "Ada", students[0].Name)
		assert.Equal(t, "Zoe", students[1].Name)

		students, err = store.ListStudentsByPeriod(ctx, domain.Period1)
		require.NoError(t, err)
		assert.Empty(t, students)
	})

	t.Run("update selected countries journals an update", func(t *testing.T) {
		student := seedStudent(t, store, "Cy", domain.Period5)
		anchor := latestCursor(t, store)

		updated, err := store.UpdateStudentCountries(ctx, student.ID, []string{"France", "Peru"})
		require.NoError(t, err)
		assert.Equal(t, []string{"France", "Peru"}, []string(updated.SelectedCountries))

		got, err := store.GetStudentByID(ctx, student.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"France", "Peru"}, []string(got.SelectedCountries))

		changes := changesSince(t, store, anchor, domain.TableStudents)
		require.Len(t, changes, 1)
		assert.Equal(t, domain.ChangeTypeUpdate, changes[0].ChangeType)

		var record schema.Student
		require.NoError(t, json.Unmarshal(changes[0].Record, &record))
		assert.Equal(t, []string{"France", "Peru"}, []string(record.SelectedCountries))
	})

	t.Run("update unknown student", func(t *testing.T) {
		_, err := store.UpdateStudentCountries(ctx, "missing", []string{"France"})
		assert.True(t, domain.IsNotFound(err))
	})
}

// =============================================================================
// Test: Territories
// =============================================================================

func testTerritories(t *testing.T, store Store) {
	ctx := context.Background()
	class := seedClass(t, store, domain.Period1, "#e63946", nil)

	france := seedTerritory(t, store, "France", nil)
	seedTerritory(t, store, "Brazil", &class.ID)

	t.Run("country name is unique", func(t *testing.T) {
		_, err := store.CreateTerritory(ctx, CreateTerritoryInput{CountryName: "France"})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("list with owner colour", func(t *testing.T) {
		rows, err := store.ListTerritoriesWithOwner(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "Brazil", rows[0].CountryName)
		assert.Equal(t, "#e63946", rows[0].Color)
		require.NotNil(t, rows[0].OwnerPeriod)
		assert.Equal(t, domain.Period1, *rows[0].OwnerPeriod)

		assert.Equal(t, "France", rows[1].CountryName)
		assert.Equal(t, domain.UNOWNED_TERRITORY_COLOR, rows[1].Color)
		assert.Nil(t, rows[1].OwnerPeriod)
		assert.Nil(t, rows[1].OwnerClassID)
	})

	t.Run("get by names", func(t *testing.T) {
		found, err := store.GetTerritoriesByNames(ctx, []string{"France", "Atlantis"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, france.ID, found[0].ID)

		found, err = store.GetTerritoriesByNames(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := store.GetTerritoryByID(ctx, france.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "France", got.CountryName)

		got, err = store.GetTerritoryByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

// =============================================================================
// Test: Inventory
// =============================================================================

func testInventory(t *testing.T, store Store) {
	ctx := context.Background()
	class := seedClass(t, store, domain.Period6, "#f4a261", map[domain.UnitType]int{domain.UnitTypeInfantry: 1})

	t.Run("use decrements and journals", func(t *testing.T) {
		anchor := latestCursor(t, store)

		entry, err := store.UseUnit(ctx, class.ID, domain.UnitTypeInfantry)
		require.NoError(t, err)
		assert.Equal(t, 0, entry.Quantity)

		changes := changesSince(t, store, anchor, domain.TableInventory)
		require.Len(t, changes, 1)
		assert.Equal(t, domain.ChangeTypeUpdate, changes[0].ChangeType)
		assert.Equal(t, entry.ID, changes[0].SubjectID)
	})

	t.Run("use at zero fails without going negative", func(t *testing.T) {
		anchor := latestCursor(t, store)

		_, err := store.UseUnit(ctx, class.ID, domain.UnitTypeInfantry)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInsufficientInventory))
		assert.Equal(t, 0, inventoryOf(t, store, class.ID)[domain.UnitTypeInfantry])
		assert.Empty(t, changesSince(t, store, anchor, domain.TableInventory))
	})

	t.Run("award increments", func(t *testing.T) {
		for rangeIdx := 0; rangeIdx < 3; rangeIdx++ {
			_, err := store.AwardUnit(ctx, class.ID, domain.UnitTypeBattleship)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, inventoryOf(t, store, class.ID)[domain.UnitTypeBattleship])
	})

	t.Run("use on unknown class", func(t *testing.T) {
		_, err := store.UseUnit(ctx, "missing", domain.UnitTypeTank)
		assert.True(t, domain.IsNotFound(err))
	})
}

// =============================================================================
// Test: Stamps
// =============================================================================

func testStamps(t *testing.T, store Store) {
	ctx := context.Background()
	seedClass(t, store, domain.Period1, "#e63946", nil)
	student := seedStudent(t, store, "Ada", domain.Period1)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("append is newest first", func(t *testing.T) {
		for i, amount := range []int{5, -2, 1} {
			stamp, created, err := store.AppendStampTransaction(ctx, AppendStampInput{
				StudentID: student.ID,
				ClassID:   student.ClassID,
				Amount:    amount,
				Reason:    "participation",
				Timestamp: base.Add(time.Duration(i) * time.Minute),
			})
			require.NoError(t, err)
			assert.True(t, created)
			assert.Equal(t, amount, stamp.Amount)
		}

		stamps, err := store.ListStampTransactions(ctx, student.ID)
		require.NoError(t, err)
		require.Len(t, stamps, 3)
		assert.Equal(t, 1, stamps[0].Amount)
		assert.Equal(t, -2, stamps[1].Amount)
		assert.Equal(t, 5, stamps[2].Amount)
	})

	t.Run("idempotency key prevents double append", func(t *testing.T) {
		anchor := latestCursor(t, store)
		input := AppendStampInput{
			StudentID:      student.ID,
			ClassID:        student.ClassID,
			Amount:         10,
			Reason:         "quiz winner",
			IdempotencyKey: stringPtr("award-42"),
			Timestamp:      base.Add(time.Hour),
		}

		first, created, err := store.AppendStampTransaction(ctx, input)
		require.NoError(t, err)
		assert.True(t, created)

		second, created, err := store.AppendStampTransaction(ctx, input)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)

		stamps, err := store.ListStampTransactions(ctx, student.ID)
		require.NoError(t, err)
		assert.Len(t, stamps, 4)
		assert.Len(t, changesSince(t, store, anchor, domain.TableStamps), 1)
	})

	t.Run("zero amount is recorded", func(t *testing.T) {
		stamp, created, err := store.AppendStampTransaction(ctx, AppendStampInput{
			StudentID: student.ID,
			ClassID:   student.ClassID,
			Amount:    0,
			Reason:    "attendance noted",
			Timestamp: base.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Zero(t, stamp.Amount)

		stamps, err := store.ListStampTransactions(ctx, student.ID)
		require.NoError(t, err)
		assert.Len(t, stamps, 5)
	})
}

// =============================================================================
// Test: Battles
// =============================================================================

func testRecordBattle(t *testing.T, store Store) {
	ctx := context.Background()
	attacker := seedClass(t, store, domain.Period1, "#e63946", map[domain.UnitType]int{
		domain.UnitTypeTank:  2,
		domain.UnitTypeDrone: 1,
	})
	defender := seedClass(t, store, domain.Period2, "#1d3557", nil)
	territory := seedTerritory(t, store, "Japan", nil)
	at := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	input := RecordBattleInput{
		AttackerClassID:  attacker.ID,
		DefenderClassID:  defender.ID,
		TerritoryID:      territory.ID,
		AttackerRoll:     15,
		DefenderRoll:     1,
		AttackerModifier: 10,
		DefenderModifier: 0,
		Outcome:          domain.OutcomeAttackerWins,
		UnitsUsed:        []domain.UnitType{domain.UnitTypeTank, domain.UnitTypeDrone},
		Narrative:        "CRUSHING VICTORY! An unstoppable force!",
		Timestamp:        at,
	}

	t.Run("attacker win over unowned territory", func(t *testing.T) {
		anchor := latestCursor(t, store)

		res, err := store.RecordBattle(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeAttackerWins, res.Battle.Outcome)
		assert.Equal(t, []domain.UnitType{domain.UnitTypeTank, domain.UnitTypeDrone}, []domain.UnitType(res.Battle.UnitsUsed))
		require.NotNil(t, res.Territory.OwnerClassID)
		assert.Equal(t, attacker.ID, *res.Territory.OwnerClassID)
		assert.True(t, res.Ownership.Changed)
		assert.Nil(t, res.Ownership.PreviousOwnerID)
		assert.Len(t, res.Inventory, 2)

		inventory := inventoryOf(t, store, attacker.ID)
		assert.Equal(t, 1, inventory[domain.UnitTypeTank])
		assert.Equal(t, 0, inventory[domain.UnitTypeDrone])

		got, err := store.GetTerritoryByID(ctx, territory.ID)
		require.NoError(t, err)
		assert.True(t, got.OwnedBy(attacker.ID))

		assert.Len(t, changesSince(t, store, anchor, domain.TableBattles), 1)
		assert.Len(t, changesSince(t, store, anchor, domain.TableTerritories), 1)
		assert.Len(t, changesSince(t, store, anchor, domain.TableInventory), 2)
	})

	t.Run("defender win leaves owner unchanged", func(t *testing.T) {
		anchor := latestCursor(t, store)
		defend := input
		defend.AttackerClassID, defend.DefenderClassID = defender.ID, attacker.ID
		defend.Outcome = domain.OutcomeDefenderWins
		defend.UnitsUsed = nil
		defend.Timestamp = at.Add(time.Minute)

		res, err := store.RecordBattle(ctx, defend)
		require.NoError(t, err)
		assert.False(t, res.Ownership.Changed)
		assert.True(t, res.Territory.OwnedBy(attacker.ID))
		assert.Empty(t, []domain.UnitType(res.Battle.UnitsUsed))

		assert.Empty(t, changesSince(t, store, anchor, domain.TableTerritories))
	})

	t.Run("insufficient units write nothing", func(t *testing.T) {
		anchor := latestCursor(t, store)
		short := input
		short.UnitsUsed = []domain.UnitType{domain.UnitTypeTank, domain.UnitTypeNuke}
		short.Timestamp = at.Add(2 * time.Minute)

		_, err := store.RecordBattle(ctx, short)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInsufficientInventory))

		assert.Equal(t, 1, inventoryOf(t, store, attacker.ID)[domain.UnitTypeTank])
		assert.Equal(t, anchor, latestCursor(t, store))

		battles, err := store.ListBattles(ctx, BattleFilter{TerritoryID: territory.ID})
		require.NoError(t, err)
		assert.Len(t, battles, 2)
	})

	t.Run("unknown territory", func(t *testing.T) {
		missing := input
		missing.TerritoryID = "missing"
		missing.UnitsUsed = nil

		_, err := store.RecordBattle(ctx, missing)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("unknown unit type", func(t *testing.T) {
		bad := input
		bad.UnitsUsed = []domain.UnitType{"dragon"}

		_, err := store.RecordBattle(ctx, bad)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("history filters", func(t *testing.T) {
		battles, err := store.ListBattles(ctx, BattleFilter{ClassID: defender.ID})
		require.NoError(t, err)
		require.Len(t, battles, 2)
		assert.Equal(t, domain.OutcomeDefenderWins, battles[0].Outcome)
		assert.Equal(t, domain.OutcomeAttackerWins, battles[1].Outcome)

		battles, err = store.ListBattles(ctx, BattleFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, battles, 1)

		battles, err = store.ListBattles(ctx, BattleFilter{TerritoryID: "missing"})
		require.NoError(t, err)
		assert.Empty(t, battles)
	})
}

// =============================================================================
// Test: Polls
// =============================================================================

func testPolls(t *testing.T, store Store) {
	ctx := context.Background()
	class := seedClass(t, store, domain.Period2, "#1d3557", nil)
	other := seedClass(t, store, domain.Period6, "#f4a261", nil)
	ada := seedStudent(t, store, "Ada", domain.Period2)
	bob := seedStudent(t, store, "Bob", domain.Period6)
	day := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	t.Run("second submission replaces the first", func(t *testing.T) {
		anchor := latestCursor(t, store)

		_, err := store.UpsertPollResponse(ctx, schema.DailyPollResponse{
			ClassID: class.ID, StudentID: ada.ID, Date: day, FeelsRepresented: true, LikesLeader: true,
		})
		require.NoError(t, err)

		second, err := store.UpsertPollResponse(ctx, schema.DailyPollResponse{
			ClassID: class.ID, StudentID: ada.ID, Date: day.Add(2 * time.Hour), FeelsRepresented: false, LikesLeader: true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PollDate(day), second.Date)

		responses, err := store.ListPollResponses(ctx, class.ID, day)
		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.False(t, responses[0].FeelsRepresented)
		assert.True(t, responses[0].LikesLeader)

		changes := changesSince(t, store, anchor, domain.TablePolls)
		require.Len(t, changes, 2)
		assert.Equal(t, domain.ChangeTypeInsert, changes[0].ChangeType)
		assert.Equal(t, domain.ChangeTypeUpdate, changes[1].ChangeType)
		assert.Equal(t, changes[0].SubjectID, changes[1].SubjectID)
	})

	t.Run("list across classes and days", func(t *testing.T) {
		_, err := store.UpsertPollResponse(ctx, schema.DailyPollResponse{
			ClassID: other.ID, StudentID: bob.ID, Date: day, FeelsRepresented: true,
		})
		require.NoError(t, err)
		_, err = store.UpsertPollResponse(ctx, schema.DailyPollResponse{
			ClassID: other.ID, StudentID: bob.ID, Date: day.AddDate(0, 0, 1), LikesLeader: true,
		})
		require.NoError(t, err)

		all, err := store.ListPollResponses(ctx, "", day)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		next, err := store.ListPollResponses(ctx, other.ID, day.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.Len(t, next, 1)
		assert.True(t, next[0].LikesLeader)
	})
}

// =============================================================================
// Test: Changes journal and feed cursor
// =============================================================================

func testGetChanges(t *testing.T, store Store) {
	ctx := context.Background()
	anchor := latestCursor(t, store)

	class := seedClass(t, store, domain.Period5, "#2a9d8f", nil)
	territory := seedTerritory(t, store, "Kenya", nil)

	t.Run("ordered by cursor", func(t *testing.T) {
		changes, err := store.GetChanges(ctx, ChangesQueryFilter{Anchor: &anchor})
		require.NoError(t, err)
		require.Len(t, changes, 1+len(domain.AllUnitTypes)+1)

		for i := 1; i < len(changes); i++ {
			assert.Greater(t, changes[i].Cursor, changes[i-1].Cursor)
			assert.Greater(t, changes[i].EventID, changes[i-1].EventID)
		}
		assert.Equal(t, class.ID, changes[0].SubjectID)
		assert.Equal(t, territory.ID, changes[len(changes)-1].SubjectID)
	})

	t.Run("limit and event conversion", func(t *testing.T) {
		changes, err := store.GetChanges(ctx, ChangesQueryFilter{Anchor: &anchor, Limit: 1})
		require.NoError(t, err)
		require.Len(t, changes, 1)

		event := changes[0].ToEvent()
		assert.True(t, event.Valid())
		assert.Equal(t, "changes.classes.insert", event.Subject())

		var record schema.Class
		require.NoError(t, json.Unmarshal(event.Record, &record))
		assert.Equal(t, class.ID, record.ID)
		assert.Equal(t, domain.Period5, record.Period)
	})

	t.Run("latest cursor", func(t *testing.T) {
		changes, err := store.GetChanges(ctx, ChangesQueryFilter{Anchor: &anchor})
		require.NoError(t, err)
		assert.Equal(t, changes[len(changes)-1].Cursor, latestCursor(t, store))
	})
}

func testFeedCursor(t *testing.T, store Store) {
	ctx := context.Background()

	_, found, err := store.GetFeedCursor(ctx, "nats")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetFeedCursor(ctx, "nats", 42))
	require.NoError(t, store.SetFeedCursor(ctx, "nats", 57))

	cursor, found, err := store.GetFeedCursor(ctx, "nats")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(57), cursor)

	require.NoError(t, store.Ping(ctx))
}

// RunStoreTests runs every store test against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Classes", testClasses},
		{"Students", testStudents},
		{"Territories", testTerritories},
		{"Inventory", testInventory},
		{"Stamps", testStamps},
		{"RecordBattle", testRecordBattle},
		{"Polls", testPolls},
		{"GetChanges", testGetChanges},
		{"FeedCursor", testFeedCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
