package statesync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

func event(t *testing.T, table domain.Table, changeType domain.ChangeType, cursor int64, record any) domain.ChangeEvent {
	data, err := json.Marshal(record)
	require.NoError(t, err)
	return domain.ChangeEvent{Table: table, Type: changeType, Cursor: cursor, Record: data}
}

func ptr[T any](v T) *T {
	return &v
}

func TestMergeByID(t *testing.T) {
	type row struct {
		ID   string
		Name string
	}
	id := func(r row) string { return r.ID }
	base := func() []row { return []row{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Bravo"}} }

	tests := []struct {
		name       string
		item       row
		changeType domain.ChangeType
		expected   []row
		changed    bool
	}{
		{
			name:       "update replaces in place",
			item:       row{ID: "a", Name: "Alpha 2"},
			changeType: domain.ChangeTypeUpdate,
			expected:   []row{{ID: "a", Name: "Alpha 2"}, {ID: "b", Name: "Bravo"}},
			changed:    true,
		},
		{
			name:       "update of unknown id is dropped",
			item:       row{ID: "c", Name: "Charlie"},
			changeType: domain.ChangeTypeUpdate,
			expected:   base(),
			changed:    false,
		},
		{
			name:       "insert appends",
			item:       row{ID: "c", Name: "Charlie"},
			changeType: domain.ChangeTypeInsert,
			expected:   []row{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Bravo"}, {ID: "c", Name: "Charlie"}},
			changed:    true,
		},
		{
			name:       "duplicate insert replaces",
			item:       row{ID: "b", Name: "Bravo 2"},
			changeType: domain.ChangeTypeInsert,
			expected:   []row{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Bravo 2"}},
			changed:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, changed := mergeByID(base(), tt.item, id, tt.changeType)
			assert.Equal(t, tt.expected, items)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestSnapshot_Merge(t *testing.T) {
	codec := adapter.NewJSON()

	newSnapshot := func() *Snapshot {
		return &Snapshot{
			Scope:         Scope{Period: domain.Period2},
			ActiveClassID: "class-2",
			Classes: []schema.Class{
				{ID: "class-1", Period: domain.Period1, Color: "#111111"},
				{ID: "class-2", Period: domain.Period2, Color: "#222222"},
			},
			Territories: []schema.TerritoryWithOwner{
				{Territory: schema.Territory{ID: "t-1", CountryName: "Chad"}, Color: domain.UNOWNED_TERRITORY_COLOR},
			},
			Inventory: []schema.InventoryEntry{
				{ID: "inv-1", ClassID: "class-2", UnitType: domain.UnitTypeTank, Quantity: 2},
			},
			Cursor: 10,
		}
	}

	t.Run("territory update takes the owner colour", func(t *testing.T) {
		s := newSnapshot()
		changed, err := s.merge(event(t, domain.TableTerritories, domain.ChangeTypeUpdate, 11,
			schema.Territory{ID: "t-1", CountryName: "Chad", OwnerClassID: ptr("class-1")}), codec)

		require.NoError(t, err)
		assert.True(t, changed)
		require.Len(t, s.Territories, 1)
		assert.Equal(t, "#111111", s.Territories[0].Color)
		assert.Equal(t, domain.Period1, *s.Territories[0].OwnerPeriod)
		assert.Equal(t, int64(11), s.Cursor)
	})

	t.Run("class colour change recolours owned territories", func(t *testing.T) {
		s := newSnapshot()
		s.Territories[0] = s.withOwner(schema.Territory{ID: "t-1", OwnerClassID: ptr("class-2")})

		_, err := s.merge(event(t, domain.TableClasses, domain.ChangeTypeUpdate, 12,
			schema.Class{ID: "class-2", Period: domain.Period2, Color: "#abcdef"}), codec)

		require.NoError(t, err)
		assert.Equal(t, "#abcdef", s.Territories[0].Color)
	})

	t.Run("student of another period is ignored", func(t *testing.T) {
		s := newSnapshot()
		changed, err := s.merge(event(t, domain.TableStudents, domain.ChangeTypeInsert, 13,
			schema.Student{ID: "s-9", Period: domain.Period6, ClassID: "class-6"}), codec)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, s.Students)
		assert.Equal(t, int64(13), s.Cursor)
	})

	t.Run("inventory of the active class", func(t *testing.T) {
		s := newSnapshot()
		changed, err := s.merge(event(t, domain.TableInventory, domain.ChangeTypeUpdate, 14,
			schema.InventoryEntry{ID: "inv-1", ClassID: "class-2", UnitType: domain.UnitTypeTank, Quantity: 1}), codec)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 1, s.Inventory[0].Quantity)
	})

	t.Run("inventory of another class is ignored", func(t *testing.T) {
		s := newSnapshot()
		changed, err := s.merge(event(t, domain.TableInventory, domain.ChangeTypeUpdate, 15,
			schema.InventoryEntry{ID: "inv-7", ClassID: "class-1", UnitType: domain.UnitTypeTank, Quantity: 0}), codec)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Len(t, s.Inventory, 1)
	})

	t.Run("uncached tables are ignored", func(t *testing.T) {
		s := newSnapshot()
		changed, err := s.merge(event(t, domain.TableStamps, domain.ChangeTypeInsert, 16,
			schema.StampTransaction{ID: "tx-1", Amount: 3}), codec)

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("undecodable record keeps the cursor", func(t *testing.T) {
		s := newSnapshot()
		_, err := s.merge(domain.ChangeEvent{Table: domain.TableBattles, Type: domain.ChangeTypeInsert, Cursor: 17, Record: json.RawMessage(`[1,2]`)}, codec)

		assert.Error(t, err)
		assert.Empty(t, s.Battles)
		assert.Equal(t, int64(10), s.Cursor)
	})

	t.Run("change already in the snapshot is skipped", func(t *testing.T) {
		s := newSnapshot()
		changed, err := s.merge(event(t, domain.TableTerritories, domain.ChangeTypeUpdate, 9,
			schema.Territory{ID: "t-1", CountryName: "Chad", OwnerClassID: ptr("class-1")}), codec)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Nil(t, s.Territories[0].OwnerClassID)
		assert.Equal(t, int64(10), s.Cursor)
	})

	t.Run("confirmed writes carry no cursor and always merge", func(t *testing.T) {
		s := newSnapshot()
		changed, err := s.merge(event(t, domain.TableInventory, domain.ChangeTypeInsert, 0,
			schema.InventoryEntry{ID: "inv-1", ClassID: "class-2", UnitType: domain.UnitTypeTank, Quantity: 5}), codec)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 5, s.Inventory[0].Quantity)
		assert.Equal(t, int64(10), s.Cursor)
	})

	t.Run("events are a pure fold", func(t *testing.T) {
		s := newSnapshot()
		events := []domain.ChangeEvent{
			event(t, domain.TableBattles, domain.ChangeTypeInsert, 20, schema.Battle{ID: "b-1", Outcome: domain.OutcomeDefenderWins}),
			event(t, domain.TableBattles, domain.ChangeTypeInsert, 21, schema.Battle{ID: "b-2", Outcome: domain.OutcomeAttackerWins}),
			event(t, domain.TableBattles, domain.ChangeTypeInsert, 22, schema.Battle{ID: "b-1", Outcome: domain.OutcomeAttackerWins}),
		}
		for _, e := range events {
			_, err := s.merge(e, codec)
			require.NoError(t, err)
		}

		require.Len(t, s.Battles, 2)
		assert.Equal(t, "b-1", s.Battles[0].ID)
		assert.Equal(t, domain.OutcomeAttackerWins, s.Battles[0].Outcome)
		assert.Equal(t, int64(22), s.Cursor)
	})
}

func TestSnapshot_Clone(t *testing.T) {
	s := &Snapshot{
		Students: []schema.Student{{ID: "s-1", SelectedCountries: []string{"Chad"}}},
		Territories: []schema.TerritoryWithOwner{
			{Territory: schema.Territory{ID: "t-1", OwnerClassID: ptr("class-1")}},
		},
		Battles: []schema.Battle{{ID: "b-1", UnitsUsed: []domain.UnitType{domain.UnitTypeTank}}},
	}

	c := s.Clone()
	c.Students[0].SelectedCountries[0] = "Peru"
	*c.Territories[0].OwnerClassID = "class-2"
	c.Battles[0].UnitsUsed[0] = domain.UnitTypeNuke

	assert.Equal(t, "Chad", s.Students[0].SelectedCountries[0])
	assert.Equal(t, "class-1", *s.Territories[0].OwnerClassID)
	assert.Equal(t, domain.UnitTypeTank, s.Battles[0].UnitsUsed[0])
}
