package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// fixedClock pins Now for journal timestamps
type fixedClock struct {
	adapter.Clock
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type journalRecord struct {
	ID string `json:"id"`
}

func (r journalRecord) RecordKey() string {
	return r.ID
}

func TestPostgreSQLStore_JournalTimestampsUseClock(t *testing.T) {
	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		tx.Rollback()
	})

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	store := NewPGStore(tx, adapter.NewJSON(), fixedClock{Clock: adapter.NewClock(), now: now})
	anchor := latestCursor(t, store)

	territory := seedTerritory(t, store, "Peru", nil)
	assert.True(t, now.Equal(territory.UpdatedAt))

	changes := changesSince(t, store, anchor, domain.TableTerritories)
	require.Len(t, changes, 1)
	assert.True(t, now.Equal(changes[0].ChangedAt))
}

// A transaction that drew a lower cursor but commits late must not be overtaken by a later writer
func TestPostgreSQLStore_JournalVisibleInCommitOrder(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB, adapter.NewJSON(), adapter.NewClock()).(*pgStore)

	anchor := latestCursor(t, s)
	t.Cleanup(func() {
		testDB.Where(`"cursor" > ?`, anchor).Delete(&schema.ChangesJournal{})
	})

	flushed := make(chan struct{})
	release := make(chan struct{})
	slowDone := make(chan error, 1)
	go func() {
		slowDone <- testDB.Transaction(func(tx *gorm.DB) error {
			j := &journal{}
			j.add(domain.TableClasses, domain.ChangeTypeInsert, journalRecord{ID: "slow"})
			if err := s.flushJournal(tx, j); err != nil {
				return err
			}
			close(flushed)
			<-release
			return nil
		})
	}()
	<-flushed

	fastDone := make(chan error, 1)
	go func() {
		fastDone <- s.transaction(ctx, func(tx *gorm.DB, j *journal) error {
			j.add(domain.TableClasses, domain.ChangeTypeInsert, journalRecord{ID: "fast"})
			return nil
		})
	}()

	select {
	case err := <-fastDone:
		t.Fatalf("journal write committed while an earlier transaction was open: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	visible, err := s.GetChanges(ctx, ChangesQueryFilter{Anchor: &anchor})
	require.NoError(t, err)
	assert.Empty(t, visible)

	close(release)
	require.NoError(t, <-slowDone)
	require.NoError(t, <-fastDone)

	changes, err := s.GetChanges(ctx, ChangesQueryFilter{Anchor: &anchor})
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "slow", changes[0].SubjectID)
	assert.Equal(t, "fast", changes[1].SubjectID)
	assert.Less(t, changes[0].Cursor, changes[1].Cursor)
}
