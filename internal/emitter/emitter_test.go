package emitter_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/emitter"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/mocks"
	"github.com/feral-file/world-conquest/internal/store"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testEmitterMocks contains all the mocks needed for testing the emitter
type testEmitterMocks struct {
	ctrl      *gomock.Controller
	publisher *mocks.MockPublisher
	store     *mocks.MockStore
	clock     *mocks.MockClock
	emitter   emitter.Emitter
}

// setupTestEmitter creates all the mocks and emitter for testing
func setupTestEmitter(t *testing.T, cfg emitter.Config) *testEmitterMocks {
	ctrl := gomock.NewController(t)

	tm := &testEmitterMocks{
		ctrl:      ctrl,
		publisher: mocks.NewMockPublisher(ctrl),
		store:     mocks.NewMockStore(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	tm.emitter = emitter.NewEmitter(tm.publisher, tm.store, cfg, tm.clock)

	// The wait between passes never times out on its own in these tests
	never := make(chan time.Time)
	tm.clock.EXPECT().After(gomock.Any()).Return(never).AnyTimes()
	tm.publisher.EXPECT().CloseChan().Return(make(chan struct{})).AnyTimes()

	return tm
}

// tearDownTestEmitter cleans up the test mocks
func tearDownTestEmitter(mocks *testEmitterMocks) {
	mocks.ctrl.Finish()
}

func defaultConfig() emitter.Config {
	return emitter.Config{
		FeedName:     "changes",
		BatchSize:    100,
		PollInterval: time.Second,
	}
}

func journalRow(cursor int64, table domain.Table) schema.ChangesJournal {
	return schema.ChangesJournal{
		Cursor:       cursor,
		EventID:      fmt.Sprintf("event-%d", cursor),
		SubjectTable: table,
		SubjectID:    "record-1",
		ChangeType:   domain.ChangeTypeUpdate,
		Record:       datatypes.JSON(`{"id":"record-1"}`),
		ChangedAt:    time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

// matchFunc adapts a predicate to gomock.Matcher
type matchFunc struct {
	desc string
	fn   func(x interface{}) bool
}

func (m matchFunc) Matches(x interface{}) bool { return m.fn(x) }
func (m matchFunc) String() string            { return m.desc }

// anchorIs matches a ChangesQueryFilter by its anchor
func anchorIs(cursor int64) gomock.Matcher {
	return matchFunc{
		desc: fmt.Sprintf("changes after %d", cursor),
		fn: func(x interface{}) bool {
			f, ok := x.(store.ChangesQueryFilter)
			return ok && f.Anchor != nil && *f.Anchor == cursor
		},
	}
}

func cursorOf(cursor int64) gomock.Matcher {
	return matchFunc{
		desc: fmt.Sprintf("event at cursor %d", cursor),
		fn: func(x interface{}) bool {
			e, ok := x.(*domain.ChangeEvent)
			return ok && e.Cursor == cursor
		},
	}
}

func TestEmitter_Run_ResumesFromStoredCursor(t *testing.T) {
	mocks := setupTestEmitter(t, defaultConfig())
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.store.EXPECT().GetFeedCursor(gomock.Any(), "changes").Return(int64(10), true, nil)

	gomock.InOrder(
		mocks.store.EXPECT().
			GetChanges(gomock.Any(), anchorIs(10)).
			Return([]schema.ChangesJournal{journalRow(11, domain.TableBattles), journalRow(12, domain.TableTerritories)}, nil),
		mocks.publisher.EXPECT().PublishEvent(gomock.Any(), cursorOf(11)).Return(nil),
		mocks.publisher.EXPECT().PublishEvent(gomock.Any(), cursorOf(12)).Return(nil),
		mocks.store.EXPECT().
			SetFeedCursor(gomock.Any(), "changes", int64(12)).
			DoAndReturn(func(context.Context, string, int64) error {
				cancel()
				return nil
			}),
	)

	err := mocks.emitter.Run(ctx)

	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_StartsFromLatestCursor(t *testing.T) {
	mocks := setupTestEmitter(t, defaultConfig())
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.store.EXPECT().GetFeedCursor(gomock.Any(), "changes").Return(int64(0), false, nil)
	mocks.store.EXPECT().GetLatestChangeCursor(gomock.Any()).Return(int64(50), nil)
	mocks.store.EXPECT().
		GetChanges(gomock.Any(), anchorIs(50)).
		DoAndReturn(func(context.Context, store.ChangesQueryFilter) ([]schema.ChangesJournal, error) {
			cancel()
			return nil, nil
		})

	err := mocks.emitter.Run(ctx)

	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_ConfiguredStartCursor(t *testing.T) {
	cfg := defaultConfig()
	cfg.StartCursor = 7
	mocks := setupTestEmitter(t, cfg)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.store.EXPECT().
		GetChanges(gomock.Any(), anchorIs(7)).
		DoAndReturn(func(context.Context, store.ChangesQueryFilter) ([]schema.ChangesJournal, error) {
			cancel()
			return nil, nil
		})

	err := mocks.emitter.Run(ctx)

	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_GetFeedCursorError(t *testing.T) {
	mocks := setupTestEmitter(t, defaultConfig())
	defer tearDownTestEmitter(mocks)

	mocks.store.EXPECT().GetFeedCursor(gomock.Any(), gomock.Any()).Return(int64(0), false, assert.AnError)

	err := mocks.emitter.Run(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to get feed cursor")
}

func TestEmitter_Run_PublishFailureKeepsPartialProgress(t *testing.T) {
	mocks := setupTestEmitter(t, defaultConfig())
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.store.EXPECT().GetFeedCursor(gomock.Any(), "changes").Return(int64(10), true, nil)

	gomock.InOrder(
		mocks.store.EXPECT().
			GetChanges(gomock.Any(), anchorIs(10)).
			Return([]schema.ChangesJournal{journalRow(11, domain.TableStamps), journalRow(12, domain.TableStamps)}, nil),
		mocks.publisher.EXPECT().PublishEvent(gomock.Any(), cursorOf(11)).Return(nil),
		mocks.publisher.EXPECT().
			PublishEvent(gomock.Any(), cursorOf(12)).
			DoAndReturn(func(context.Context, *domain.ChangeEvent) error {
				// Retry on the next pass
				mocks.emitter.Notify()
				return assert.AnError
			}),
		mocks.store.EXPECT().SetFeedCursor(gomock.Any(), "changes", int64(11)).Return(nil),
		mocks.store.EXPECT().
			GetChanges(gomock.Any(), anchorIs(11)).
			Return([]schema.ChangesJournal{journalRow(12, domain.TableStamps)}, nil),
		mocks.publisher.EXPECT().PublishEvent(gomock.Any(), cursorOf(12)).Return(nil),
		mocks.store.EXPECT().
			SetFeedCursor(gomock.Any(), "changes", int64(12)).
			DoAndReturn(func(context.Context, string, int64) error {
				cancel()
				return nil
			}),
	)

	err := mocks.emitter.Run(ctx)

	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_DrainsFullBatches(t *testing.T) {
	cfg := defaultConfig()
	cfg.BatchSize = 2
	mocks := setupTestEmitter(t, cfg)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.store.EXPECT().GetFeedCursor(gomock.Any(), "changes").Return(int64(0), true, nil)
	mocks.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	gomock.InOrder(
		mocks.store.EXPECT().
			GetChanges(gomock.Any(), anchorIs(0)).
			Return([]schema.ChangesJournal{journalRow(1, domain.TableClasses), journalRow(2, domain.TableClasses)}, nil),
		mocks.store.EXPECT().SetFeedCursor(gomock.Any(), "changes", int64(2)).Return(nil),
		mocks.store.EXPECT().
			GetChanges(gomock.Any(), anchorIs(2)).
			Return([]schema.ChangesJournal{journalRow(3, domain.TableInventory)}, nil),
		mocks.store.EXPECT().
			SetFeedCursor(gomock.Any(), "changes", int64(3)).
			DoAndReturn(func(context.Context, string, int64) error {
				cancel()
				return nil
			}),
	)

	err := mocks.emitter.Run(ctx)

	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_NotifyWakesEmitter(t *testing.T) {
	mocks := setupTestEmitter(t, defaultConfig())
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.store.EXPECT().GetFeedCursor(gomock.Any(), "changes").Return(int64(5), true, nil)

	gomock.InOrder(
		mocks.store.EXPECT().
			GetChanges(gomock.Any(), anchorIs(5)).
			DoAndReturn(func(context.Context, store.ChangesQueryFilter) ([]schema.ChangesJournal, error) {
				// A commit lands while the emitter is idle
				mocks.emitter.Notify()
				mocks.emitter.Notify()
				return nil, nil
			}),
		mocks.store.EXPECT().
			GetChanges(gomock.Any(), anchorIs(5)).
			DoAndReturn(func(context.Context, store.ChangesQueryFilter) ([]schema.ChangesJournal, error) {
				cancel()
				return nil, nil
			}),
	)

	err := mocks.emitter.Run(ctx)

	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_PublisherClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := mocks.NewMockPublisher(ctrl)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	closed := make(chan struct{})
	close(closed)
	publisher.EXPECT().CloseChan().Return(closed)
	clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time))
	st.EXPECT().GetFeedCursor(gomock.Any(), gomock.Any()).Return(int64(1), true, nil)
	st.EXPECT().GetChanges(gomock.Any(), gomock.Any()).Return(nil, nil)

	e := emitter.NewEmitter(publisher, st, defaultConfig(), clock)
	err := e.Run(context.Background())

	assert.ErrorIs(t, err, emitter.ErrPublisherClosed)
}

func TestEmitter_Close(t *testing.T) {
	mocks := setupTestEmitter(t, defaultConfig())
	defer tearDownTestEmitter(mocks)

	mocks.publisher.EXPECT().Close()

	mocks.emitter.Close()
}
