package statesync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/logger"
	"github.com/feral-file/world-conquest/internal/messaging"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

var (
	// ErrClientClosed is returned by operations on a closed client
	ErrClientClosed = errors.New("sync client closed")
	// ErrAlreadyRunning is returned when a second apply loop is started
	ErrAlreadyRunning = errors.New("sync client apply loop already running")
)

const (
	COLLECTION_CLASSES     = "classes"
	COLLECTION_STUDENTS    = "students"
	COLLECTION_TERRITORIES = "territories"
	COLLECTION_INVENTORY   = "inventory"
	COLLECTION_BATTLES     = "battles"
	// COLLECTION_CHANGES reports a failure to read the journal high-water cursor
	COLLECTION_CHANGES = "changes"
)

// Warning reports a read failure. The affected collection keeps its previous contents.
type Warning struct {
	Collection string
	Err        error
}

// Config holds the sync client configuration
type Config struct {
	// QueueSize bounds the pending snapshot mutations
	QueueSize int
	// FetchConcurrency bounds the collections fetched at once
	FetchConcurrency int
	// WarningBuffer is the number of undelivered warnings kept before new ones are dropped
	WarningBuffer int
}

// Client keeps an in-memory snapshot consistent with the game API.
// Every mutation, from a full load, a feed event or a confirmed local write,
// is applied by the single apply loop started with Run.
type Client interface {
	// Start loads every collection of the scope concurrently and applies the results.
	// Results are discarded if Start, Reset or Close is called again before they are applied.
	// Run must be running.
	Start(ctx context.Context, scope Scope) error
	// Run applies queued mutations until ctx is canceled or the client is closed
	Run(ctx context.Context) error
	// Apply queues a change event for merging. Events at or below the snapshot cursor are skipped.
	Apply(ctx context.Context, event domain.ChangeEvent) error
	// ConfirmWrite merges a record returned by the client's own successful write and waits until it is applied
	ConfirmWrite(ctx context.Context, table domain.Table, record any) error
	// Follow merges events from sub, reconnecting with backoff. Every time the subscription
	// is live the scope is reloaded while feed events are held back, then the held events are merged.
	Follow(ctx context.Context, sub messaging.Subscriber, scope Scope) error
	// Snapshot returns a deep copy of the current snapshot
	Snapshot() Snapshot
	// Warnings delivers non-fatal read failures
	Warnings() <-chan Warning
	// Reset discards pending loads and clears the snapshot
	Reset(ctx context.Context) error
	// Close discards pending loads and stops the apply loop
	Close()
}

type op func(s *Snapshot)

type client struct {
	config  Config
	fetcher Fetcher
	json    adapter.JSON
	clock   adapter.Clock
	pool    pond.Pool

	// session is bumped by Start, Reset and Close; loads carrying an older token are stale
	session atomic.Uint64
	running atomic.Bool

	ops      chan op
	warnings chan Warning

	mu    sync.RWMutex
	state Snapshot

	closeOnce sync.Once
	done      chan struct{}
}

// NewClient creates a sync client
func NewClient(cfg Config, fetcher Fetcher, json adapter.JSON, clock adapter.Clock) Client {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 5
	}
	if cfg.WarningBuffer <= 0 {
		cfg.WarningBuffer = 16
	}

	return &client{
		config:   cfg,
		fetcher:  fetcher,
		json:     json,
		clock:    clock,
		pool:     pond.NewPool(cfg.FetchConcurrency),
		ops:      make(chan op, cfg.QueueSize),
		warnings: make(chan Warning, cfg.WarningBuffer),
		done:     make(chan struct{}),
	}
}

func (c *client) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		case o := <-c.ops:
			c.mu.Lock()
			o(&c.state)
			c.mu.Unlock()
		}
	}
}

// enqueue queues o for the apply loop. When wait is set it returns once o was applied.
func (c *client) enqueue(ctx context.Context, o op, wait bool) error {
	var applied chan struct{}
	if wait {
		applied = make(chan struct{})
		inner := o
		o = func(s *Snapshot) {
			inner(s)
			close(applied)
		}
	}

	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	case c.ops <- o:
	}

	if !wait {
		return nil
	}
	select {
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-applied:
		return nil
	}
}

// load holds the results of one full fetch
type load struct {
	// cursor is the journal high-water mark read before any collection
	cursor      int64
	classes     []schema.Class
	students    []schema.Student
	territories []schema.TerritoryWithOwner
	inventory   []schema.InventoryEntry
	battles     []schema.Battle
	errs        map[string]error
}

func (c *client) fetch(ctx context.Context, scope Scope) *load {
	l := &load{errs: make(map[string]error)}
	var mu sync.Mutex
	fail := func(collection string, err error) {
		mu.Lock()
		l.errs[collection] = err
		mu.Unlock()
	}

	// Every change up to the cursor read here is part of the collections read afterwards
	cursor, err := c.fetcher.LatestCursor(ctx)
	if err != nil {
		fail(COLLECTION_CHANGES, err)
	} else {
		l.cursor = cursor
	}

	tasks := []pond.Task{
		// Inventory is scoped to the class of the period, so it follows the class list
		c.pool.Submit(func() {
			classes, err := c.fetcher.ListClasses(ctx)
			if err != nil {
				fail(COLLECTION_CLASSES, err)
				fail(COLLECTION_INVENTORY, err)
				return
			}
			l.classes = classes

			active := activeClassID(classes, scope.Period)
			if active == "" {
				l.inventory = []schema.InventoryEntry{}
				return
			}
			inventory, err := c.fetcher.ListInventory(ctx, active)
			if err != nil {
				fail(COLLECTION_INVENTORY, err)
				return
			}
			l.inventory = inventory
		}),
		c.pool.Submit(func() {
			students, err := c.fetcher.ListStudents(ctx, scope.Period)
			if err != nil {
				fail(COLLECTION_STUDENTS, err)
				return
			}
			l.students = students
		}),
		c.pool.Submit(func() {
			territories, err := c.fetcher.ListTerritories(ctx)
			if err != nil {
				fail(COLLECTION_TERRITORIES, err)
				return
			}
			l.territories = territories
		}),
		c.pool.Submit(func() {
			battles, err := c.fetcher.ListBattles(ctx)
			if err != nil {
				fail(COLLECTION_BATTLES, err)
				return
			}
			l.battles = battles
		}),
	}

	for _, task := range tasks {
		if err := task.Wait(); err != nil {
			// The pool is stopped once the client is closed
			logger.WarnCtx(ctx, "Fetch task did not run", zap.Error(err))
		}
	}

	return l
}

func (c *client) Start(ctx context.Context, scope Scope) error {
	token := c.session.Add(1)

	logger.InfoCtx(ctx, "Loading snapshot",
		zap.Int("period", int(scope.Period)),
		zap.Uint64("session", token))

	l := c.fetch(ctx, scope)
	if ctx.Err() != nil {
		// The caller went away; its results must not reach the snapshot
		return ctx.Err()
	}

	// The apply loop and a caller that gives up race to claim the load; the loser leaves it alone
	var claimed atomic.Bool
	err := c.enqueue(ctx, func(s *Snapshot) {
		if !claimed.CompareAndSwap(false, true) {
			logger.DebugCtx(ctx, "Discarding abandoned snapshot load", zap.Uint64("session", token))
			return
		}
		if c.session.Load() != token {
			logger.DebugCtx(ctx, "Discarding stale snapshot load", zap.Uint64("session", token))
			return
		}
		c.applyLoad(ctx, s, scope, l)
	}, true)
	if err != nil && !claimed.CompareAndSwap(false, true) {
		// Applied before the caller went away
		return nil
	}
	return err
}

func (c *client) applyLoad(ctx context.Context, s *Snapshot, scope Scope, l *load) {
	if s.Scope != scope {
		// Scoped collections of another period must not survive a failed fetch
		s.Students = nil
		s.Inventory = nil
		s.ActiveClassID = ""
		s.Scope = scope
	}

	if _, failed := l.errs[COLLECTION_CLASSES]; !failed {
		s.Classes = l.classes
		s.ActiveClassID = activeClassID(l.classes, scope.Period)
	}
	if _, failed := l.errs[COLLECTION_STUDENTS]; !failed {
		s.Students = l.students
	}
	if _, failed := l.errs[COLLECTION_TERRITORIES]; !failed {
		s.Territories = l.territories
	}
	if _, failed := l.errs[COLLECTION_INVENTORY]; !failed {
		s.Inventory = l.inventory
	}
	if _, failed := l.errs[COLLECTION_BATTLES]; !failed {
		s.Battles = l.battles
	}
	// A collection kept from an older load may miss changes below the new cursor
	if len(l.errs) == 0 {
		s.Cursor = l.cursor
	}

	for collection, err := range l.errs {
		c.warn(ctx, Warning{Collection: collection, Err: err})
	}

	logger.InfoCtx(ctx, "Snapshot loaded",
		zap.Int("classes", len(s.Classes)),
		zap.Int("students", len(s.Students)),
		zap.Int("territories", len(s.Territories)),
		zap.Int("inventory", len(s.Inventory)),
		zap.Int("battles", len(s.Battles)),
		zap.Int64("cursor", s.Cursor),
		zap.Int("failed", len(l.errs)))
}

func (c *client) warn(ctx context.Context, w Warning) {
	logger.WarnCtx(ctx, "Keeping previous collection after read failure",
		zap.String("collection", w.Collection),
		zap.Error(w.Err))

	select {
	case c.warnings <- w:
	default:
	}
}

func (c *client) Apply(ctx context.Context, event domain.ChangeEvent) error {
	if !event.Valid() {
		return domain.NewValidationError("event", fmt.Sprintf("malformed %s change on %q", event.Type, event.Table))
	}

	return c.enqueue(ctx, func(s *Snapshot) {
		if _, err := s.merge(event, c.json); err != nil {
			logger.WarnCtx(ctx, "Failed to merge change event",
				zap.String("event", event.ID),
				zap.String("table", string(event.Table)),
				zap.Error(err))
		}
	}, false)
}

func (c *client) ConfirmWrite(ctx context.Context, table domain.Table, record any) error {
	data, err := c.json.Marshal(record)
	if err != nil {
		return err
	}

	var mergeErr error
	err = c.enqueue(ctx, func(s *Snapshot) {
		// A confirmed write is merged like an insert so that it replaces or appends
		_, mergeErr = s.merge(domain.ChangeEvent{
			Table:  table,
			Type:   domain.ChangeTypeInsert,
			Record: data,
		}, c.json)
	}, true)
	if err != nil {
		return err
	}
	return mergeErr
}

func (c *client) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

func (c *client) Warnings() <-chan Warning {
	return c.warnings
}

func (c *client) Reset(ctx context.Context) error {
	c.session.Add(1)
	return c.enqueue(ctx, func(s *Snapshot) {
		*s = Snapshot{}
	}, true)
}

func (c *client) Close() {
	c.closeOnce.Do(func() {
		c.session.Add(1)
		close(c.done)
		c.pool.Stop()
	})
}
