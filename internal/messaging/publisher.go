package messaging

import (
	"context"
	"errors"
	"sync"

	"github.com/feral-file/world-conquest/internal/domain"
)

// Publisher defines the interface for publishing change events
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a change event to every connected consumer
	PublishEvent(ctx context.Context, event *domain.ChangeEvent) error
	// Close closes the connection
	Close()
	// CloseChan returns a channel that is closed when the publisher is closed
	CloseChan() <-chan struct{}
}

// fanout publishes each event to a fixed set of publishers
type fanout struct {
	publishers []Publisher
	closeOnce  sync.Once
	closed     chan struct{}
}

// NewFanout returns a publisher that forwards every event to all of pubs.
// A failure on one publisher does not stop delivery to the others.
func NewFanout(pubs ...Publisher) Publisher {
	return &fanout{
		publishers: pubs,
		closed:     make(chan struct{}),
	}
}

func (f *fanout) PublishEvent(ctx context.Context, event *domain.ChangeEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *fanout) Close() {
	f.closeOnce.Do(func() {
		for _, p := range f.publishers {
			p.Close()
		}
		close(f.closed)
	})
}

func (f *fanout) CloseChan() <-chan struct{} {
	return f.closed
}
