package messaging

import (
	"context"

	"github.com/feral-file/world-conquest/internal/domain"
)

// EventHandler is called for each change event, in delivery order
type EventHandler func(event domain.ChangeEvent) error

// Subscriber defines the common interface for receiving change events
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// Subscribe delivers events to handler until ctx is cancelled or the
	// subscription fails. Events are handed over one at a time.
	// ready, when not nil, is called once every event published from then on will be delivered.
	Subscribe(ctx context.Context, handler EventHandler, ready func()) error

	// Close closes the connection and cleans up resources
	Close()
}
