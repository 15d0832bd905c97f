package interfaces

import (
	"context"

	"guildledger/domain/events"
)

// EventPublisher publishes domain events to observers
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events during a transaction and
// publishes them only after the transaction commits. Rollback discards.
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all pending events. Called after a successful commit.
	Flush(ctx context.Context) error

	// Discard drops all pending events. Called on rollback.
	Discard()
}
