// Package audit records the recovery flow's security events. Publishing is
// fire-and-forget: a full trail must never block or fail a user-facing reset.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher hands events to the background worker via a bounded inbox.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
	now    func() time.Time
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
		now:    time.Now,
	}
}

// Emit enqueues an event, stamping id and timestamp. When the inbox is full
// the event is dropped with a log line rather than stalling the caller.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", string(event.Action),
			"identifier", event.Identifier,
		)
	}
}

// Inbox is consumed by exactly one Worker.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }
