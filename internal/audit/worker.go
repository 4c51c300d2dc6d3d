package audit

import (
	"context"
	"log/slog"
)

// Sink receives drained events. Implementations: KafkaSink, MemorySink.
type Sink interface {
	Write(ctx context.Context, event Event) error
}

// Worker consumes audit events from the publisher inbox and persists them.
// It keeps background processing testable without wiring queue
// implementations into the services.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run drains the inbox until ctx is cancelled. Sink errors are logged and
// skipped; the trail is best-effort by design of the recovery flow.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Write(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit sink write failed",
					"action", string(event.Action),
					"error", err,
				)
			}
		}
	}
}
