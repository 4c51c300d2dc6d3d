package audit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherWorker_DrainsToSink(t *testing.T) {
	logger := slog.Default()
	pub := NewPublisher(8, logger)
	sink := NewMemorySink()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := NewWorker(sink, pub.Inbox(), logger)
	done := make(chan struct{})
	go func() {
		_ = worker.Run(ctx)
		close(done)
	}()

	pub.Emit(ctx, Event{Identifier: "user@example.com", Action: ActionResetRequested})
	pub.Emit(ctx, Event{Identifier: "user@example.com", Action: ActionCodeVerified})

	require.Eventually(t, func() bool {
		return len(sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	events := sink.Events()
	assert.Equal(t, ActionResetRequested, events[0].Action)
	assert.NotEmpty(t, events[0].ID, "publisher stamps an id")
	assert.False(t, events[0].Timestamp.IsZero(), "publisher stamps a timestamp")

	cancel()
	<-done
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	pub := NewPublisher(1, slog.Default())

	// No worker attached: the second emit must not block.
	pub.Emit(context.Background(), Event{Action: ActionResetRequested})
	doneCh := make(chan struct{})
	go func() {
		pub.Emit(context.Background(), Event{Action: ActionResetRequested})
		close(doneCh)
	}()

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full inbox")
	}
}
