// Package notify delivers one-time codes out of band. The subsystem depends
// only on the Dispatcher contract; the real mail pipeline lives outside it.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Dispatcher sends a code to an address. Implementations must be safe for
// concurrent use.
type Dispatcher interface {
	Send(ctx context.Context, address, code string, validFor time.Duration) error
}

// LogDispatcher writes the message to the log instead of a mail provider.
// Default for development and the memory-backed deployment profile.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Send(ctx context.Context, address, code string, validFor time.Duration) error {
	d.logger.InfoContext(ctx, "dispatching one-time code",
		"to", address,
		"subject", Subject,
		"body", ComposeBody(address, code, validFor),
	)
	return nil
}

// Subject is shared by every dispatcher implementation.
const Subject = "Your password reset code"

// ComposeBody renders the message sent alongside the code.
func ComposeBody(address, code string, validFor time.Duration) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour password reset code is %s. It expires in %d minutes.\nIf you did not request a reset, you can ignore this message.\n",
		GreetingFromEmail(address),
		code,
		int(validFor.Minutes()),
	)
}
