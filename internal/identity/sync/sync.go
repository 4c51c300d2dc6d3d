// Package sync mirrors committed primary-store changes into the secondary
// identity store. The mirror is advisory: the primary store has already won
// by the time anything here runs, and no outcome ever rolls it back.
package sync

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"storegate/internal/identity/secondary"
	"storegate/pkg/domain"
)

// Status is three-valued on purpose: "partial" (primary committed, secondary
// did not follow) is not a boolean failure.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailure Status = "failure"
)

type Target string

const (
	TargetPrimary   Target = "primary"
	TargetSecondary Target = "secondary"
)

// Outcome reports one synchronization attempt. It is ephemeral: input for
// user-visible warnings and retry decisions, never a system of record.
type Outcome struct {
	Identifier domain.Identifier
	Target     Target
	Status     Status
	Message    string
}

// DefaultTimeout bounds each secondary-store call so a slow remote cannot
// hold up the already-confirmed primary response.
const DefaultTimeout = 3 * time.Second

type Synchronizer struct {
	client  secondary.Client
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
}

type Option func(*Synchronizer)

func WithTimeout(d time.Duration) Option {
	return func(s *Synchronizer) { s.timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) { s.logger = logger }
}

func NewSynchronizer(client secondary.Client, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		client:  client,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
		tracer:  otel.Tracer("storegate/identity/sync"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncPassword mirrors a committed password change. Re-running with the same
// target state is a no-op that still reports success.
func (s *Synchronizer) SyncPassword(ctx context.Context, id domain.Identifier, secondaryID, plaintext string) Outcome {
	if secondaryID == "" {
		return Outcome{
			Identifier: id,
			Target:     TargetSecondary,
			Status:     StatusFailure,
			Message:    "account is not linked to the secondary store",
		}
	}

	ctx, span := s.tracer.Start(ctx, "sync.password",
		trace.WithAttributes(attribute.String("sync.target", string(TargetSecondary))))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.client.UpdatePassword(ctx, secondaryID, plaintext)
	return s.classify(ctx, id, "password", err)
}

// SyncRole mirrors a committed role change to the secondary store's claims.
func (s *Synchronizer) SyncRole(ctx context.Context, id domain.Identifier, secondaryID string, role domain.Role) Outcome {
	if secondaryID == "" {
		return Outcome{
			Identifier: id,
			Target:     TargetSecondary,
			Status:     StatusFailure,
			Message:    "account is not linked to the secondary store",
		}
	}

	ctx, span := s.tracer.Start(ctx, "sync.role",
		trace.WithAttributes(attribute.String("sync.role", role.String())))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.client.UpdateRole(ctx, secondaryID, role)
	return s.classify(ctx, id, "role", err)
}

func (s *Synchronizer) classify(ctx context.Context, id domain.Identifier, what string, err error) Outcome {
	out := Outcome{Identifier: id, Target: TargetSecondary}

	switch {
	case err == nil:
		out.Status = StatusSuccess
		return out
	case errors.Is(err, secondary.ErrRemoteNotFound):
		// No remote account to update; creating one is out of scope here.
		out.Status = StatusFailure
		out.Message = "no matching account in the secondary store"
	case errors.Is(err, secondary.ErrRemoteRejected):
		out.Status = StatusFailure
		out.Message = "secondary store rejected the " + what + " update"
	default:
		// Timeouts and network faults: the primary store is authoritative
		// and already updated, so this degrades to a warning.
		out.Status = StatusPartial
		out.Message = "secondary sync failed"
	}

	s.logger.WarnContext(ctx, "secondary store sync degraded",
		"identifier", id.String(),
		"change", what,
		"status", string(out.Status),
		"error", err,
	)
	return out
}
