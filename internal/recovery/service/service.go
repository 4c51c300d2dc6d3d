// Package service orchestrates the credential recovery flow: request a code,
// verify it, complete the reset, and mirror the change to the secondary
// identity store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"storegate/internal/audit"
	"storegate/internal/identity"
	"storegate/internal/identity/store"
	syncpkg "storegate/internal/identity/sync"
	"storegate/internal/notify"
	"storegate/internal/password"
	"storegate/internal/recovery/metrics"
	"storegate/internal/recovery/models"
	"storegate/internal/recovery/otp"
	"storegate/internal/recovery/token"
	"storegate/pkg/domain"
	dErrors "storegate/pkg/domainerrors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// UserStore is the slice of the primary store this flow reads and writes.
type UserStore interface {
	GetByIdentifier(ctx context.Context, id domain.Identifier) (identity.UserCredential, error)
	UpdatePasswordHash(ctx context.Context, id domain.Identifier, hash string) error
	UpdateRole(ctx context.Context, id domain.Identifier, role domain.Role) error
}

// Synchronizer mirrors committed primary changes to the secondary store.
type Synchronizer interface {
	SyncPassword(ctx context.Context, id domain.Identifier, secondaryID, plaintext string) syncpkg.Outcome
	SyncRole(ctx context.Context, id domain.Identifier, secondaryID string, role domain.Role) syncpkg.Outcome
}

// Limiter throttles reset requests per identifier.
type Limiter interface {
	Allow(key string) bool
}

// Meta carries per-request context recorded on audit events.
type Meta struct {
	RequestID string
	Device    string
}

// Ack is the enumeration-safe response to a reset request. The message is
// identical whether or not the identifier maps to an account.
type Ack struct {
	Message string
}

const ackMessage = "If an account exists for that identifier, a reset code has been sent."

// Result reports a completed reset. Warnings surface degraded secondary
// sync without failing the reset itself.
type Result struct {
	Ok       bool
	Warnings []string
}

type Service struct {
	users    UserStore
	codes    *otp.Manager
	tokens   *token.Manager
	hasher   *password.Hasher
	sync     Synchronizer
	notifier notify.Dispatcher
	limiter  Limiter
	audit    *audit.Publisher
	logger   *slog.Logger
}

func New(
	users UserStore,
	codes *otp.Manager,
	tokens *token.Manager,
	hasher *password.Hasher,
	sync Synchronizer,
	notifier notify.Dispatcher,
	limiter Limiter,
	auditPub *audit.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:    users,
		codes:    codes,
		tokens:   tokens,
		hasher:   hasher,
		sync:     sync,
		notifier: notifier,
		limiter:  limiter,
		audit:    auditPub,
		logger:   logger,
	}
}

// RequestReset starts the flow. Unknown identifiers and rate-limited
// requests return the same generic acknowledgement as the happy path, so
// the endpoint cannot be used to probe which accounts exist.
func (s *Service) RequestReset(ctx context.Context, rawIdentifier string, meta Meta) (Ack, error) {
	id, err := domain.NewIdentifier(rawIdentifier)
	if err != nil {
		metrics.ResetRequests.WithLabelValues("error").Inc()
		return Ack{}, err
	}

	if !s.limiter.Allow(id.String()) {
		s.logger.WarnContext(ctx, "reset request rate limited", "identifier", id.String())
		metrics.ResetRequests.WithLabelValues("rate_limited").Inc()
		return Ack{Message: ackMessage}, nil
	}

	user, err := s.users.GetByIdentifier(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.ResetRequests.WithLabelValues("suppressed").Inc()
			return Ack{Message: ackMessage}, nil
		}
		metrics.ResetRequests.WithLabelValues("error").Inc()
		return Ack{}, dErrors.Wrap(dErrors.CodeInternal, "look up account", err)
	}

	code, err := s.codes.Request(ctx, id)
	if err != nil {
		metrics.ResetRequests.WithLabelValues("error").Inc()
		return Ack{}, dErrors.Wrap(dErrors.CodeInternal, "issue reset code", err)
	}

	if err := s.notifier.Send(ctx, user.Email, code.Code, s.codes.TTL()); err != nil {
		// The code is already stored; a delivery fault must not reveal
		// whether the account exists.
		s.logger.ErrorContext(ctx, "code delivery failed", "identifier", id.String(), "error", err)
	}

	s.audit.Emit(ctx, audit.Event{
		Identifier: id.String(),
		Action:     audit.ActionResetRequested,
		RequestID:  meta.RequestID,
		Device:     meta.Device,
	})
	metrics.ResetRequests.WithLabelValues("sent").Inc()
	return Ack{Message: ackMessage}, nil
}

// VerifyCode consumes the pending one-time code and, in the same step,
// issues the reset token the client needs for CompleteReset.
func (s *Service) VerifyCode(ctx context.Context, rawIdentifier, code string, meta Meta) (models.ResetToken, error) {
	id, err := domain.NewIdentifier(rawIdentifier)
	if err != nil {
		return models.ResetToken{}, err
	}

	if err := s.codes.Verify(ctx, id, code); err != nil {
		metrics.CodeVerifications.WithLabelValues(verifyResult(err)).Inc()
		return models.ResetToken{}, err
	}

	reset, err := s.tokens.Issue(ctx, id)
	if err != nil {
		metrics.CodeVerifications.WithLabelValues("error").Inc()
		return models.ResetToken{}, dErrors.Wrap(dErrors.CodeInternal, "issue reset token", err)
	}

	s.audit.Emit(ctx, audit.Event{
		Identifier: id.String(),
		Action:     audit.ActionCodeVerified,
		RequestID:  meta.RequestID,
		Device:     meta.Device,
	})
	metrics.CodeVerifications.WithLabelValues("ok").Inc()
	return reset, nil
}

// CompleteReset finishes the flow: it consumes the reset token, commits the
// new password to the primary store, then mirrors it to the secondary store.
// Degraded sync comes back as warnings; the reset itself has already
// succeeded by then.
func (s *Service) CompleteReset(ctx context.Context, rawIdentifier, resetToken, newPassword string, meta Meta) (Result, error) {
	id, err := domain.NewIdentifier(rawIdentifier)
	if err != nil {
		return Result{}, err
	}

	// Reject weak passwords before touching the single-use token, so the
	// user can retry with the same token.
	if err := password.ValidateStrength(newPassword); err != nil {
		return Result{}, err
	}

	if err := s.tokens.Consume(ctx, id, resetToken); err != nil {
		metrics.ResetCompletions.WithLabelValues("rejected").Inc()
		// Expired, mismatched, and already-consumed tokens all collapse to
		// one message so the response does not reveal token state.
		return Result{}, dErrors.Wrap(dErrors.CodeInvalidInput, "invalid or expired reset token", err)
	}

	user, err := s.users.GetByIdentifier(ctx, id)
	if err != nil {
		metrics.ResetCompletions.WithLabelValues("error").Inc()
		return Result{}, dErrors.Wrap(dErrors.CodeInternal, "look up account", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		metrics.ResetCompletions.WithLabelValues("error").Inc()
		return Result{}, dErrors.Wrap(dErrors.CodeInternal, "hash password", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, id, hash); err != nil {
		metrics.ResetCompletions.WithLabelValues("error").Inc()
		return Result{}, dErrors.Wrap(dErrors.CodeInternal, "store password", err)
	}

	result := Result{Ok: true}
	outcome := s.sync.SyncPassword(ctx, id, user.SecondaryID, newPassword)
	metrics.SyncOutcomes.WithLabelValues("password", string(outcome.Status)).Inc()
	if outcome.Status != syncpkg.StatusSuccess {
		result.Warnings = append(result.Warnings, outcome.Message)
		s.audit.Emit(ctx, audit.Event{
			Identifier: id.String(),
			Action:     audit.ActionSyncDegraded,
			RequestID:  meta.RequestID,
			Device:     meta.Device,
			Detail:     outcome.Message,
		})
	}

	s.audit.Emit(ctx, audit.Event{
		Identifier: id.String(),
		Action:     audit.ActionResetCompleted,
		RequestID:  meta.RequestID,
		Device:     meta.Device,
	})
	metrics.ResetCompletions.WithLabelValues("ok").Inc()
	return result, nil
}

// SyncRole commits a role change to the primary store and mirrors it to the
// secondary store. Unlike password resets this is operator-initiated, so a
// missing account is an error, not a suppressed ack.
func (s *Service) SyncRole(ctx context.Context, rawIdentifier string, role domain.Role, meta Meta) (syncpkg.Outcome, error) {
	id, err := domain.NewIdentifier(rawIdentifier)
	if err != nil {
		return syncpkg.Outcome{}, err
	}

	user, err := s.users.GetByIdentifier(ctx, id)
	if err != nil {
		return syncpkg.Outcome{}, err
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return syncpkg.Outcome{}, dErrors.Wrap(dErrors.CodeInternal, "store role", err)
	}

	outcome := s.sync.SyncRole(ctx, id, user.SecondaryID, role)
	metrics.SyncOutcomes.WithLabelValues("role", string(outcome.Status)).Inc()

	action := audit.ActionRoleSynced
	if outcome.Status != syncpkg.StatusSuccess {
		action = audit.ActionSyncDegraded
	}
	s.audit.Emit(ctx, audit.Event{
		Identifier: id.String(),
		Action:     action,
		RequestID:  meta.RequestID,
		Device:     meta.Device,
		Detail:     outcome.Message,
	})
	return outcome, nil
}

func verifyResult(err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeExpired:
		return "expired"
	case dErrors.CodeMismatch:
		return "mismatch"
	case dErrors.CodeTooManyAttempts:
		return "too_many_attempts"
	default:
		return "error"
	}
}
