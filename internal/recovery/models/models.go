// Package models holds the transient credential-recovery records. Both are
// short-lived, single-use, and never part of durable backup scope.
package models

import (
	"time"

	"storegate/pkg/domain"
)

// OneTimeCode proves the requester controls the identifier. At most one live
// code exists per identifier; a new request supersedes the old one.
type OneTimeCode struct {
	Identifier domain.Identifier
	Code       string
	ExpiresAt  time.Time
	Attempts   int
}

// ResetToken proves a one-time code was already verified. Valid for a bounded
// window from issuance and destroyed on the reset that consumes it.
type ResetToken struct {
	Identifier domain.Identifier
	Token      string
	IssuedAt   time.Time
}
