// Package identity models the user credential record owned by the primary
// relational store and its best-effort mirror in the secondary identity store.
package identity

import "storegate/pkg/domain"

// UserCredential is the primary store's view of an account. SecondaryID,
// when set, is the only ownership-safe pointer into the secondary identity
// store. It is a back-reference, never the source of truth.
type UserCredential struct {
	Identifier   domain.Identifier
	Email        string
	PasswordHash string
	Role         domain.Role
	SecondaryID  string
}

// HasSecondary reports whether the account is linked to the secondary store.
func (u UserCredential) HasSecondary() bool { return u.SecondaryID != "" }
