package domain

import (
	"strconv"
	"strings"

	dErrors "storegate/pkg/domainerrors"
)

// Identifier is the canonical key correlating a user across the primary and
// secondary stores. It is constructed exactly once at the API boundary; every
// layer below carries it opaquely, so the numeric and textual forms of the
// same account can never drift into distinct entries.
type Identifier string

const maxIdentifierLength = 255

// NewIdentifier canonicalizes raw caller input. Email addresses are trimmed
// and lowercased; all-digit input is treated as an internal user id and
// re-rendered in base 10 so "007" and "7" collapse to one key.
func NewIdentifier(raw string) (Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identifier is required")
	}
	if len(trimmed) > maxIdentifierLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identifier too long")
	}

	if isDigits(trimmed) {
		n, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			return "", dErrors.New(dErrors.CodeInvalidInput, "invalid numeric identifier")
		}
		return Identifier(strconv.FormatUint(n, 10)), nil
	}

	lowered := strings.ToLower(trimmed)
	at := strings.IndexByte(lowered, '@')
	if at <= 0 || at == len(lowered)-1 || strings.Count(lowered, "@") != 1 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identifier must be an email address or numeric user id")
	}
	return Identifier(lowered), nil
}

// FromUserID builds the canonical form of an internal numeric user id.
func FromUserID(id int64) Identifier {
	return Identifier(strconv.FormatInt(id, 10))
}

func (i Identifier) String() string { return string(i) }

// IsEmail reports whether the identifier is the email form. Only email
// identifiers can receive one-time codes.
func (i Identifier) IsEmail() bool {
	return strings.IndexByte(string(i), '@') > 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
