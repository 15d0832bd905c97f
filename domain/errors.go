// Package domain defines the error taxonomy shared by services and
// repositories. Every ledger-mutating operation fails with exactly one of
// these typed reasons and no partial effect.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a guild, invite code, character, or mission
	// could not be resolved.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyMember indicates the principal is already linked to a guild.
	ErrAlreadyMember = errors.New("already a member of a guild")

	// ErrAlreadyCompletedToday indicates a mission already has a log entry
	// for the current calendar day (UTC).
	ErrAlreadyCompletedToday = errors.New("mission already completed today")

	// ErrMissionInactive indicates a completion was attempted against a
	// soft-deleted mission.
	ErrMissionInactive = errors.New("mission is inactive")

	// ErrValidation indicates bad caller input (empty required field,
	// non-positive cost, unknown job class).
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateInviteCode indicates a freshly generated invite code
	// collided with an existing guild. Handled internally by regenerating.
	ErrDuplicateInviteCode = errors.New("duplicate invite code")

	// ErrTransactionConflict indicates the store detected a concurrent write
	// conflict. Services retry a bounded number of times before surfacing it.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrStoreUnavailable indicates a transport or infrastructure failure.
	// Surfaced as-is, never retried indefinitely.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InsufficientFundsError is returned when a spend exceeds a character's gold.
// It carries the amounts so callers can present them.
type InsufficientFundsError struct {
	Have int64
	Need int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: have %d, need %d", e.Have, e.Need)
}

// NewValidationError wraps ErrValidation with a caller-facing reason.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
