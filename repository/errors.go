package repository

import (
	"context"
	"errors"
	"fmt"

	"guildledger/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes this layer classifies.
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeUniqueViolation      = "23505"
)

// Constraint names from the schema that carry domain meaning.
const (
	constraintMissionLogDaily     = "mission_logs_daily_unique"
	constraintMembershipPrincipal = "guild_memberships_principal_unique"
	constraintGuildCode           = "guilds_code_unique"
)

// mapError translates driver-level failures into domain errors so services
// can branch on errors.Is without knowing about Postgres. Unclassified
// errors pass through unchanged for the caller to wrap.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeSerializationFailure, pgCodeDeadlockDetected:
			return fmt.Errorf("%w: %s", domain.ErrTransactionConflict, pgErr.Message)
		case pgCodeUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintMissionLogDaily:
				// A concurrent completion won the race after our guard read.
				return domain.ErrAlreadyCompletedToday
			case constraintMembershipPrincipal:
				return domain.ErrAlreadyMember
			case constraintGuildCode:
				return domain.ErrDuplicateInviteCode
			}
			return fmt.Errorf("%w: unique violation on %s", domain.ErrTransactionConflict, pgErr.ConstraintName)
		}
		return err
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return err
}
