package repository

import (
	"context"
	"fmt"

	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// membershipRepository implements interfaces.MembershipRepository
type membershipRepository struct {
	q Queryable
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(q Queryable) interfaces.MembershipRepository {
	return &membershipRepository{q: q}
}

// Create inserts a membership. The unique constraint on principal_id maps to
// domain.ErrAlreadyMember when the principal already has a guild link.
func (r *membershipRepository) Create(ctx context.Context, membership *entities.Membership) error {
	query := `
		INSERT INTO guild_memberships (guild_id, principal_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at`

	err := r.q.QueryRow(ctx, query,
		membership.GuildID,
		membership.PrincipalID,
		membership.Role,
	).Scan(&membership.ID, &membership.JoinedAt)

	if err != nil {
		if mapped := mapError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create membership for principal %s: %w", membership.PrincipalID, err)
	}

	return nil
}

// GetByPrincipal returns the principal's membership, or nil if none
func (r *membershipRepository) GetByPrincipal(ctx context.Context, principalID string) (*entities.Membership, error) {
	query := `
		SELECT id, guild_id, principal_id, role, joined_at
		FROM guild_memberships
		WHERE principal_id = $1`

	var membership entities.Membership
	err := r.q.QueryRow(ctx, query, principalID).Scan(
		&membership.ID,
		&membership.GuildID,
		&membership.PrincipalID,
		&membership.Role,
		&membership.JoinedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership for principal %s: %w", principalID, mapError(err))
	}

	return &membership, nil
}

// Delete removes the principal's membership
func (r *membershipRepository) Delete(ctx context.Context, principalID string) error {
	query := `DELETE FROM guild_memberships WHERE principal_id = $1`

	result, err := r.q.Exec(ctx, query, principalID)
	if err != nil {
		return fmt.Errorf("failed to delete membership for principal %s: %w", principalID, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("membership for principal %s: %w", principalID, domain.ErrNotFound)
	}

	return nil
}
