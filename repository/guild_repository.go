package repository

import (
	"context"
	"fmt"

	"guildledger/domain/entities"
	"guildledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// guildRepository implements interfaces.GuildRepository.
// Directory-level: not scoped to a single guild.
type guildRepository struct {
	q Queryable
}

// NewGuildRepository creates a new guild repository
func NewGuildRepository(q Queryable) interfaces.GuildRepository {
	return &guildRepository{q: q}
}

// Create inserts a new guild record
func (r *guildRepository) Create(ctx context.Context, guild *entities.Guild) error {
	query := `
		INSERT INTO guilds (name, code, leader_id, description, member_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		guild.Name,
		guild.Code,
		guild.LeaderID,
		guild.Description,
		guild.MemberCount,
	).Scan(&guild.ID, &guild.CreatedAt)

	if err != nil {
		if mapped := mapError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create guild: %w", err)
	}

	return nil
}

// GetByID retrieves a guild by its ID
func (r *guildRepository) GetByID(ctx context.Context, id int64) (*entities.Guild, error) {
	query := `
		SELECT id, name, code, leader_id, description, member_count, created_at
		FROM guilds
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// GetByCode resolves an invite code to a guild
func (r *guildRepository) GetByCode(ctx context.Context, code string) (*entities.Guild, error) {
	query := `
		SELECT id, name, code, leader_id, description, member_count, created_at
		FROM guilds
		WHERE code = $1`

	return r.scanOne(ctx, query, code)
}

func (r *guildRepository) scanOne(ctx context.Context, query string, arg any) (*entities.Guild, error) {
	var guild entities.Guild
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&guild.ID,
		&guild.Name,
		&guild.Code,
		&guild.LeaderID,
		&guild.Description,
		&guild.MemberCount,
		&guild.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild: %w", mapError(err))
	}

	return &guild, nil
}

// AdjustMemberCount changes the member count by delta and returns the new
// count. Runs in the caller's transaction alongside the membership change.
func (r *guildRepository) AdjustMemberCount(ctx context.Context, guildID int64, delta int) (int, error) {
	query := `
		UPDATE guilds
		SET member_count = member_count + $1
		WHERE id = $2
		RETURNING member_count`

	var count int
	err := r.q.QueryRow(ctx, query, delta, guildID).Scan(&count)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("guild %d not found", guildID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust member count for guild %d: %w", guildID, mapError(err))
	}

	return count, nil
}
