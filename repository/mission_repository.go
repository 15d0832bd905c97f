package repository

import (
	"context"
	"fmt"
	"time"

	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const missionColumns = `id, guild_id, title, description, cost, mission_type, min_participants, max_participants, creator_id, status, created_at, updated_at, deleted_at`

// missionRepository implements interfaces.MissionRepository scoped to one
// guild.
type missionRepository struct {
	q       Queryable
	guildID int64
}

// NewMissionRepositoryScoped creates a mission repository bound to a
// transaction and guild scope
func NewMissionRepositoryScoped(tx Queryable, guildID int64) interfaces.MissionRepository {
	return &missionRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create inserts a new mission with active status
func (r *missionRepository) Create(ctx context.Context, mission *entities.Mission) error {
	query := `
		INSERT INTO missions (guild_id, title, description, cost, mission_type, min_participants, max_participants, creator_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		mission.Title,
		mission.Description,
		mission.Cost,
		mission.Type,
		mission.MinParticipants,
		mission.MaxParticipants,
		mission.CreatorID,
		mission.Status,
	).Scan(&mission.ID, &mission.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create mission in guild %d: %w", r.guildID, mapError(err))
	}

	mission.GuildID = r.guildID
	return nil
}

// GetByID retrieves a mission, or nil if absent
func (r *missionRepository) GetByID(ctx context.Context, id int64) (*entities.Mission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM missions
		WHERE id = $1 AND guild_id = $2`, missionColumns)

	return r.scanOne(ctx, query, id)
}

// GetForUpdate reads and row-locks a mission. Concurrent completions of the
// same mission serialize on this lock, which keeps the duplicate-guard read
// race-free within the transaction.
func (r *missionRepository) GetForUpdate(ctx context.Context, id int64) (*entities.Mission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM missions
		WHERE id = $1 AND guild_id = $2
		FOR UPDATE`, missionColumns)

	return r.scanOne(ctx, query, id)
}

func (r *missionRepository) scanOne(ctx context.Context, query string, id int64) (*entities.Mission, error) {
	var m entities.Mission
	err := r.q.QueryRow(ctx, query, id, r.guildID).Scan(
		&m.ID, &m.GuildID, &m.Title, &m.Description, &m.Cost,
		&m.Type, &m.MinParticipants, &m.MaxParticipants,
		&m.CreatorID, &m.Status, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission %d in guild %d: %w", id, r.guildID, mapError(err))
	}

	return &m, nil
}

// List returns missions in the guild, newest first. With activeOnly set,
// soft-deleted missions are excluded.
func (r *missionRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Mission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM missions
		WHERE guild_id = $1`, missionColumns)
	args := []any{r.guildID}

	if activeOnly {
		query += ` AND status = $2`
		args = append(args, entities.MissionActive)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions in guild %d: %w", r.guildID, mapError(err))
	}
	defer rows.Close()

	var missions []*entities.Mission
	for rows.Next() {
		var m entities.Mission
		err := rows.Scan(
			&m.ID, &m.GuildID, &m.Title, &m.Description, &m.Cost,
			&m.Type, &m.MinParticipants, &m.MaxParticipants,
			&m.CreatorID, &m.Status, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission: %w", err)
		}
		missions = append(missions, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate missions: %w", mapError(err))
	}

	return missions, nil
}

// Update rewrites the mission's mutable fields and stamps updated_at
func (r *missionRepository) Update(ctx context.Context, mission *entities.Mission) error {
	query := `
		UPDATE missions
		SET title = $1, description = $2, cost = $3, mission_type = $4,
		    min_participants = $5, max_participants = $6, status = $7,
		    updated_at = NOW()
		WHERE id = $8 AND guild_id = $9`

	result, err := r.q.Exec(ctx, query,
		mission.Title,
		mission.Description,
		mission.Cost,
		mission.Type,
		mission.MinParticipants,
		mission.MaxParticipants,
		mission.Status,
		mission.ID,
		r.guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mission %d: %w", mission.ID, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mission %d: %w", mission.ID, domain.ErrNotFound)
	}

	return nil
}

// SoftDelete flips the status to inactive and stamps deleted_at. The row is
// never removed so historical log entries keep their join target.
func (r *missionRepository) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	query := `
		UPDATE missions
		SET status = $1, deleted_at = $2
		WHERE id = $3 AND guild_id = $4`

	result, err := r.q.Exec(ctx, query, entities.MissionInactive, deletedAt, id, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to soft delete mission %d: %w", id, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mission %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
