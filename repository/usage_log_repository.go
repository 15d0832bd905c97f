package repository

import (
	"context"
	"fmt"

	"guildledger/domain/entities"
	"guildledger/domain/interfaces"
)

// usageLogRepository implements interfaces.UsageLogRepository scoped to one
// guild. Entries are insert-only.
type usageLogRepository struct {
	q       Queryable
	guildID int64
}

// NewUsageLogRepositoryScoped creates a usage log repository bound to a
// transaction and guild scope
func NewUsageLogRepositoryScoped(tx Queryable, guildID int64) interfaces.UsageLogRepository {
	return &usageLogRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create inserts a usage log entry. Callers write it in the same transaction
// as the matching gold decrement.
func (r *usageLogRepository) Create(ctx context.Context, entry *entities.UsageLog) error {
	query := `
		INSERT INTO usage_logs (guild_id, character_id, character_name, item_name, cost, used_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, used_at`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		entry.CharacterID,
		entry.CharacterName,
		entry.ItemName,
		entry.Cost,
		entry.UsedByUserID,
	).Scan(&entry.ID, &entry.UsedAt)

	if err != nil {
		return fmt.Errorf("failed to create usage log for character %d: %w", entry.CharacterID, mapError(err))
	}

	entry.GuildID = r.guildID
	return nil
}

// GetRecent returns the most recent entries, newest first
func (r *usageLogRepository) GetRecent(ctx context.Context, limit int) ([]*entities.UsageLog, error) {
	query := `
		SELECT id, guild_id, character_id, character_name, item_name, cost, used_by_user_id, used_at
		FROM usage_logs
		WHERE guild_id = $1
		ORDER BY used_at DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent usage logs in guild %d: %w", r.guildID, mapError(err))
	}
	defer rows.Close()

	var entries []*entities.UsageLog
	for rows.Next() {
		var entry entities.UsageLog
		err := rows.Scan(
			&entry.ID, &entry.GuildID, &entry.CharacterID, &entry.CharacterName,
			&entry.ItemName, &entry.Cost, &entry.UsedByUserID, &entry.UsedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage log: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate usage logs: %w", mapError(err))
	}

	return entries, nil
}
