package repository

import (
	"context"
	"fmt"
	"time"

	"guildledger/domain/entities"
	"guildledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const missionLogColumns = `id, guild_id, mission_id, mission_title, performer_character_ids, performer_names, approver_user_id, total_reward, bonus_gold, is_chest_found, performed_date, created_at`

// missionLogRepository implements interfaces.MissionLogRepository scoped to
// one guild. Entries are insert-only.
type missionLogRepository struct {
	q       Queryable
	guildID int64
}

// NewMissionLogRepositoryScoped creates a mission log repository bound to a
// transaction and guild scope
func NewMissionLogRepositoryScoped(tx Queryable, guildID int64) interfaces.MissionLogRepository {
	return &missionLogRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create inserts a mission log entry. The (mission_id, performed_date)
// unique constraint maps to domain.ErrAlreadyCompletedToday if a concurrent
// completion won the race.
func (r *missionLogRepository) Create(ctx context.Context, entry *entities.MissionLog) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid mission log entry: %w", err)
	}

	query := `
		INSERT INTO mission_logs (guild_id, mission_id, mission_title, performer_character_ids, performer_names, approver_user_id, total_reward, bonus_gold, is_chest_found, performed_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		entry.MissionID,
		entry.MissionTitle,
		entry.PerformerCharacterIDs,
		entry.PerformerNames,
		entry.ApproverUserID,
		entry.TotalReward,
		entry.BonusGold,
		entry.IsChestFound,
		entry.PerformedDate,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		if mapped := mapError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create mission log for mission %d: %w", entry.MissionID, err)
	}

	entry.GuildID = r.guildID
	return nil
}

// GetByMissionAndDate returns the entry for (mission, day), or nil.
// Inside a completion transaction this is the duplicate guard read.
func (r *missionLogRepository) GetByMissionAndDate(ctx context.Context, missionID int64, day string) (*entities.MissionLog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM mission_logs
		WHERE mission_id = $1 AND performed_date = $2 AND guild_id = $3`, missionLogColumns)

	var entry entities.MissionLog
	var performedDate time.Time
	err := r.q.QueryRow(ctx, query, missionID, day, r.guildID).Scan(
		&entry.ID, &entry.GuildID, &entry.MissionID, &entry.MissionTitle,
		&entry.PerformerCharacterIDs, &entry.PerformerNames,
		&entry.ApproverUserID, &entry.TotalReward, &entry.BonusGold,
		&entry.IsChestFound, &performedDate, &entry.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission log for mission %d on %s: %w", missionID, day, mapError(err))
	}

	entry.PerformedDate = performedDate.Format(entities.DayFormat)
	return &entry, nil
}

// GetRecent returns the most recent entries, newest first
func (r *missionLogRepository) GetRecent(ctx context.Context, limit int) ([]*entities.MissionLog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM mission_logs
		WHERE guild_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, missionLogColumns)

	rows, err := r.q.Query(ctx, query, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent mission logs in guild %d: %w", r.guildID, mapError(err))
	}
	defer rows.Close()

	var entries []*entities.MissionLog
	for rows.Next() {
		var entry entities.MissionLog
		var performedDate time.Time
		err := rows.Scan(
			&entry.ID, &entry.GuildID, &entry.MissionID, &entry.MissionTitle,
			&entry.PerformerCharacterIDs, &entry.PerformerNames,
			&entry.ApproverUserID, &entry.TotalReward, &entry.BonusGold,
			&entry.IsChestFound, &performedDate, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission log: %w", err)
		}
		entry.PerformedDate = performedDate.Format(entities.DayFormat)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mission logs: %w", mapError(err))
	}

	return entries, nil
}
