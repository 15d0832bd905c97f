package repository

import (
	"context"
	"fmt"

	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const characterColumns = `id, guild_id, name, job_class, description, gold, experience, level, created_by, created_at`

// characterRepository implements interfaces.CharacterRepository scoped to
// one guild.
type characterRepository struct {
	q       Queryable
	guildID int64
}

// NewCharacterRepositoryScoped creates a character repository bound to a
// transaction and guild scope
func NewCharacterRepositoryScoped(tx Queryable, guildID int64) interfaces.CharacterRepository {
	return &characterRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create inserts a new character with zeroed progress
func (r *characterRepository) Create(ctx context.Context, character *entities.Character) error {
	query := `
		INSERT INTO characters (guild_id, name, job_class, description, gold, experience, level, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		character.Name,
		character.JobClass,
		character.Description,
		character.Gold,
		character.Experience,
		character.Level,
		character.CreatedBy,
	).Scan(&character.ID, &character.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create character in guild %d: %w", r.guildID, mapError(err))
	}

	character.GuildID = r.guildID
	return nil
}

// GetByID retrieves a character, or nil if absent
func (r *characterRepository) GetByID(ctx context.Context, id int64) (*entities.Character, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM characters
		WHERE id = $1 AND guild_id = $2`, characterColumns)

	var c entities.Character
	err := r.q.QueryRow(ctx, query, id, r.guildID).Scan(
		&c.ID, &c.GuildID, &c.Name, &c.JobClass, &c.Description,
		&c.Gold, &c.Experience, &c.Level, &c.CreatedBy, &c.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character %d in guild %d: %w", id, r.guildID, mapError(err))
	}

	return &c, nil
}

// GetForUpdate reads and row-locks the given characters. Rows are locked in
// id order so concurrent reward and spend transactions acquire locks in the
// same sequence; results come back in input order.
func (r *characterRepository) GetForUpdate(ctx context.Context, ids []int64) ([]*entities.Character, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM characters
		WHERE id = ANY($1) AND guild_id = $2
		ORDER BY id
		FOR UPDATE`, characterColumns)

	rows, err := r.q.Query(ctx, query, ids, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock characters in guild %d: %w", r.guildID, mapError(err))
	}
	defer rows.Close()

	byID := make(map[int64]*entities.Character, len(ids))
	for rows.Next() {
		var c entities.Character
		err := rows.Scan(
			&c.ID, &c.GuildID, &c.Name, &c.JobClass, &c.Description,
			&c.Gold, &c.Experience, &c.Level, &c.CreatedBy, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		byID[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate characters: %w", mapError(err))
	}

	characters := make([]*entities.Character, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("character %d: %w", id, domain.ErrNotFound)
		}
		characters = append(characters, c)
	}

	return characters, nil
}

// List returns all characters in the guild, newest first
func (r *characterRepository) List(ctx context.Context) ([]*entities.Character, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM characters
		WHERE guild_id = $1
		ORDER BY created_at DESC`, characterColumns)

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters in guild %d: %w", r.guildID, mapError(err))
	}
	defer rows.Close()

	var characters []*entities.Character
	for rows.Next() {
		var c entities.Character
		err := rows.Scan(
			&c.ID, &c.GuildID, &c.Name, &c.JobClass, &c.Description,
			&c.Gold, &c.Experience, &c.Level, &c.CreatedBy, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate characters: %w", mapError(err))
	}

	return characters, nil
}

// Update changes the character's descriptive fields only. Gold, experience,
// and level are reserved for UpdateProgress.
func (r *characterRepository) Update(ctx context.Context, character *entities.Character) error {
	query := `
		UPDATE characters
		SET name = $1, job_class = $2, description = $3
		WHERE id = $4 AND guild_id = $5`

	result, err := r.q.Exec(ctx, query,
		character.Name,
		character.JobClass,
		character.Description,
		character.ID,
		r.guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to update character %d: %w", character.ID, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("character %d: %w", character.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateProgress writes gold, experience, and level in one statement.
// Only ledger transactions call this.
func (r *characterRepository) UpdateProgress(ctx context.Context, id int64, gold, experience int64, level int) error {
	query := `
		UPDATE characters
		SET gold = $1, experience = $2, level = $3
		WHERE id = $4 AND guild_id = $5`

	result, err := r.q.Exec(ctx, query, gold, experience, level, id, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to update progress for character %d: %w", id, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("character %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a character. Ledger entries keep their snapshots.
func (r *characterRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM characters WHERE id = $1 AND guild_id = $2`

	result, err := r.q.Exec(ctx, query, id, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to delete character %d: %w", id, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("character %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
