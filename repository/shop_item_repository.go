package repository

import (
	"context"
	"fmt"

	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// shopItemRepository implements interfaces.ShopItemRepository scoped to one
// guild.
type shopItemRepository struct {
	q       Queryable
	guildID int64
}

// NewShopItemRepositoryScoped creates a shop item repository bound to a
// transaction and guild scope
func NewShopItemRepositoryScoped(tx Queryable, guildID int64) interfaces.ShopItemRepository {
	return &shopItemRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create inserts a new shop item
func (r *shopItemRepository) Create(ctx context.Context, item *entities.ShopItem) error {
	query := `
		INSERT INTO shop_items (guild_id, name, cost, icon, description, is_one_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		item.Name,
		item.Cost,
		item.Icon,
		item.Description,
		item.IsOneTime,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create shop item in guild %d: %w", r.guildID, mapError(err))
	}

	item.GuildID = r.guildID
	return nil
}

// GetByID retrieves a shop item, or nil if absent
func (r *shopItemRepository) GetByID(ctx context.Context, id int64) (*entities.ShopItem, error) {
	query := `
		SELECT id, guild_id, name, cost, icon, description, is_one_time, created_at
		FROM shop_items
		WHERE id = $1 AND guild_id = $2`

	var item entities.ShopItem
	err := r.q.QueryRow(ctx, query, id, r.guildID).Scan(
		&item.ID, &item.GuildID, &item.Name, &item.Cost,
		&item.Icon, &item.Description, &item.IsOneTime, &item.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop item %d in guild %d: %w", id, r.guildID, mapError(err))
	}

	return &item, nil
}

// ListByCost returns the guild's items ordered by cost ascending
func (r *shopItemRepository) ListByCost(ctx context.Context) ([]*entities.ShopItem, error) {
	query := `
		SELECT id, guild_id, name, cost, icon, description, is_one_time, created_at
		FROM shop_items
		WHERE guild_id = $1
		ORDER BY cost ASC, created_at ASC`

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop items in guild %d: %w", r.guildID, mapError(err))
	}
	defer rows.Close()

	var items []*entities.ShopItem
	for rows.Next() {
		var item entities.ShopItem
		err := rows.Scan(
			&item.ID, &item.GuildID, &item.Name, &item.Cost,
			&item.Icon, &item.Description, &item.IsOneTime, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shop items: %w", mapError(err))
	}

	return items, nil
}

// Update rewrites the item's catalog fields
func (r *shopItemRepository) Update(ctx context.Context, item *entities.ShopItem) error {
	query := `
		UPDATE shop_items
		SET name = $1, cost = $2, icon = $3, description = $4, is_one_time = $5
		WHERE id = $6 AND guild_id = $7`

	result, err := r.q.Exec(ctx, query,
		item.Name,
		item.Cost,
		item.Icon,
		item.Description,
		item.IsOneTime,
		item.ID,
		r.guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shop item %d: %w", item.ID, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("shop item %d: %w", item.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the item from the catalog
func (r *shopItemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM shop_items WHERE id = $1 AND guild_id = $2`

	result, err := r.q.Exec(ctx, query, id, r.guildID)
	if err != nil {
		return fmt.Errorf("failed to delete shop item %d: %w", id, mapError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("shop item %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
