package entities

import "time"

// ShopItem is catalog data for a purchasable item. Purchases themselves go
// through the ledger; the catalog carries no balances.
type ShopItem struct {
	ID          int64     `db:"id"`
	GuildID     int64     `db:"guild_id"`
	Name        string    `db:"name"`
	Cost        int64     `db:"cost"`
	Icon        string    `db:"icon"`
	Description string    `db:"description"`
	IsOneTime   bool      `db:"is_one_time"`
	CreatedAt   time.Time `db:"created_at"`
}
