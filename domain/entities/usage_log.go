package entities

import "time"

// UsageLog is the expense side of the ledger: one immutable record per shop
// purchase, written only together with the matching gold decrement. The
// character name is a snapshot so the entry survives character deletion.
type UsageLog struct {
	ID            int64     `db:"id"`
	GuildID       int64     `db:"guild_id"`
	CharacterID   int64     `db:"character_id"`
	CharacterName string    `db:"character_name"`
	ItemName      string    `db:"item_name"`
	Cost          int64     `db:"cost"`
	UsedByUserID  string    `db:"used_by_user_id"`
	UsedAt        time.Time `db:"used_at"`
}
