package interfaces

import (
	"context"
	"time"

	"guildledger/domain/entities"
)

// GuildRepository defines directory-level access to guild records.
// Unlike the guild-scoped repositories it is not bound to one tenant.
type GuildRepository interface {
	// Create inserts a new guild and populates its ID and CreatedAt
	Create(ctx context.Context, guild *entities.Guild) error

	// GetByID retrieves a guild by its ID
	GetByID(ctx context.Context, id int64) (*entities.Guild, error)

	// GetByCode resolves an invite code via the uniqueness-indexed lookup
	GetByCode(ctx context.Context, code string) (*entities.Guild, error)

	// AdjustMemberCount changes the member count by delta and returns the
	// new count. Must run inside the same transaction as the membership
	// change it accompanies.
	AdjustMemberCount(ctx context.Context, guildID int64, delta int) (int, error)
}

// MembershipRepository defines access to principal-to-guild links
type MembershipRepository interface {
	// Create inserts a membership. The store's uniqueness constraint on the
	// principal rejects a second guild link.
	Create(ctx context.Context, membership *entities.Membership) error

	// GetByPrincipal returns the principal's membership, or nil if none
	GetByPrincipal(ctx context.Context, principalID string) (*entities.Membership, error)

	// Delete removes the principal's membership
	Delete(ctx context.Context, principalID string) error
}

// CharacterRepository defines guild-scoped access to characters
type CharacterRepository interface {
	// Create inserts a new character and populates its ID and CreatedAt
	Create(ctx context.Context, character *entities.Character) error

	// GetByID retrieves a character, or nil if absent
	GetByID(ctx context.Context, id int64) (*entities.Character, error)

	// GetForUpdate reads and row-locks the given characters. Implementations
	// lock in a stable order and return entities in input order. Any id that
	// does not resolve fails the whole read with a wrapped ErrNotFound.
	GetForUpdate(ctx context.Context, ids []int64) ([]*entities.Character, error)

	// List returns all characters in the guild, newest first
	List(ctx context.Context) ([]*entities.Character, error)

	// Update changes name, job class, and description only
	Update(ctx context.Context, character *entities.Character) error

	// UpdateProgress writes gold, experience, and level. Reserved for the
	// reward ledger.
	UpdateProgress(ctx context.Context, id int64, gold, experience int64, level int) error

	// Delete hard-deletes a character. Ledger entries keep their snapshots.
	Delete(ctx context.Context, id int64) error
}

// MissionRepository defines guild-scoped access to missions
type MissionRepository interface {
	// Create inserts a new mission and populates its ID and CreatedAt
	Create(ctx context.Context, mission *entities.Mission) error

	// GetByID retrieves a mission, or nil if absent
	GetByID(ctx context.Context, id int64) (*entities.Mission, error)

	// GetForUpdate reads and row-locks a mission, serializing concurrent
	// completions of the same mission
	GetForUpdate(ctx context.Context, id int64) (*entities.Mission, error)

	// List returns missions in the guild, optionally only active ones
	List(ctx context.Context, activeOnly bool) ([]*entities.Mission, error)

	// Update rewrites mutable fields and stamps UpdatedAt
	Update(ctx context.Context, mission *entities.Mission) error

	// SoftDelete flips the status to inactive and stamps DeletedAt
	SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error
}

// MissionLogRepository defines guild-scoped access to the income ledger
type MissionLogRepository interface {
	// Create inserts an immutable mission log entry
	Create(ctx context.Context, entry *entities.MissionLog) error

	// GetByMissionAndDate returns the entry for (mission, day), or nil.
	// This is the duplicate-completion guard read.
	GetByMissionAndDate(ctx context.Context, missionID int64, day string) (*entities.MissionLog, error)

	// GetRecent returns the most recent entries, newest first
	GetRecent(ctx context.Context, limit int) ([]*entities.MissionLog, error)
}

// UsageLogRepository defines guild-scoped access to the expense ledger
type UsageLogRepository interface {
	// Create inserts an immutable usage log entry
	Create(ctx context.Context, entry *entities.UsageLog) error

	// GetRecent returns the most recent entries, newest first
	GetRecent(ctx context.Context, limit int) ([]*entities.UsageLog, error)
}

// ShopItemRepository defines guild-scoped access to the shop catalog
type ShopItemRepository interface {
	// Create inserts a new shop item and populates its ID and CreatedAt
	Create(ctx context.Context, item *entities.ShopItem) error

	// GetByID retrieves a shop item, or nil if absent
	GetByID(ctx context.Context, id int64) (*entities.ShopItem, error)

	// ListByCost returns the guild's items ordered by cost ascending
	ListByCost(ctx context.Context) ([]*entities.ShopItem, error)

	// Update rewrites the item's catalog fields
	Update(ctx context.Context, item *entities.ShopItem) error

	// Delete removes the item from the catalog
	Delete(ctx context.Context, id int64) error
}
