// Package application defines the transactional boundary the domain
// services operate through. A UnitOfWork maps to one store transaction:
// every read happens under it, every write commits atomically or not at all.
package application

import (
	"context"

	"guildledger/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	GuildRepository() interfaces.GuildRepository
	MembershipRepository() interfaces.MembershipRepository
	CharacterRepository() interfaces.CharacterRepository
	MissionRepository() interfaces.MissionRepository
	MissionLogRepository() interfaces.MissionLogRepository
	UsageLogRepository() interfaces.UsageLogRepository
	ShopItemRepository() interfaces.ShopItemRepository

	// EventBus returns the transactional publisher bound to this unit of work
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory creates UnitOfWork instances scoped to one guild
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork scoped to a specific guild
	CreateForGuild(guildID int64) UnitOfWork
}
