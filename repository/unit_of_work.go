package repository

import (
	"context"
	"fmt"

	"guildledger/application"
	"guildledger/database"
	"guildledger/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface. One unit of
// work wraps one pgx transaction; all repositories it hands out share that
// transaction and the guild scope.
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	guildID                int64
	transactionalPublisher interfaces.TransactionalEventPublisher
	guildRepo              interfaces.GuildRepository
	membershipRepo         interfaces.MembershipRepository
	characterRepo          interfaces.CharacterRepository
	missionRepo            interfaces.MissionRepository
	missionLogRepo         interfaces.MissionLogRepository
	usageLogRepo           interfaces.UsageLogRepository
	shopItemRepo           interfaces.ShopItemRepository
}

type unitOfWorkFactory struct {
	db               *database.DB
	publisherFactory func() interfaces.TransactionalEventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. publisherFactory
// produces a fresh transactional publisher per unit of work so pending
// events never leak between transactions.
func NewUnitOfWorkFactory(db *database.DB, publisherFactory func() interfaces.TransactionalEventPublisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:               db,
		publisherFactory: publisherFactory,
	}
}

// CreateForGuild creates a new UnitOfWork scoped to a specific guild
func (f *unitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		guildID:                guildID,
		transactionalPublisher: f.publisherFactory(),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", mapError(err))
	}

	u.tx = tx
	u.ctx = ctx

	// Guild and membership repos are directory-level; the rest are scoped.
	u.guildRepo = NewGuildRepository(tx)
	u.membershipRepo = NewMembershipRepository(tx)
	u.characterRepo = NewCharacterRepositoryScoped(tx, u.guildID)
	u.missionRepo = NewMissionRepositoryScoped(tx, u.guildID)
	u.missionLogRepo = NewMissionLogRepositoryScoped(tx, u.guildID)
	u.usageLogRepo = NewUsageLogRepositoryScoped(tx, u.guildID)
	u.shopItemRepo = NewShopItemRepositoryScoped(tx, u.guildID)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", mapError(err))
	}

	u.tx = nil

	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events.
// Safe to defer after a successful commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", mapError(err))
	}

	u.tx = nil

	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// GuildRepository returns the guild repository for this unit of work
func (u *unitOfWork) GuildRepository() interfaces.GuildRepository {
	if u.guildRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildRepo
}

// MembershipRepository returns the membership repository for this unit of work
func (u *unitOfWork) MembershipRepository() interfaces.MembershipRepository {
	if u.membershipRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.membershipRepo
}

// CharacterRepository returns the character repository for this unit of work
func (u *unitOfWork) CharacterRepository() interfaces.CharacterRepository {
	if u.characterRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.characterRepo
}

// MissionRepository returns the mission repository for this unit of work
func (u *unitOfWork) MissionRepository() interfaces.MissionRepository {
	if u.missionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.missionRepo
}

// MissionLogRepository returns the mission log repository for this unit of work
func (u *unitOfWork) MissionLogRepository() interfaces.MissionLogRepository {
	if u.missionLogRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.missionLogRepo
}

// UsageLogRepository returns the usage log repository for this unit of work
func (u *unitOfWork) UsageLogRepository() interfaces.UsageLogRepository {
	if u.usageLogRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.usageLogRepo
}

// ShopItemRepository returns the shop item repository for this unit of work
func (u *unitOfWork) ShopItemRepository() interfaces.ShopItemRepository {
	if u.shopItemRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.shopItemRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalPublisher
}
