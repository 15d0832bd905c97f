package testhelpers

import (
	"context"

	"guildledger/application"
	"guildledger/domain/interfaces"
)

// MockUnitOfWork wires the repository mocks into a single fake transaction.
// Begin, Commit, and Rollback only keep counters; all behavior comes from
// the mock expectations set on the individual repositories.
type MockUnitOfWork struct {
	GuildRepo      *MockGuildRepository
	MembershipRepo *MockMembershipRepository
	CharacterRepo  *MockCharacterRepository
	MissionRepo    *MockMissionRepository
	MissionLogRepo *MockMissionLogRepository
	UsageLogRepo   *MockUsageLogRepository
	ShopItemRepo   *MockShopItemRepository
	Publisher      *RecordingEventPublisher

	Begins    int
	Commits   int
	Rollbacks int
}

// NewMockUnitOfWork creates a fake unit of work with fresh mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		GuildRepo:      &MockGuildRepository{},
		MembershipRepo: &MockMembershipRepository{},
		CharacterRepo:  &MockCharacterRepository{},
		MissionRepo:    &MockMissionRepository{},
		MissionLogRepo: &MockMissionLogRepository{},
		UsageLogRepo:   &MockUsageLogRepository{},
		ShopItemRepo:   &MockShopItemRepository{},
		Publisher:      &RecordingEventPublisher{},
	}
}

func (u *MockUnitOfWork) Begin(ctx context.Context) error {
	u.Begins++
	return nil
}

func (u *MockUnitOfWork) Commit() error {
	u.Commits++
	return nil
}

func (u *MockUnitOfWork) Rollback() error {
	u.Rollbacks++
	return nil
}

func (u *MockUnitOfWork) GuildRepository() interfaces.GuildRepository {
	return u.GuildRepo
}

func (u *MockUnitOfWork) MembershipRepository() interfaces.MembershipRepository {
	return u.MembershipRepo
}

func (u *MockUnitOfWork) CharacterRepository() interfaces.CharacterRepository {
	return u.CharacterRepo
}

func (u *MockUnitOfWork) MissionRepository() interfaces.MissionRepository {
	return u.MissionRepo
}

func (u *MockUnitOfWork) MissionLogRepository() interfaces.MissionLogRepository {
	return u.MissionLogRepo
}

func (u *MockUnitOfWork) UsageLogRepository() interfaces.UsageLogRepository {
	return u.UsageLogRepo
}

func (u *MockUnitOfWork) ShopItemRepository() interfaces.ShopItemRepository {
	return u.ShopItemRepo
}

func (u *MockUnitOfWork) EventBus() interfaces.EventPublisher {
	return u.Publisher
}

// MockUnitOfWorkFactory hands out the same fake unit of work for every
// call and records the guild scope requested.
type MockUnitOfWorkFactory struct {
	UoW      *MockUnitOfWork
	GuildIDs []int64
}

// NewMockUnitOfWorkFactory creates a factory around one fake unit of work
func NewMockUnitOfWorkFactory() *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{UoW: NewMockUnitOfWork()}
}

func (f *MockUnitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	f.GuildIDs = append(f.GuildIDs, guildID)
	return f.UoW
}
