package testhelpers

import (
	"context"
	"time"

	"guildledger/domain/entities"
	"guildledger/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockGuildRepository is a mock implementation of GuildRepository
type MockGuildRepository struct {
	mock.Mock
}

func (m *MockGuildRepository) Create(ctx context.Context, guild *entities.Guild) error {
	args := m.Called(ctx, guild)
	return args.Error(0)
}

func (m *MockGuildRepository) GetByID(ctx context.Context, id int64) (*entities.Guild, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Guild), args.Error(1)
}

func (m *MockGuildRepository) GetByCode(ctx context.Context, code string) (*entities.Guild, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Guild), args.Error(1)
}

func (m *MockGuildRepository) AdjustMemberCount(ctx context.Context, guildID int64, delta int) (int, error) {
	args := m.Called(ctx, guildID, delta)
	return args.Int(0), args.Error(1)
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *entities.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) GetByPrincipal(ctx context.Context, principalID string) (*entities.Membership, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Membership), args.Error(1)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, principalID string) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}

// MockCharacterRepository is a mock implementation of CharacterRepository
type MockCharacterRepository struct {
	mock.Mock
}

func (m *MockCharacterRepository) Create(ctx context.Context, character *entities.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) GetByID(ctx context.Context, id int64) (*entities.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Character), args.Error(1)
}

func (m *MockCharacterRepository) GetForUpdate(ctx context.Context, ids []int64) ([]*entities.Character, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Character), args.Error(1)
}

func (m *MockCharacterRepository) List(ctx context.Context) ([]*entities.Character, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Character), args.Error(1)
}

func (m *MockCharacterRepository) Update(ctx context.Context, character *entities.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) UpdateProgress(ctx context.Context, id int64, gold, experience int64, level int) error {
	args := m.Called(ctx, id, gold, experience, level)
	return args.Error(0)
}

func (m *MockCharacterRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMissionRepository is a mock implementation of MissionRepository
type MockMissionRepository struct {
	mock.Mock
}

func (m *MockMissionRepository) Create(ctx context.Context, mission *entities.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepository) GetByID(ctx context.Context, id int64) (*entities.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetForUpdate(ctx context.Context, id int64) (*entities.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Mission), args.Error(1)
}

func (m *MockMissionRepository) List(ctx context.Context, activeOnly bool) ([]*entities.Mission, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Mission), args.Error(1)
}

func (m *MockMissionRepository) Update(ctx context.Context, mission *entities.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepository) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	args := m.Called(ctx, id, deletedAt)
	return args.Error(0)
}

// MockMissionLogRepository is a mock implementation of MissionLogRepository
type MockMissionLogRepository struct {
	mock.Mock
}

func (m *MockMissionLogRepository) Create(ctx context.Context, entry *entities.MissionLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockMissionLogRepository) GetByMissionAndDate(ctx context.Context, missionID int64, day string) (*entities.MissionLog, error) {
	args := m.Called(ctx, missionID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MissionLog), args.Error(1)
}

func (m *MockMissionLogRepository) GetRecent(ctx context.Context, limit int) ([]*entities.MissionLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MissionLog), args.Error(1)
}

// MockUsageLogRepository is a mock implementation of UsageLogRepository
type MockUsageLogRepository struct {
	mock.Mock
}

func (m *MockUsageLogRepository) Create(ctx context.Context, entry *entities.UsageLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockUsageLogRepository) GetRecent(ctx context.Context, limit int) ([]*entities.UsageLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UsageLog), args.Error(1)
}

// MockShopItemRepository is a mock implementation of ShopItemRepository
type MockShopItemRepository struct {
	mock.Mock
}

func (m *MockShopItemRepository) Create(ctx context.Context, item *entities.ShopItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShopItemRepository) GetByID(ctx context.Context, id int64) (*entities.ShopItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ShopItem), args.Error(1)
}

func (m *MockShopItemRepository) ListByCost(ctx context.Context) ([]*entities.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ShopItem), args.Error(1)
}

func (m *MockShopItemRepository) Update(ctx context.Context, item *entities.ShopItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShopItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// RecordingEventPublisher captures published events in order without any
// expectation setup. Useful when a test only cares about what was emitted.
type RecordingEventPublisher struct {
	Events []events.Event
}

func (p *RecordingEventPublisher) Publish(event events.Event) error {
	p.Events = append(p.Events, event)
	return nil
}

// EventsOfType returns the captured events matching the given type
func (p *RecordingEventPublisher) EventsOfType(eventType events.EventType) []events.Event {
	var matched []events.Event
	for _, e := range p.Events {
		if e.Type() == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}
