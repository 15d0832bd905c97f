package services

import (
	"context"
	"testing"

	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/events"
	"guildledger/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGuildService() (*GuildService, *testhelpers.MockUnitOfWorkFactory) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	return NewGuildService(factory), factory
}

func TestGuildService_CreateGuild_Success(t *testing.T) {
	svc, factory := newTestGuildService()
	uow := factory.UoW

	uow.GuildRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Guild")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Guild).ID = 42
	}).Return(nil)
	uow.MembershipRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Membership")).Return(nil)

	guild, err := svc.CreateGuild(context.Background(), "  Iron Banner  ", "principal-leader")
	require.NoError(t, err)
	require.NotNil(t, guild)

	assert.Equal(t, int64(42), guild.ID)
	assert.Equal(t, "Iron Banner", guild.Name)
	assert.Equal(t, "principal-leader", guild.LeaderID)
	assert.Equal(t, 1, guild.MemberCount)
	assert.Len(t, guild.Code, inviteCodeLength)

	// The leader membership is written in the same transaction.
	membershipCall := uow.MembershipRepo.Calls[0]
	membership := membershipCall.Arguments.Get(1).(*entities.Membership)
	assert.Equal(t, int64(42), membership.GuildID)
	assert.Equal(t, entities.RoleLeader, membership.Role)

	assert.Equal(t, 1, uow.Commits)
	assert.Len(t, uow.Publisher.EventsOfType(events.EventTypeGuildCreated), 1)
}

func TestGuildService_CreateGuild_RegeneratesCodeOnCollision(t *testing.T) {
	svc, factory := newTestGuildService()
	uow := factory.UoW

	uow.GuildRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateInviteCode).Once()
	uow.GuildRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Guild).ID = 7
	}).Return(nil).Once()
	uow.MembershipRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	guild, err := svc.CreateGuild(context.Background(), "Iron Banner", "principal-leader")
	require.NoError(t, err)
	require.NotNil(t, guild)

	uow.GuildRepo.AssertNumberOfCalls(t, "Create", 2)

	first := uow.GuildRepo.Calls[0].Arguments.Get(1).(*entities.Guild).Code
	second := uow.GuildRepo.Calls[1].Arguments.Get(1).(*entities.Guild).Code
	assert.NotEqual(t, first, second)
}

func TestGuildService_CreateGuild_CollisionRetriesExhausted(t *testing.T) {
	svc, factory := newTestGuildService()
	factory.UoW.GuildRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateInviteCode)

	guild, err := svc.CreateGuild(context.Background(), "Iron Banner", "principal-leader")
	assert.ErrorIs(t, err, domain.ErrDuplicateInviteCode)
	assert.Nil(t, guild)
	factory.UoW.GuildRepo.AssertNumberOfCalls(t, "Create", maxInviteCodeAttempts)
}

func TestGuildService_CreateGuild_Validation(t *testing.T) {
	svc, _ := newTestGuildService()
	ctx := context.Background()

	_, err := svc.CreateGuild(ctx, "   ", "principal-leader")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateGuild(ctx, "Iron Banner", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGuildService_JoinGuild_Success(t *testing.T) {
	svc, factory := newTestGuildService()
	uow := factory.UoW

	guild := &entities.Guild{ID: 42, Name: "Iron Banner", Code: "ABC234", MemberCount: 1}
	uow.GuildRepo.On("GetByCode", mock.Anything, "ABC234").Return(guild, nil)
	uow.MembershipRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Membership")).Return(nil)
	uow.GuildRepo.On("AdjustMemberCount", mock.Anything, int64(42), 1).Return(2, nil)

	joined, err := svc.JoinGuild(context.Background(), " abc234 ", "principal-member")
	require.NoError(t, err)
	require.NotNil(t, joined)

	assert.Equal(t, 2, joined.MemberCount)
	assert.Equal(t, 1, uow.Commits)

	joinedEvents := uow.Publisher.EventsOfType(events.EventTypeMemberJoined)
	require.Len(t, joinedEvents, 1)
	assert.Equal(t, 2, joinedEvents[0].(events.MemberJoinedEvent).MemberCount)
}

func TestGuildService_JoinGuild_UnknownCode(t *testing.T) {
	svc, factory := newTestGuildService()
	factory.UoW.GuildRepo.On("GetByCode", mock.Anything, "ZZZZZZ").Return(nil, nil)

	guild, err := svc.JoinGuild(context.Background(), "zzzzzz", "principal-member")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, guild)
	assert.Equal(t, 0, factory.UoW.Commits)
}

func TestGuildService_JoinGuild_AlreadyMember(t *testing.T) {
	svc, factory := newTestGuildService()
	uow := factory.UoW

	guild := &entities.Guild{ID: 42, Code: "ABC234", MemberCount: 1}
	uow.GuildRepo.On("GetByCode", mock.Anything, "ABC234").Return(guild, nil)
	uow.MembershipRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyMember)

	joined, err := svc.JoinGuild(context.Background(), "ABC234", "principal-member")
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)
	assert.Nil(t, joined)

	// The membership insert failed, so the count was never touched.
	uow.GuildRepo.AssertNotCalled(t, "AdjustMemberCount", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, uow.Commits)
}

func TestGuildService_LeaveGuild_Success(t *testing.T) {
	svc, factory := newTestGuildService()
	uow := factory.UoW

	membership := &entities.Membership{GuildID: 42, PrincipalID: "principal-member", Role: entities.RoleMember}
	uow.MembershipRepo.On("GetByPrincipal", mock.Anything, "principal-member").Return(membership, nil)
	uow.MembershipRepo.On("Delete", mock.Anything, "principal-member").Return(nil)
	uow.GuildRepo.On("AdjustMemberCount", mock.Anything, int64(42), -1).Return(1, nil)

	err := svc.LeaveGuild(context.Background(), "principal-member")
	require.NoError(t, err)

	assert.Equal(t, 1, uow.Commits)
	assert.Len(t, uow.Publisher.EventsOfType(events.EventTypeMemberLeft), 1)
}

func TestGuildService_LeaveGuild_LeaderCannotLeave(t *testing.T) {
	svc, factory := newTestGuildService()
	uow := factory.UoW

	membership := &entities.Membership{GuildID: 42, PrincipalID: "principal-leader", Role: entities.RoleLeader}
	uow.MembershipRepo.On("GetByPrincipal", mock.Anything, "principal-leader").Return(membership, nil)

	err := svc.LeaveGuild(context.Background(), "principal-leader")
	assert.ErrorIs(t, err, domain.ErrValidation)

	uow.MembershipRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.Equal(t, 0, uow.Commits)
}

func TestGuildService_LeaveGuild_NotAMember(t *testing.T) {
	svc, factory := newTestGuildService()
	factory.UoW.MembershipRepo.On("GetByPrincipal", mock.Anything, "principal-stranger").Return(nil, nil)

	err := svc.LeaveGuild(context.Background(), "principal-stranger")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGuildService_GetMembership_NoneIsNil(t *testing.T) {
	svc, factory := newTestGuildService()
	factory.UoW.MembershipRepo.On("GetByPrincipal", mock.Anything, "principal-stranger").Return(nil, nil)

	membership, err := svc.GetMembership(context.Background(), "principal-stranger")
	require.NoError(t, err)
	assert.Nil(t, membership)
}
