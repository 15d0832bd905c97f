package repository

import (
	"context"
	"testing"

	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/interfaces"
	"guildledger/infrastructure"
	"guildledger/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopPublisherFactory() interfaces.TransactionalEventPublisher {
	return infrastructure.NewNoopEventPublisher()
}

func TestUnitOfWork_CommitPersists(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, noopPublisherFactory)

	uow := factory.CreateForGuild(0)
	require.NoError(t, uow.Begin(ctx))

	guild := testutil.CreateTestGuild("Iron Banner", "JJJJ11", "principal-leader")
	require.NoError(t, uow.GuildRepository().Create(ctx, guild))
	require.NoError(t, uow.MembershipRepository().Create(ctx, &entities.Membership{
		GuildID:     guild.ID,
		PrincipalID: "principal-leader",
		Role:        entities.RoleLeader,
	}))
	require.NoError(t, uow.Commit())
	require.NoError(t, uow.Rollback()) // safe after commit

	// Visible from a fresh unit of work.
	check := factory.CreateForGuild(0)
	require.NoError(t, check.Begin(ctx))
	defer check.Rollback()

	got, err := check.GuildRepository().GetByCode(ctx, "JJJJ11")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, guild.ID, got.ID)

	membership, err := check.MembershipRepository().GetByPrincipal(ctx, "principal-leader")
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.True(t, membership.IsLeader())
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, noopPublisherFactory)

	uow := factory.CreateForGuild(0)
	require.NoError(t, uow.Begin(ctx))

	guild := testutil.CreateTestGuild("Iron Banner", "KKKK22", "principal-leader")
	require.NoError(t, uow.GuildRepository().Create(ctx, guild))
	require.NoError(t, uow.Rollback())

	check := factory.CreateForGuild(0)
	require.NoError(t, check.Begin(ctx))
	defer check.Rollback()

	got, err := check.GuildRepository().GetByCode(ctx, "KKKK22")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnitOfWork_ConstraintErrorMapping(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, noopPublisherFactory)

	setup := factory.CreateForGuild(0)
	require.NoError(t, setup.Begin(ctx))
	guild := testutil.CreateTestGuild("Iron Banner", "LLLL33", "principal-leader")
	require.NoError(t, setup.GuildRepository().Create(ctx, guild))
	require.NoError(t, setup.MembershipRepository().Create(ctx, &entities.Membership{
		GuildID:     guild.ID,
		PrincipalID: "principal-member",
		Role:        entities.RoleMember,
	}))
	require.NoError(t, setup.Commit())

	// Same principal joining a second guild maps to ErrAlreadyMember.
	uow := factory.CreateForGuild(0)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	second := testutil.CreateTestGuild("Silver Hand", "MMMM44", "other-leader")
	require.NoError(t, uow.GuildRepository().Create(ctx, second))
	err := uow.MembershipRepository().Create(ctx, &entities.Membership{
		GuildID:     second.ID,
		PrincipalID: "principal-member",
		Role:        entities.RoleMember,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)

	// Reusing an invite code maps to ErrDuplicateInviteCode.
	dup := factory.CreateForGuild(0)
	require.NoError(t, dup.Begin(ctx))
	defer dup.Rollback()

	clash := testutil.CreateTestGuild("Copy Cats", "LLLL33", "copy-leader")
	err = dup.GuildRepository().Create(ctx, clash)
	assert.ErrorIs(t, err, domain.ErrDuplicateInviteCode)
}
