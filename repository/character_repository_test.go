package repository

import (
	"context"
	"testing"

	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	guildRepo := NewGuildRepository(testDB.DB.Pool)
	guild := testutil.CreateTestGuild("Iron Banner", "DDDD44", "principal-leader")
	require.NoError(t, guildRepo.Create(ctx, guild))

	repo := NewCharacterRepositoryScoped(testDB.DB.Pool, guild.ID)

	character := testutil.CreateTestCharacter("Aldric", entities.JobWarrior, "principal-owner")
	require.NoError(t, repo.Create(ctx, character))
	assert.NotZero(t, character.ID)
	assert.Equal(t, guild.ID, character.GuildID)
	assert.False(t, character.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, character.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Aldric", got.Name)
	assert.Equal(t, entities.JobWarrior, got.JobClass)
	assert.Zero(t, got.Gold)
	assert.Equal(t, 1, got.Level)

	// Absent id reads as nil, not an error.
	missing, err := repo.GetByID(ctx, character.ID+999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCharacterRepository_UpdateProgress(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	guildRepo := NewGuildRepository(testDB.DB.Pool)
	guild := testutil.CreateTestGuild("Iron Banner", "EEEE55", "principal-leader")
	require.NoError(t, guildRepo.Create(ctx, guild))

	repo := NewCharacterRepositoryScoped(testDB.DB.Pool, guild.ID)
	character := testutil.CreateTestCharacter("Aldric", entities.JobWarrior, "principal-owner")
	require.NoError(t, repo.Create(ctx, character))

	require.NoError(t, repo.UpdateProgress(ctx, character.ID, 170, 1070, 2))

	got, err := repo.GetByID(ctx, character.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(170), got.Gold)
	assert.Equal(t, int64(1070), got.Experience)
	assert.Equal(t, 2, got.Level)

	// The gold >= 0 check backs up the service-level balance guard.
	err = repo.UpdateProgress(ctx, character.ID, -1, 1070, 2)
	assert.Error(t, err)

	err = repo.UpdateProgress(ctx, character.ID+999, 10, 10, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCharacterRepository_GetForUpdate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	guildRepo := NewGuildRepository(testDB.DB.Pool)
	guild := testutil.CreateTestGuild("Iron Banner", "FFFF66", "principal-leader")
	require.NoError(t, guildRepo.Create(ctx, guild))

	repo := NewCharacterRepositoryScoped(testDB.DB.Pool, guild.ID)

	var ids []int64
	for _, name := range []string{"Aldric", "Mira", "Took"} {
		c := testutil.CreateTestCharacter(name, entities.JobRogue, "principal-owner")
		require.NoError(t, repo.Create(ctx, c))
		ids = append(ids, c.ID)
	}

	// Results come back in input order regardless of lock order.
	reversed := []int64{ids[2], ids[0]}
	characters, err := repo.GetForUpdate(ctx, reversed)
	require.NoError(t, err)
	require.Len(t, characters, 2)
	assert.Equal(t, "Took", characters[0].Name)
	assert.Equal(t, "Aldric", characters[1].Name)

	// One unresolvable id fails the whole read.
	_, err = repo.GetForUpdate(ctx, []int64{ids[0], ids[2] + 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCharacterRepository_GuildScoping(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	guildRepo := NewGuildRepository(testDB.DB.Pool)
	guildA := testutil.CreateTestGuild("Iron Banner", "GGGG77", "leader-a")
	guildB := testutil.CreateTestGuild("Silver Hand", "HHHH88", "leader-b")
	require.NoError(t, guildRepo.Create(ctx, guildA))
	require.NoError(t, guildRepo.Create(ctx, guildB))

	repoA := NewCharacterRepositoryScoped(testDB.DB.Pool, guildA.ID)
	repoB := NewCharacterRepositoryScoped(testDB.DB.Pool, guildB.ID)

	character := testutil.CreateTestCharacter("Aldric", entities.JobWarrior, "principal-owner")
	require.NoError(t, repoA.Create(ctx, character))

	// Another guild's scope cannot see or touch the character.
	got, err := repoB.GetByID(ctx, character.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, repoB.Delete(ctx, character.ID), domain.ErrNotFound)

	listA, err := repoA.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listA, 1)

	listB, err := repoB.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listB)
}
