package services

import (
	"context"
	"testing"
	"time"

	"guildledger/domain/entities"
	"guildledger/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_ListActivity_MergesAndGroupsByDay(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewActivityService(factory)
	uow := factory.UoW

	day2Morning := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	day2Noon := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	day1Evening := time.Date(2025, 3, 13, 20, 0, 0, 0, time.UTC)

	missionLogs := []*entities.MissionLog{
		{ID: 1, MissionTitle: "Clear the cellar", PerformerNames: []string{"Aldric"}, TotalReward: 100, CreatedAt: day2Morning},
		{ID: 2, MissionTitle: "Escort the caravan", PerformerNames: []string{"Mira", "Aldric"}, TotalReward: 240, CreatedAt: day1Evening},
	}
	usageLogs := []*entities.UsageLog{
		{ID: 3, CharacterName: "Mira", ItemName: "Healing Potion", Cost: 30, UsedAt: day2Noon},
	}

	uow.MissionLogRepo.On("GetRecent", mock.Anything, 50).Return(missionLogs, nil)
	uow.UsageLogRepo.On("GetRecent", mock.Anything, 50).Return(usageLogs, nil)

	days, err := svc.ListActivity(context.Background(), 42, 0)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2025-03-14", days[0].Date)
	require.Len(t, days[0].Entries, 2)
	assert.Equal(t, entities.ActivityExpense, days[0].Entries[0].Kind)
	assert.Equal(t, "Healing Potion", days[0].Entries[0].Title)
	assert.Equal(t, entities.ActivityIncome, days[0].Entries[1].Kind)
	assert.Equal(t, "Clear the cellar", days[0].Entries[1].Title)

	assert.Equal(t, "2025-03-13", days[1].Date)
	require.Len(t, days[1].Entries, 1)
	assert.Equal(t, int64(240), days[1].Entries[0].Amount)
	assert.Equal(t, []string{"Mira", "Aldric"}, days[1].Entries[0].Names)
}

func TestActivityService_ListActivity_Empty(t *testing.T) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	svc := NewActivityService(factory)

	factory.UoW.MissionLogRepo.On("GetRecent", mock.Anything, 10).Return([]*entities.MissionLog{}, nil)
	factory.UoW.UsageLogRepo.On("GetRecent", mock.Anything, 10).Return([]*entities.UsageLog{}, nil)

	days, err := svc.ListActivity(context.Background(), 42, 10)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestGroupByDay_UTCBoundary(t *testing.T) {
	// Two timestamps forty minutes apart that straddle a UTC midnight land
	// in different buckets.
	beforeMidnight := time.Date(2025, 3, 13, 23, 40, 0, 0, time.UTC)
	afterMidnight := time.Date(2025, 3, 14, 0, 20, 0, 0, time.UTC)

	entries := []entities.ActivityEntry{
		{ID: 2, Kind: entities.ActivityIncome, Timestamp: afterMidnight},
		{ID: 1, Kind: entities.ActivityExpense, Timestamp: beforeMidnight},
	}

	days := groupByDay(entries)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-03-14", days[0].Date)
	assert.Equal(t, "2025-03-13", days[1].Date)
}

func TestMergeEntries_SortsDescending(t *testing.T) {
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	missionLogs := []*entities.MissionLog{
		{ID: 1, CreatedAt: base.Add(-2 * time.Hour)},
		{ID: 2, CreatedAt: base},
	}
	usageLogs := []*entities.UsageLog{
		{ID: 3, UsedAt: base.Add(-1 * time.Hour)},
	}

	entries := mergeEntries(missionLogs, usageLogs)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(2), entries[0].ID)
	assert.Equal(t, int64(3), entries[1].ID)
	assert.Equal(t, int64(1), entries[2].ID)
}
