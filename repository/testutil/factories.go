package testutil

import (
	"guildledger/domain/entities"
)

// CreateTestGuild creates a guild record with default values
func CreateTestGuild(name, code, leaderID string) *entities.Guild {
	return &entities.Guild{
		Name:        name,
		Code:        code,
		LeaderID:    leaderID,
		MemberCount: 1,
	}
}

// CreateTestCharacter creates a fresh character at level 1
func CreateTestCharacter(name string, jobClass entities.JobClass, createdBy string) *entities.Character {
	return &entities.Character{
		Name:       name,
		JobClass:   jobClass,
		Gold:       0,
		Experience: 0,
		Level:      1,
		CreatedBy:  createdBy,
	}
}

// CreateTestMission creates an active mission with sensible defaults
func CreateTestMission(title string, cost int64, creatorID string) *entities.Mission {
	return &entities.Mission{
		Title:           title,
		Cost:            cost,
		Type:            entities.MissionParty,
		MinParticipants: 1,
		MaxParticipants: 4,
		CreatorID:       creatorID,
		Status:          entities.MissionActive,
	}
}

// CreateTestMissionLog creates a consistent mission log entry for the given
// mission and day
func CreateTestMissionLog(mission *entities.Mission, day string, characterIDs []int64, names []string) *entities.MissionLog {
	perCharacter := mission.Cost
	return &entities.MissionLog{
		MissionID:             mission.ID,
		MissionTitle:          mission.Title,
		PerformerCharacterIDs: characterIDs,
		PerformerNames:        names,
		ApproverUserID:        "test-approver",
		TotalReward:           perCharacter * int64(len(characterIDs)),
		BonusGold:             0,
		IsChestFound:          false,
		PerformedDate:         day,
	}
}

// CreateTestShopItem creates a shop item with default values
func CreateTestShopItem(name string, cost int64) *entities.ShopItem {
	return &entities.ShopItem{
		Name: name,
		Cost: cost,
	}
}
