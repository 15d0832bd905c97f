package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissionLog_Validate(t *testing.T) {
	valid := MissionLog{
		MissionID:             7,
		PerformerCharacterIDs: []int64{1, 2},
		PerformerNames:        []string{"Aldric", "Mira"},
		TotalReward:           200,
		PerformedDate:         "2025-03-14",
	}

	tests := []struct {
		name    string
		mutate  func(*MissionLog)
		wantErr bool
	}{
		{"valid entry", func(ml *MissionLog) {}, false},
		{"no performers", func(ml *MissionLog) {
			ml.PerformerCharacterIDs = nil
			ml.PerformerNames = nil
		}, true},
		{"ids and names out of sync", func(ml *MissionLog) {
			ml.PerformerNames = []string{"Aldric"}
		}, true},
		{"bonus without chest", func(ml *MissionLog) {
			ml.BonusGold = 10
			ml.IsChestFound = false
		}, true},
		{"chest with zero bonus", func(ml *MissionLog) {
			ml.BonusGold = 0
			ml.IsChestFound = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ml := valid
			tt.mutate(&ml)
			err := ml.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMissionLog_RewardPerPerformer(t *testing.T) {
	ml := MissionLog{
		PerformerCharacterIDs: []int64{1, 2, 3},
		TotalReward:           300,
	}
	assert.Equal(t, int64(100), ml.RewardPerPerformer())

	empty := MissionLog{}
	assert.Zero(t, empty.RewardPerPerformer())
}
