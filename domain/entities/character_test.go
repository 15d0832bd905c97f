package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForExperience(t *testing.T) {
	tests := []struct {
		name       string
		experience int64
		want       int
	}{
		{"zero experience is level 1", 0, 1},
		{"just below first threshold", 999, 1},
		{"exactly at first threshold", 1000, 2},
		{"just above first threshold", 1001, 2},
		{"mid range", 2500, 3},
		{"exact multiple", 10000, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelForExperience(tt.experience))
		})
	}
}

func TestCharacter_ApplyReward(t *testing.T) {
	c := &Character{Gold: 50, Experience: 950, Level: 1}

	c.ApplyReward(100)

	assert.Equal(t, int64(150), c.Gold)
	assert.Equal(t, int64(1050), c.Experience)
	assert.Equal(t, 2, c.Level)
}

func TestCharacter_ApplyReward_LevelNeverDecreases(t *testing.T) {
	c := &Character{Gold: 0, Experience: 0, Level: 1}

	prev := c.Level
	for i := 0; i < 50; i++ {
		c.ApplyReward(135)
		assert.GreaterOrEqual(t, c.Level, prev)
		assert.Equal(t, LevelForExperience(c.Experience), c.Level)
		prev = c.Level
	}
}

func TestCharacter_CanAffordAndSpend(t *testing.T) {
	c := &Character{Gold: 100}

	assert.True(t, c.CanAfford(100))
	assert.False(t, c.CanAfford(101))

	c.ApplySpend(100)
	assert.Zero(t, c.Gold)
	assert.False(t, c.CanAfford(1))
}

func TestCharacter_SpendDoesNotTouchExperience(t *testing.T) {
	c := &Character{Gold: 500, Experience: 1200, Level: 2}

	c.ApplySpend(300)

	assert.Equal(t, int64(200), c.Gold)
	assert.Equal(t, int64(1200), c.Experience)
	assert.Equal(t, 2, c.Level)
}

func TestValidJobClass(t *testing.T) {
	for _, j := range []JobClass{JobWarrior, JobMage, JobHealer, JobHunter, JobRogue, JobTank} {
		assert.True(t, ValidJobClass(j))
	}
	assert.False(t, ValidJobClass("paladin"))
	assert.False(t, ValidJobClass(""))
}
