package entities

import "time"

// JobClass is a character's job classification
type JobClass string

const (
	JobWarrior JobClass = "warrior"
	JobMage    JobClass = "mage"
	JobHealer  JobClass = "healer"
	JobHunter  JobClass = "hunter"
	JobRogue   JobClass = "rogue"
	JobTank    JobClass = "tank"
)

// ExperiencePerLevel is the experience span of one level.
const ExperiencePerLevel = 1000

// ValidJobClass reports whether j is one of the fixed job tags.
func ValidJobClass(j JobClass) bool {
	switch j {
	case JobWarrior, JobMage, JobHealer, JobHunter, JobRogue, JobTank:
		return true
	}
	return false
}

// LevelForExperience derives a level from accumulated experience.
// Level 1 covers [0, 1000), level 2 covers [1000, 2000), and so on.
func LevelForExperience(experience int64) int {
	return int(experience/ExperiencePerLevel) + 1
}

// Character is an in-guild persona owned by a creator principal. It is the
// unit that holds gold, experience, and the level derived from experience.
// Balances are mutated only by ledger transactions.
type Character struct {
	ID          int64     `db:"id"`
	GuildID     int64     `db:"guild_id"`
	Name        string    `db:"name"`
	JobClass    JobClass  `db:"job_class"`
	Description string    `db:"description"`
	Gold        int64     `db:"gold"`
	Experience  int64     `db:"experience"`
	Level       int       `db:"level"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

// CanAfford reports whether the character's gold covers cost.
func (c *Character) CanAfford(cost int64) bool {
	return c.Gold >= cost
}

// ApplyReward credits gold and experience and re-derives the level.
// Experience only ever grows, so the level is monotonically non-decreasing.
func (c *Character) ApplyReward(amount int64) {
	c.Gold += amount
	c.Experience += amount
	c.Level = LevelForExperience(c.Experience)
}

// ApplySpend debits gold. Callers must have checked CanAfford; the store's
// gold >= 0 constraint backs this up.
func (c *Character) ApplySpend(cost int64) {
	c.Gold -= cost
}
