package entities

import "time"

// MissionType is the participation mode of a mission
type MissionType string

const (
	MissionSolo  MissionType = "solo"
	MissionParty MissionType = "party"
)

// MissionStatus is the lifecycle status of a mission
type MissionStatus string

const (
	MissionActive   MissionStatus = "active"
	MissionInactive MissionStatus = "inactive"
)

// Mission is a reward-granting task defined per guild. Missions are
// soft-deleted (status flip to inactive) so historical log entries keep a
// valid join target; completions are rate-limited to one per calendar day.
type Mission struct {
	ID              int64         `db:"id"`
	GuildID         int64         `db:"guild_id"`
	Title           string        `db:"title"`
	Description     string        `db:"description"`
	Cost            int64         `db:"cost"`
	Type            MissionType   `db:"mission_type"`
	MinParticipants int           `db:"min_participants"`
	MaxParticipants int           `db:"max_participants"`
	CreatorID       string        `db:"creator_id"`
	Status          MissionStatus `db:"status"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       *time.Time    `db:"updated_at"`
	DeletedAt       *time.Time    `db:"deleted_at"`
}

// IsActive reports whether the mission is a completion candidate.
func (m *Mission) IsActive() bool {
	return m.Status == MissionActive
}
