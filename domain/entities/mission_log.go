package entities

import (
	"errors"
	"time"
)

// DayFormat is the calendar-day key format used for performed dates and
// activity grouping. Always computed in UTC.
const DayFormat = "2006-01-02"

// MissionLog is the income side of the ledger: one immutable record per
// reward event. At most one entry exists per (mission, calendar day).
// Title and performer names are snapshots so the entry stays a valid
// historical record after mission or character changes.
type MissionLog struct {
	ID                    int64     `db:"id"`
	GuildID               int64     `db:"guild_id"`
	MissionID             int64     `db:"mission_id"`
	MissionTitle          string    `db:"mission_title"`
	PerformerCharacterIDs []int64   `db:"performer_character_ids"`
	PerformerNames        []string  `db:"performer_names"`
	ApproverUserID        string    `db:"approver_user_id"`
	TotalReward           int64     `db:"total_reward"`
	BonusGold             int64     `db:"bonus_gold"`
	IsChestFound          bool      `db:"is_chest_found"`
	PerformedDate         string    `db:"performed_date"`
	CreatedAt             time.Time `db:"created_at"`
}

// CompletionResult is the bonus outcome returned to the caller of a mission
// completion, for presentation only.
type CompletionResult struct {
	ChestFound  bool
	BonusGold   int64
	TotalReward int64
}

// RewardPerPerformer returns the amount credited to each participant.
func (ml *MissionLog) RewardPerPerformer() int64 {
	n := int64(len(ml.PerformerCharacterIDs))
	if n == 0 {
		return 0
	}
	return ml.TotalReward / n
}

// Validate checks the internal consistency of the entry before it is written.
func (ml *MissionLog) Validate() error {
	if len(ml.PerformerCharacterIDs) == 0 {
		return errors.New("mission log requires at least one performer")
	}
	if len(ml.PerformerCharacterIDs) != len(ml.PerformerNames) {
		return errors.New("performer ids and names out of sync")
	}
	if ml.BonusGold != 0 && !ml.IsChestFound {
		return errors.New("bonus gold without a chest")
	}
	return nil
}
