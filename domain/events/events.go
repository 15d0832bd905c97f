// Package events defines the domain events published after a ledger
// transaction commits. No component holds authoritative balance state
// outside the store; observers receive these events and re-read.
package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGuildCreated     EventType = "guild_created"
	EventTypeMemberJoined     EventType = "member_joined"
	EventTypeMemberLeft       EventType = "member_left"
	EventTypeMissionCompleted EventType = "mission_completed"
	EventTypeGoldChanged      EventType = "gold_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GuildCreatedEvent represents a newly created guild
type GuildCreatedEvent struct {
	GuildID    int64
	Name       string
	InviteCode string
	LeaderID   string
}

func (e GuildCreatedEvent) Type() EventType {
	return EventTypeGuildCreated
}

// MemberJoinedEvent represents a principal joining a guild
type MemberJoinedEvent struct {
	GuildID     int64
	PrincipalID string
	MemberCount int
}

func (e MemberJoinedEvent) Type() EventType {
	return EventTypeMemberJoined
}

// MemberLeftEvent represents a principal leaving a guild
type MemberLeftEvent struct {
	GuildID     int64
	PrincipalID string
	MemberCount int
}

func (e MemberLeftEvent) Type() EventType {
	return EventTypeMemberLeft
}

// MissionCompletedEvent represents one committed reward event
type MissionCompletedEvent struct {
	GuildID       int64
	MissionID     int64
	MissionLogID  int64
	PerformerIDs  []int64
	TotalReward   int64
	BonusGold     int64
	IsChestFound  bool
	PerformedDate string
}

func (e MissionCompletedEvent) Type() EventType {
	return EventTypeMissionCompleted
}

// GoldChangedEvent represents a committed balance change for one character
type GoldChangedEvent struct {
	GuildID      int64
	CharacterID  int64
	GoldBefore   int64
	GoldAfter    int64
	ChangeAmount int64
	Reason       string
}

func (e GoldChangedEvent) Type() EventType {
	return EventTypeGoldChanged
}
