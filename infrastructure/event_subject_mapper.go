package infrastructure

import (
	"fmt"

	"guildledger/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeGuildCreated:
		return "guilds.created"
	case events.EventTypeMemberJoined:
		return "guilds.member_joined"
	case events.EventTypeMemberLeft:
		return "guilds.member_left"
	case events.EventTypeMissionCompleted:
		return "missions.completed"
	case events.EventTypeGoldChanged:
		return "characters.gold_changed"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"guilds.created",
		"guilds.member_joined",
		"guilds.member_left",
		"missions.completed",
		"characters.gold_changed",
	}
}
