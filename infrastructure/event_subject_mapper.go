package infrastructure

import (
	"fmt"

	"github.com/ssorr707/discord-system-bot2/domain/events"
)

const (
	SubjectVerificationSettingsUpdated = "settings.verification.updated"
	SubjectWelcomeSettingsUpdated      = "settings.welcome.updated"
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
	case events.EventTypeVerificationSettingsUpdated:
		return SubjectVerificationSettingsUpdated
	case events.EventTypeWelcomeSettingsUpdated:
		return SubjectWelcomeSettingsUpdated
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case SubjectVerificationSettingsUpdated:
		return events.EventTypeVerificationSettingsUpdated
	case SubjectWelcomeSettingsUpdated:
		return events.EventTypeWelcomeSettingsUpdated
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		SubjectVerificationSettingsUpdated,
		SubjectWelcomeSettingsUpdated,
	}
}
