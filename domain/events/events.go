package events

import "github.com/ssorr707/discord-system-bot2/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeVerificationSettingsUpdated EventType = "verification_settings_updated"
	EventTypeWelcomeSettingsUpdated      EventType = "welcome_settings_updated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// VerificationSettingsUpdatedEvent carries the committed verification settings of a guild.
// Auto-kick enforcement lives outside this service and reads the policy from here.
type VerificationSettingsUpdatedEvent struct {
	GuildID  int64                          `json:"guild_id"`
	Settings *entities.VerificationSettings `json:"settings"`
}

func (e VerificationSettingsUpdatedEvent) Type() EventType {
	return EventTypeVerificationSettingsUpdated
}

// WelcomeSettingsUpdatedEvent carries the committed welcome settings of a guild
type WelcomeSettingsUpdatedEvent struct {
	GuildID  int64                     `json:"guild_id"`
	Settings *entities.WelcomeSettings `json:"settings"`
}

func (e WelcomeSettingsUpdatedEvent) Type() EventType {
	return EventTypeWelcomeSettingsUpdated
}
