package interfaces

import (
	"context"

	"github.com/ssorr707/discord-system-bot2/domain/entities"
	"github.com/ssorr707/discord-system-bot2/domain/events"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// VerificationSettingsService defines the interface for verification settings operations
type VerificationSettingsService interface {
	// GetSettings returns the guild's settings, defaults when never configured
	GetSettings(ctx context.Context, guildID int64) (*entities.VerificationSettings, error)

	// UpdateSettings merges update into the stored record
	UpdateSettings(ctx context.Context, guildID int64, update entities.VerificationSettingsUpdate) (*entities.VerificationSettings, error)

	// SetEnabled toggles the feature; enabling requires a verification channel
	SetEnabled(ctx context.Context, guildID int64, enabled bool) (*entities.VerificationSettings, error)

	// SetVerificationMessage records the ID of the posted verification prompt
	SetVerificationMessage(ctx context.Context, guildID int64, messageID int64) (*entities.VerificationSettings, error)
}

// WelcomeSettingsService defines the interface for welcome settings operations
type WelcomeSettingsService interface {
	// GetSettings returns the guild's settings, defaults when never configured
	GetSettings(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error)

	// UpdateSettings merges update into the stored record
	UpdateSettings(ctx context.Context, guildID int64, update entities.WelcomeSettingsUpdate) (*entities.WelcomeSettings, error)

	// SetEnabled toggles the feature; enabling requires a welcome channel
	SetEnabled(ctx context.Context, guildID int64, enabled bool) (*entities.WelcomeSettings, error)

	// AddRole adds an auto-assigned role; fails if already present
	AddRole(ctx context.Context, guildID int64, roleID int64) (*entities.WelcomeSettings, error)

	// RemoveRole removes an auto-assigned role; fails if absent
	RemoveRole(ctx context.Context, guildID int64, roleID int64) (*entities.WelcomeSettings, error)

	// ClearRoles removes every auto-assigned role
	ClearRoles(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error)
}
