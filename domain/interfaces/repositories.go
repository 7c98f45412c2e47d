package interfaces

import (
	"context"

	"github.com/ssorr707/discord-system-bot2/domain/entities"
)

// VerificationSettingsRepository defines the interface for verification settings persistence
type VerificationSettingsRepository interface {
	// GetOrCreate returns the stored settings merged over defaults, creating the record if absent
	GetOrCreate(ctx context.Context, guildID int64) (*entities.VerificationSettings, error)

	// Update runs mutate against the current record and persists the result atomically for the guild.
	// If mutate returns an error nothing is written and that error is returned.
	Update(ctx context.Context, guildID int64, mutate func(*entities.VerificationSettings) error) (*entities.VerificationSettings, error)
}

// WelcomeSettingsRepository defines the interface for welcome settings persistence
type WelcomeSettingsRepository interface {
	// GetOrCreate returns the stored settings merged over defaults, creating the record if absent
	GetOrCreate(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error)

	// Update runs mutate against the current record and persists the result atomically for the guild.
	// If mutate returns an error nothing is written and that error is returned.
	Update(ctx context.Context, guildID int64, mutate func(*entities.WelcomeSettings) error) (*entities.WelcomeSettings, error)
}

// SettingsStore is a persistence medium that serves both feature schemas
type SettingsStore interface {
	VerificationSettings() VerificationSettingsRepository
	WelcomeSettings() WelcomeSettingsRepository
	Close() error
}
