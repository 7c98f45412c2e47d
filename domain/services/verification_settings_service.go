package services

import (
	"context"
	"fmt"

	"github.com/ssorr707/discord-system-bot2/domain/entities"
	"github.com/ssorr707/discord-system-bot2/domain/events"
	"github.com/ssorr707/discord-system-bot2/domain/interfaces"
	"github.com/ssorr707/discord-system-bot2/domain/validation"

	log "github.com/sirupsen/logrus"
)

// verificationSettingsService implements the VerificationSettingsService interface
type verificationSettingsService struct {
	repo           interfaces.VerificationSettingsRepository
	eventPublisher interfaces.EventPublisher
}

// NewVerificationSettingsService creates a new verification settings service
func NewVerificationSettingsService(repo interfaces.VerificationSettingsRepository, eventPublisher interfaces.EventPublisher) interfaces.VerificationSettingsService {
	return &verificationSettingsService{
		repo:           repo,
		eventPublisher: eventPublisher,
	}
}

// GetSettings retrieves verification settings, creating default ones if not found
func (s *verificationSettingsService) GetSettings(ctx context.Context, guildID int64) (*entities.VerificationSettings, error) {
	settings, err := s.repo.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings validates the supplied fields and merges them into the stored record
func (s *verificationSettingsService) UpdateSettings(ctx context.Context, guildID int64, update entities.VerificationSettingsUpdate) (*entities.VerificationSettings, error) {
	if update.Method != nil {
		if err := validation.ValidateVerificationMethod(*update.Method); err != nil {
			return nil, err
		}
	}
	if update.AutoKickTimeoutMs != nil {
		if err := validateTimeoutMillis(*update.AutoKickTimeoutMs); err != nil {
			return nil, err
		}
	}

	settings, err := s.repo.Update(ctx, guildID, func(current *entities.VerificationSettings) error {
		update.ApplyTo(current)
		return validation.ValidateVerificationEnable(current)
	})
	if err != nil {
		if _, ok := entities.AsSettingsError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update verification settings: %w", err)
	}

	s.publish(events.VerificationSettingsUpdatedEvent{GuildID: guildID, Settings: settings.Clone()})
	return settings, nil
}

// SetEnabled enables or disables verification, keeping the rest of the configuration
func (s *verificationSettingsService) SetEnabled(ctx context.Context, guildID int64, enabled bool) (*entities.VerificationSettings, error) {
	return s.UpdateSettings(ctx, guildID, entities.VerificationSettingsUpdate{Enabled: &enabled})
}

// SetVerificationMessage stores the ID of the verification prompt message
func (s *verificationSettingsService) SetVerificationMessage(ctx context.Context, guildID int64, messageID int64) (*entities.VerificationSettings, error) {
	return s.UpdateSettings(ctx, guildID, entities.VerificationSettingsUpdate{VerificationMessageID: entities.SetID(messageID)})
}

func (s *verificationSettingsService) publish(event events.Event) {
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to publish settings event")
	}
}

// validateTimeoutMillis accepts only whole minutes within the auto-kick bounds
func validateTimeoutMillis(ms int64) error {
	perMinute := entities.MinutesToMillis(1)
	if ms%perMinute != 0 {
		return entities.NewValidationError("Invalid Timeout", "The auto-kick timeout must be a whole number of minutes.")
	}
	return validation.ValidateTimeoutMinutes(ms / perMinute)
}
