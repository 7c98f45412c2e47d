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

// welcomeSettingsService implements the WelcomeSettingsService interface
type welcomeSettingsService struct {
	repo           interfaces.WelcomeSettingsRepository
	eventPublisher interfaces.EventPublisher
}

// NewWelcomeSettingsService creates a new welcome settings service
func NewWelcomeSettingsService(repo interfaces.WelcomeSettingsRepository, eventPublisher interfaces.EventPublisher) interfaces.WelcomeSettingsService {
	return &welcomeSettingsService{
		repo:           repo,
		eventPublisher: eventPublisher,
	}
}

// GetSettings retrieves welcome settings, creating default ones if not found
func (s *welcomeSettingsService) GetSettings(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error) {
	settings, err := s.repo.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get welcome settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings validates the supplied fields and merges them into the stored record
func (s *welcomeSettingsService) UpdateSettings(ctx context.Context, guildID int64, update entities.WelcomeSettingsUpdate) (*entities.WelcomeSettings, error) {
	if update.Color != nil {
		if err := validation.ValidateHexColor(*update.Color); err != nil {
			return nil, err
		}
	}

	return s.mutate(ctx, guildID, func(current *entities.WelcomeSettings) error {
		update.ApplyTo(current)
		return validation.ValidateWelcomeEnable(current)
	})
}

// SetEnabled enables or disables the welcome flow, keeping the rest of the configuration
func (s *welcomeSettingsService) SetEnabled(ctx context.Context, guildID int64, enabled bool) (*entities.WelcomeSettings, error) {
	return s.UpdateSettings(ctx, guildID, entities.WelcomeSettingsUpdate{Enabled: &enabled})
}

// AddRole adds roleID to the auto-assigned roles
func (s *welcomeSettingsService) AddRole(ctx context.Context, guildID int64, roleID int64) (*entities.WelcomeSettings, error) {
	return s.mutate(ctx, guildID, func(current *entities.WelcomeSettings) error {
		if !current.AddRole(roleID) {
			return entities.NewValidationError("Role Already Added", "This role is already being automatically assigned to new members.")
		}
		return nil
	})
}

// RemoveRole removes roleID from the auto-assigned roles
func (s *welcomeSettingsService) RemoveRole(ctx context.Context, guildID int64, roleID int64) (*entities.WelcomeSettings, error) {
	return s.mutate(ctx, guildID, func(current *entities.WelcomeSettings) error {
		if !current.RemoveRole(roleID) {
			return entities.NewValidationError("Role Not Found", "This role is not being automatically assigned to new members.")
		}
		return nil
	})
}

// ClearRoles removes all auto-assigned roles
func (s *welcomeSettingsService) ClearRoles(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error) {
	empty := []int64{}
	return s.UpdateSettings(ctx, guildID, entities.WelcomeSettingsUpdate{RoleIDs: &empty})
}

func (s *welcomeSettingsService) mutate(ctx context.Context, guildID int64, fn func(*entities.WelcomeSettings) error) (*entities.WelcomeSettings, error) {
	settings, err := s.repo.Update(ctx, guildID, fn)
	if err != nil {
		if _, ok := entities.AsSettingsError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update welcome settings: %w", err)
	}

	event := events.WelcomeSettingsUpdatedEvent{GuildID: guildID, Settings: settings.Clone()}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to publish settings event")
	}
	return settings, nil
}
