package testhelpers

import (
	"context"

	"github.com/ssorr707/discord-system-bot2/domain/entities"
	"github.com/ssorr707/discord-system-bot2/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockVerificationSettingsRepository is a mock implementation of VerificationSettingsRepository.
// Update is expected with (ctx, guildID) and returns the stored record the mutate fn runs against.
type MockVerificationSettingsRepository struct {
	mock.Mock
}

func (m *MockVerificationSettingsRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.VerificationSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationSettings), args.Error(1)
}

func (m *MockVerificationSettingsRepository) Update(ctx context.Context, guildID int64, mutate func(*entities.VerificationSettings) error) (*entities.VerificationSettings, error) {
	args := m.Called(ctx, guildID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	current := entities.DefaultVerificationSettings(guildID)
	if stored, ok := args.Get(0).(*entities.VerificationSettings); ok && stored != nil {
		current = stored.Clone()
	}
	if err := mutate(current); err != nil {
		return nil, err
	}
	return current, nil
}

// MockWelcomeSettingsRepository is a mock implementation of WelcomeSettingsRepository.
// Update is expected with (ctx, guildID) and returns the stored record the mutate fn runs against.
type MockWelcomeSettingsRepository struct {
	mock.Mock
}

func (m *MockWelcomeSettingsRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WelcomeSettings), args.Error(1)
}

func (m *MockWelcomeSettingsRepository) Update(ctx context.Context, guildID int64, mutate func(*entities.WelcomeSettings) error) (*entities.WelcomeSettings, error) {
	args := m.Called(ctx, guildID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	current := entities.DefaultWelcomeSettings(guildID)
	if stored, ok := args.Get(0).(*entities.WelcomeSettings); ok && stored != nil {
		current = stored.Clone()
	}
	if err := mutate(current); err != nil {
		return nil, err
	}
	return current, nil
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
