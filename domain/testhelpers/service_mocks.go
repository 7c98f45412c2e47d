package testhelpers

import (
	"context"

	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockVerificationSettingsService is a mock implementation of VerificationSettingsService
type MockVerificationSettingsService struct {
	mock.Mock
}

func (m *MockVerificationSettingsService) GetSettings(ctx context.Context, guildID int64) (*entities.VerificationSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationSettings), args.Error(1)
}

func (m *MockVerificationSettingsService) UpdateSettings(ctx context.Context, guildID int64, update entities.VerificationSettingsUpdate) (*entities.VerificationSettings, error) {
	args := m.Called(ctx, guildID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationSettings), args.Error(1)
}

func (m *MockVerificationSettingsService) SetEnabled(ctx context.Context, guildID int64, enabled bool) (*entities.VerificationSettings, error) {
	args := m.Called(ctx, guildID, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationSettings), args.Error(1)
}

func (m *MockVerificationSettingsService) SetVerificationMessage(ctx context.Context, guildID int64, messageID int64) (*entities.VerificationSettings, error) {
	args := m.Called(ctx, guildID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationSettings), args.Error(1)
}

// MockWelcomeSettingsService is a mock implementation of WelcomeSettingsService
type MockWelcomeSettingsService struct {
	mock.Mock
}

func (m *MockWelcomeSettingsService) GetSettings(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WelcomeSettings), args.Error(1)
}

func (m *MockWelcomeSettingsService) UpdateSettings(ctx context.Context, guildID int64, update entities.WelcomeSettingsUpdate) (*entities.WelcomeSettings, error) {
	args := m.Called(ctx, guildID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WelcomeSettings), args.Error(1)
}

func (m *MockWelcomeSettingsService) SetEnabled(ctx context.Context, guildID int64, enabled bool) (*entities.WelcomeSettings, error) {
	args := m.Called(ctx, guildID, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WelcomeSettings), args.Error(1)
}

func (m *MockWelcomeSettingsService) AddRole(ctx context.Context, guildID int64, roleID int64) (*entities.WelcomeSettings, error) {
	args := m.Called(ctx, guildID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WelcomeSettings), args.Error(1)
}

func (m *MockWelcomeSettingsService) RemoveRole(ctx context.Context, guildID int64, roleID int64) (*entities.WelcomeSettings, error) {
	args := m.Called(ctx, guildID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WelcomeSettings), args.Error(1)
}

func (m *MockWelcomeSettingsService) ClearRoles(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WelcomeSettings), args.Error(1)
}
