package application

import (
	"context"
	"errors"
	"testing"

	"github.com/ssorr707/discord-system-bot2/application/dto"
	"github.com/ssorr707/discord-system-bot2/domain/entities"
	"github.com/ssorr707/discord-system-bot2/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID   = int64(42)
	testChannelID = int64(500)
	testRoleID    = int64(600)
)

func ptr[T any](v T) *T {
	return &v
}

func newVerificationHandlerWithMocks() (VerificationHandler, *testhelpers.MockVerificationSettingsService, *mockGuildPlatform) {
	svc := new(testhelpers.MockVerificationSettingsService)
	platform := new(mockGuildPlatform)
	return NewVerificationHandler(svc, platform), svc, platform
}

func setupRequest() dto.VerificationSetupRequest {
	return dto.VerificationSetupRequest{
		Invocation:   adminInvocation(testGuildID),
		Channel:      entities.Channel{ID: testChannelID, Name: "verify"},
		VerifiedRole: entities.Role{ID: testRoleID, Name: "Verified", Position: 3},
	}
}

func TestVerificationHandler_Setup_Success(t *testing.T) {
	t.Parallel()

	handler, svc, platform := newVerificationHandlerWithMocks()
	stored := entities.DefaultVerificationSettings(testGuildID)

	platform.On("CanSendMessages", mock.Anything, testGuildID, testChannelID).Return(true, nil)
	platform.On("BotHighestRolePosition", mock.Anything, testGuildID).Return(10, nil)
	svc.On("UpdateSettings", mock.Anything, testGuildID, mock.MatchedBy(func(u entities.VerificationSettingsUpdate) bool {
		settings := entities.DefaultVerificationSettings(testGuildID)
		settings.LogChannelID = ptr(int64(1))
		u.ApplyTo(settings)
		return settings.Enabled &&
			*settings.VerificationChannelID == testChannelID &&
			*settings.VerifiedRoleID == testRoleID &&
			settings.LogChannelID == nil &&
			settings.Method == entities.VerificationMethodCaptcha &&
			settings.AutoKickTimeoutMs == entities.MinutesToMillis(30) &&
			settings.WelcomeMessage == entities.DefaultVerificationWelcomeMessage
	})).Return(stored, nil)
	platform.On("SendMessage", mock.Anything, testChannelID, mock.MatchedBy(func(msg dto.OutboundMessage) bool {
		return msg.Button != nil && msg.Button.CustomID == dto.VerifyButtonID &&
			msg.Embed.Description == entities.DefaultVerificationWelcomeMessage
	})).Return(int64(900), nil)
	svc.On("SetVerificationMessage", mock.Anything, testGuildID, int64(900)).Return(stored, nil)

	resp := handler.Setup(context.Background(), setupRequest())

	require.NotNil(t, resp)
	assert.Equal(t, dto.OutcomeSuccess, resp.Outcome)
	assert.Equal(t, "Verification System Setup", resp.Title)
	require.Len(t, resp.Fields, 3)
	assert.Equal(t, "<#500>", resp.Fields[0].Value)
	assert.Equal(t, "<@&600>", resp.Fields[1].Value)
	assert.Equal(t, "Captcha", resp.Fields[2].Value)

	svc.AssertExpectations(t)
	platform.AssertExpectations(t)
	platform.AssertNotCalled(t, "AddReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationHandler_Setup_ReactionMethodAddsReaction(t *testing.T) {
	t.Parallel()

	handler, svc, platform := newVerificationHandlerWithMocks()
	stored := entities.DefaultVerificationSettings(testGuildID)

	req := setupRequest()
	req.Method = ptr("reaction")
	req.AutoKick = ptr(true)
	req.AutoKickTimeoutMinutes = ptr(int64(60))
	req.LogChannel = &entities.Channel{ID: 700}

	platform.On("CanSendMessages", mock.Anything, testGuildID, testChannelID).Return(true, nil)
	platform.On("BotHighestRolePosition", mock.Anything, testGuildID).Return(10, nil)
	svc.On("UpdateSettings", mock.Anything, testGuildID, mock.MatchedBy(func(u entities.VerificationSettingsUpdate) bool {
		settings := entities.DefaultVerificationSettings(testGuildID)
		u.ApplyTo(settings)
		return settings.Method == entities.VerificationMethodReaction &&
			settings.AutoKick &&
			settings.AutoKickTimeoutMs == 3600000 &&
			*settings.LogChannelID == int64(700)
	})).Return(stored, nil)
	platform.On("SendMessage", mock.Anything, testChannelID, mock.MatchedBy(func(msg dto.OutboundMessage) bool {
		return msg.Button == nil
	})).Return(int64(901), nil)
	platform.On("AddReaction", mock.Anything, testChannelID, int64(901), "✅").Return(nil)
	svc.On("SetVerificationMessage", mock.Anything, testGuildID, int64(901)).Return(stored, nil)

	resp := handler.Setup(context.Background(), req)

	assert.Equal(t, dto.OutcomeSuccess, resp.Outcome)
	assert.Contains(t, resp.Fields, dto.Field{Name: "Log Channel", Value: "<#700>", Inline: true})
	assert.Contains(t, resp.Fields, dto.Field{Name: "Auto Kick", Value: "Enabled (60 minutes)", Inline: true})
	svc.AssertExpectations(t)
	platform.AssertExpectations(t)
}

func TestVerificationHandler_Setup_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		modify          func(*dto.VerificationSetupRequest)
		setupMocks      func(*mockGuildPlatform)
		expectedOutcome dto.Outcome
		expectedTitle   string
	}{
		{
			name: "missing manage guild permission",
			modify: func(req *dto.VerificationSetupRequest) {
				req.Invocation = memberInvocation(testGuildID)
			},
			expectedOutcome: dto.OutcomePermissionDenied,
			expectedTitle:   "Permission Denied",
		},
		{
			name: "timeout below minimum",
			modify: func(req *dto.VerificationSetupRequest) {
				req.AutoKickTimeoutMinutes = ptr(int64(4))
			},
			expectedOutcome: dto.OutcomeValidationFailed,
			expectedTitle:   "Invalid Timeout",
		},
		{
			name: "timeout above maximum",
			modify: func(req *dto.VerificationSetupRequest) {
				req.AutoKickTimeoutMinutes = ptr(int64(1441))
			},
			expectedOutcome: dto.OutcomeValidationFailed,
			expectedTitle:   "Invalid Timeout",
		},
		{
			name: "unknown method",
			modify: func(req *dto.VerificationSetupRequest) {
				req.Method = ptr("email")
			},
			expectedOutcome: dto.OutcomeValidationFailed,
			expectedTitle:   "Invalid Method",
		},
		{
			name: "bot cannot post in channel",
			setupMocks: func(p *mockGuildPlatform) {
				p.On("CanSendMessages", mock.Anything, testGuildID, testChannelID).Return(false, nil)
			},
			expectedOutcome: dto.OutcomeValidationFailed,
			expectedTitle:   "Permission Error",
		},
		{
			name: "verified role equal to bot role",
			modify: func(req *dto.VerificationSetupRequest) {
				req.VerifiedRole.Position = 10
			},
			setupMocks: func(p *mockGuildPlatform) {
				p.On("CanSendMessages", mock.Anything, testGuildID, testChannelID).Return(true, nil)
				p.On("BotHighestRolePosition", mock.Anything, testGuildID).Return(10, nil)
			},
			expectedOutcome: dto.OutcomeValidationFailed,
			expectedTitle:   "Role Error",
		},
		{
			name: "unverified role above bot role",
			modify: func(req *dto.VerificationSetupRequest) {
				req.UnverifiedRole = &entities.Role{ID: 601, Position: 11}
			},
			setupMocks: func(p *mockGuildPlatform) {
				p.On("CanSendMessages", mock.Anything, testGuildID, testChannelID).Return(true, nil)
				p.On("BotHighestRolePosition", mock.Anything, testGuildID).Return(10, nil)
			},
			expectedOutcome: dto.OutcomeValidationFailed,
			expectedTitle:   "Role Error",
		},
		{
			name: "platform lookup failure",
			setupMocks: func(p *mockGuildPlatform) {
				p.On("CanSendMessages", mock.Anything, testGuildID, testChannelID).Return(false, errors.New("gateway timeout"))
			},
			expectedOutcome: dto.OutcomeError,
			expectedTitle:   "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, svc, platform := newVerificationHandlerWithMocks()
			if tt.setupMocks != nil {
				tt.setupMocks(platform)
			}
			req := setupRequest()
			if tt.modify != nil {
				tt.modify(&req)
			}

			resp := handler.Setup(context.Background(), req)

			assert.Equal(t, tt.expectedOutcome, resp.Outcome)
			assert.Equal(t, tt.expectedTitle, resp.Title)
			assert.True(t, resp.Ephemeral)
			svc.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
			platform.AssertExpectations(t)
		})
	}
}

func TestVerificationHandler_Setup_ServiceFailure(t *testing.T) {
	t.Parallel()

	handler, svc, platform := newVerificationHandlerWithMocks()
	platform.On("CanSendMessages", mock.Anything, testGuildID, testChannelID).Return(true, nil)
	platform.On("BotHighestRolePosition", mock.Anything, testGuildID).Return(10, nil)
	svc.On("UpdateSettings", mock.Anything, testGuildID, mock.Anything).Return(nil, errors.New("connection refused"))

	resp := handler.Setup(context.Background(), setupRequest())

	assert.Equal(t, dto.OutcomeError, resp.Outcome)
	assert.Equal(t, "An error occurred while setting up the verification system.", resp.Description)
	platform.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationHandler_Setup_PromptFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		setupMocks func(*testhelpers.MockVerificationSettingsService, *mockGuildPlatform)
		leaked     string
	}{
		{
			name:   "prompt cannot be posted",
			method: "button",
			setupMocks: func(svc *testhelpers.MockVerificationSettingsService, p *mockGuildPlatform) {
				p.On("SendMessage", mock.Anything, testChannelID, mock.Anything).Return(int64(0), errors.New("HTTP 403 Forbidden, Missing Access"))
			},
			leaked: "Missing Access",
		},
		{
			name:   "reaction cannot be added",
			method: "reaction",
			setupMocks: func(svc *testhelpers.MockVerificationSettingsService, p *mockGuildPlatform) {
				p.On("SendMessage", mock.Anything, testChannelID, mock.Anything).Return(int64(902), nil)
				p.On("AddReaction", mock.Anything, testChannelID, int64(902), "✅").Return(errors.New("Unknown Emoji"))
			},
			leaked: "Unknown Emoji",
		},
		{
			name:   "prompt id cannot be recorded",
			method: "captcha",
			setupMocks: func(svc *testhelpers.MockVerificationSettingsService, p *mockGuildPlatform) {
				p.On("SendMessage", mock.Anything, testChannelID, mock.Anything).Return(int64(903), nil)
				svc.On("SetVerificationMessage", mock.Anything, testGuildID, int64(903)).Return(nil, errors.New("pool closed"))
			},
			leaked: "pool closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, svc, platform := newVerificationHandlerWithMocks()
			platform.On("CanSendMessages", mock.Anything, testGuildID, testChannelID).Return(true, nil)
			platform.On("BotHighestRolePosition", mock.Anything, testGuildID).Return(10, nil)
			svc.On("UpdateSettings", mock.Anything, testGuildID, mock.Anything).Return(entities.DefaultVerificationSettings(testGuildID), nil)
			tt.setupMocks(svc, platform)

			req := setupRequest()
			req.Method = ptr(tt.method)
			resp := handler.Setup(context.Background(), req)

			require.NotNil(t, resp)
			assert.Equal(t, dto.OutcomeError, resp.Outcome)
			assert.Equal(t, "Error", resp.Title)
			assert.Equal(t, "An error occurred while setting up the verification system.", resp.Description)
			assert.True(t, resp.Ephemeral)
			assert.NotContains(t, resp.Description, tt.leaked)
			assert.Empty(t, resp.Fields)
			svc.AssertExpectations(t)
			platform.AssertExpectations(t)
		})
	}
}

func TestVerificationHandler_Toggle(t *testing.T) {
	t.Parallel()

	t.Run("enable reports channel and role", func(t *testing.T) {
		t.Parallel()

		handler, svc, platform := newVerificationHandlerWithMocks()
		settings := entities.DefaultVerificationSettings(testGuildID)
		settings.Enabled = true
		settings.VerificationChannelID = ptr(testChannelID)
		settings.VerifiedRoleID = ptr(testRoleID)

		svc.On("SetEnabled", mock.Anything, testGuildID, true).Return(settings, nil)
		platform.On("GetChannel", mock.Anything, testGuildID, testChannelID).Return(&entities.Channel{ID: testChannelID}, nil)
		platform.On("GetRole", mock.Anything, testGuildID, testRoleID).Return(nil, nil)

		resp := handler.Toggle(context.Background(), dto.VerificationToggleRequest{
			Invocation: adminInvocation(testGuildID),
			Enabled:    true,
		})

		assert.Equal(t, "Verification System Enabled", resp.Title)
		require.Len(t, resp.Fields, 1)
		assert.Equal(t, "Verification Channel", resp.Fields[0].Name)
		svc.AssertExpectations(t)
		platform.AssertExpectations(t)
	})

	t.Run("disable", func(t *testing.T) {
		t.Parallel()

		handler, svc, _ := newVerificationHandlerWithMocks()
		svc.On("SetEnabled", mock.Anything, testGuildID, false).Return(entities.DefaultVerificationSettings(testGuildID), nil)

		resp := handler.Toggle(context.Background(), dto.VerificationToggleRequest{
			Invocation: adminInvocation(testGuildID),
			Enabled:    false,
		})

		assert.Equal(t, "Verification System Disabled", resp.Title)
		assert.Empty(t, resp.Fields)
	})

	t.Run("enable before setup", func(t *testing.T) {
		t.Parallel()

		handler, svc, _ := newVerificationHandlerWithMocks()
		svc.On("SetEnabled", mock.Anything, testGuildID, true).
			Return(nil, entities.NewSetupRequired("Please set up the verification system first using `/verification-setup`."))

		resp := handler.Toggle(context.Background(), dto.VerificationToggleRequest{
			Invocation: adminInvocation(testGuildID),
			Enabled:    true,
		})

		assert.Equal(t, dto.OutcomeSetupRequired, resp.Outcome)
		assert.Equal(t, "Setup Required", resp.Title)
	})

	t.Run("permission denied", func(t *testing.T) {
		t.Parallel()

		handler, svc, _ := newVerificationHandlerWithMocks()

		resp := handler.Toggle(context.Background(), dto.VerificationToggleRequest{
			Invocation: memberInvocation(testGuildID),
			Enabled:    true,
		})

		assert.Equal(t, dto.OutcomePermissionDenied, resp.Outcome)
		svc.AssertNotCalled(t, "SetEnabled", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVerificationHandler_Status(t *testing.T) {
	t.Parallel()

	handler, svc, platform := newVerificationHandlerWithMocks()
	settings := entities.DefaultVerificationSettings(testGuildID)
	settings.Enabled = true
	settings.VerificationChannelID = ptr(testChannelID)
	settings.VerifiedRoleID = ptr(testRoleID)
	settings.Method = entities.VerificationMethodButton
	settings.AutoKick = true
	settings.AutoKickTimeoutMs = entities.MinutesToMillis(45)

	svc.On("GetSettings", mock.Anything, testGuildID).Return(settings, nil)
	platform.On("GetChannel", mock.Anything, testGuildID, testChannelID).Return(&entities.Channel{ID: testChannelID}, nil)
	platform.On("GetRole", mock.Anything, testGuildID, testRoleID).Return(nil, nil)

	resp := handler.Status(context.Background(), dto.StatusRequest{Invocation: adminInvocation(testGuildID)})

	assert.Equal(t, dto.ResponseInfo, resp.Kind)
	assert.Equal(t, "The verification system is currently **enabled**.", resp.Description)
	assert.Equal(t, VerificationColor, resp.Color)
	assert.Equal(t, "Verification System • Test Guild", resp.Footer)
	assert.Equal(t, []dto.Field{
		{Name: "Verification Channel", Value: "<#500> (500)", Inline: true},
		{Name: "Verified Role", Value: "Unknown Role (600)", Inline: true},
		{Name: "Verification Method", Value: "Button", Inline: true},
		{Name: "Auto Kick", Value: "Enabled (45 minutes)", Inline: true},
		{Name: "Welcome Message", Value: entities.DefaultVerificationWelcomeMessage, Inline: false},
	}, resp.Fields)
	svc.AssertExpectations(t)
	platform.AssertExpectations(t)
}

func TestVerificationHandler_Status_Unconfigured(t *testing.T) {
	t.Parallel()

	handler, svc, platform := newVerificationHandlerWithMocks()
	svc.On("GetSettings", mock.Anything, testGuildID).Return(entities.DefaultVerificationSettings(testGuildID), nil)

	resp := handler.Status(context.Background(), dto.StatusRequest{Invocation: adminInvocation(testGuildID)})

	assert.Equal(t, "The verification system is currently **disabled**.", resp.Description)
	assert.Equal(t, "Not set", resp.Fields[0].Value)
	assert.Equal(t, "Not set", resp.Fields[1].Value)
	assert.Contains(t, resp.Fields, dto.Field{Name: "Auto Kick", Value: "Disabled", Inline: true})
	platform.AssertNotCalled(t, "GetChannel", mock.Anything, mock.Anything, mock.Anything)
}
