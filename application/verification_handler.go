package application

import (
	"context"
	"fmt"

	"github.com/ssorr707/discord-system-bot2/application/dto"
	"github.com/ssorr707/discord-system-bot2/domain/entities"
	"github.com/ssorr707/discord-system-bot2/domain/interfaces"
	"github.com/ssorr707/discord-system-bot2/domain/validation"

	log "github.com/sirupsen/logrus"
)

// verificationHandler implements the VerificationHandler interface
type verificationHandler struct {
	service  interfaces.VerificationSettingsService
	platform GuildPlatform
}

// NewVerificationHandler creates a new verification command handler
func NewVerificationHandler(service interfaces.VerificationSettingsService, platform GuildPlatform) VerificationHandler {
	return &verificationHandler{
		service:  service,
		platform: platform,
	}
}

// Setup configures and enables verification, then posts the verification prompt
func (h *verificationHandler) Setup(ctx context.Context, req dto.VerificationSetupRequest) *dto.Response {
	const action = "setting up the verification system"
	fields := logFields(req.Invocation, "verification-setup")

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	welcomeMessage := entities.DefaultVerificationWelcomeMessage
	if req.WelcomeMessage != nil && *req.WelcomeMessage != "" {
		welcomeMessage = *req.WelcomeMessage
	}
	method := entities.VerificationMethodCaptcha
	if req.Method != nil && *req.Method != "" {
		method = entities.VerificationMethod(*req.Method)
	}
	autoKick := req.AutoKick != nil && *req.AutoKick
	timeoutMinutes := int64(entities.DefaultAutoKickTimeoutMinutes)
	if req.AutoKickTimeoutMinutes != nil {
		timeoutMinutes = *req.AutoKickTimeoutMinutes
	}

	if err := validation.ValidateVerificationMethod(method); err != nil {
		return ErrorResponse(err, action, fields)
	}
	if err := validation.ValidateTimeoutMinutes(timeoutMinutes); err != nil {
		return ErrorResponse(err, action, fields)
	}

	canSend, err := h.platform.CanSendMessages(ctx, req.GuildID, req.Channel.ID)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}
	if !canSend {
		return ErrorResponse(entities.NewValidationError("Permission Error",
			fmt.Sprintf("I don't have permission to send messages in %s.", req.Channel.Mention())), action, fields)
	}

	botPosition, err := h.platform.BotHighestRolePosition(ctx, req.GuildID)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}
	if err := validation.ValidateRoleAssignable(&req.VerifiedRole, botPosition); err != nil {
		return ErrorResponse(err, action, fields)
	}
	if req.UnverifiedRole != nil {
		if err := validation.ValidateRoleAssignable(req.UnverifiedRole, botPosition); err != nil {
			return ErrorResponse(err, action, fields)
		}
	}

	enabled := true
	timeoutMs := entities.MinutesToMillis(timeoutMinutes)
	update := entities.VerificationSettingsUpdate{
		Enabled:               &enabled,
		VerificationChannelID: entities.SetID(req.Channel.ID),
		LogChannelID:          entities.ClearID(),
		VerifiedRoleID:        entities.SetID(req.VerifiedRole.ID),
		UnverifiedRoleID:      entities.ClearID(),
		WelcomeMessage:        &welcomeMessage,
		Method:                &method,
		AutoKick:              &autoKick,
		AutoKickTimeoutMs:     &timeoutMs,
	}
	if req.LogChannel != nil {
		update.LogChannelID = entities.SetID(req.LogChannel.ID)
	}
	if req.UnverifiedRole != nil {
		update.UnverifiedRoleID = entities.SetID(req.UnverifiedRole.ID)
	}

	if _, err := h.service.UpdateSettings(ctx, req.GuildID, update); err != nil {
		return ErrorResponse(err, action, fields)
	}

	messageID, err := h.platform.SendMessage(ctx, req.Channel.ID, verificationPrompt(welcomeMessage, method, req.GuildName))
	if err != nil {
		return ErrorResponse(fmt.Errorf("failed to send verification prompt: %w", err), action, fields)
	}
	if method == entities.VerificationMethodReaction {
		if err := h.platform.AddReaction(ctx, req.Channel.ID, messageID, verifiedEmoji); err != nil {
			return ErrorResponse(fmt.Errorf("failed to add verification reaction: %w", err), action, fields)
		}
	}
	if _, err := h.service.SetVerificationMessage(ctx, req.GuildID, messageID); err != nil {
		return ErrorResponse(err, action, fields)
	}

	log.WithFields(fields).WithFields(log.Fields{
		"channel_id": req.Channel.ID,
		"method":     method,
		"message_id": messageID,
	}).Info("Verification system set up")

	resp := dto.Success("Verification System Setup", "The verification system has been set up successfully.").
		AddField("Verification Channel", req.Channel.Mention(), true).
		AddField("Verified Role", req.VerifiedRole.Mention(), true).
		AddField("Method", method.DisplayName(), true)
	if req.UnverifiedRole != nil {
		resp.AddField("Unverified Role", req.UnverifiedRole.Mention(), true)
	}
	if req.LogChannel != nil {
		resp.AddField("Log Channel", req.LogChannel.Mention(), true)
	}
	if autoKick {
		resp.AddField("Auto Kick", fmt.Sprintf("Enabled (%d minutes)", timeoutMinutes), true)
	}
	return resp
}

// Toggle enables or disables verification without touching its configuration
func (h *verificationHandler) Toggle(ctx context.Context, req dto.VerificationToggleRequest) *dto.Response {
	const action = "toggling the verification system"
	fields := logFields(req.Invocation, "verification-toggle")

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	settings, err := h.service.SetEnabled(ctx, req.GuildID, req.Enabled)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}

	if !req.Enabled {
		return dto.Success("Verification System Disabled", "The verification system has been disabled.")
	}

	resp := dto.Success("Verification System Enabled", "The verification system has been enabled.")
	if settings.HasVerificationChannel() {
		channel, err := h.platform.GetChannel(ctx, req.GuildID, *settings.VerificationChannelID)
		if err != nil {
			return ErrorResponse(err, action, fields)
		}
		if channel != nil {
			resp.AddField("Verification Channel", channel.Mention(), false)
		}
	}
	if settings.HasVerifiedRole() {
		role, err := h.platform.GetRole(ctx, req.GuildID, *settings.VerifiedRoleID)
		if err != nil {
			return ErrorResponse(err, action, fields)
		}
		if role != nil {
			resp.AddField("Verified Role", role.Mention(), false)
		}
	}
	return resp
}

// Status reports every verification setting of the guild
func (h *verificationHandler) Status(ctx context.Context, req dto.StatusRequest) *dto.Response {
	const action = "checking the verification system status"
	fields := logFields(req.Invocation, "verification-status")

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	settings, err := h.service.GetSettings(ctx, req.GuildID)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}

	state := "disabled"
	if settings.Enabled {
		state = "enabled"
	}
	resp := dto.Info("Verification System Status", fmt.Sprintf("The verification system is currently **%s**.", state))
	resp.Color = VerificationColor
	resp.Footer = "Verification System • " + req.GuildName
	resp.Timestamp = true

	value := "Not set"
	if settings.HasVerificationChannel() {
		if value, err = describeChannel(ctx, h.platform, req.GuildID, *settings.VerificationChannelID); err != nil {
			return ErrorResponse(err, action, fields)
		}
	}
	resp.AddField("Verification Channel", value, true)

	value = "Not set"
	if settings.HasVerifiedRole() {
		if value, err = describeRole(ctx, h.platform, req.GuildID, *settings.VerifiedRoleID); err != nil {
			return ErrorResponse(err, action, fields)
		}
	}
	resp.AddField("Verified Role", value, true)

	if settings.HasUnverifiedRole() {
		if value, err = describeRole(ctx, h.platform, req.GuildID, *settings.UnverifiedRoleID); err != nil {
			return ErrorResponse(err, action, fields)
		}
		resp.AddField("Unverified Role", value, true)
	}
	if settings.HasLogChannel() {
		if value, err = describeChannel(ctx, h.platform, req.GuildID, *settings.LogChannelID); err != nil {
			return ErrorResponse(err, action, fields)
		}
		resp.AddField("Log Channel", value, true)
	}

	resp.AddField("Verification Method", settings.Method.DisplayName(), true)

	autoKick := "Disabled"
	if settings.AutoKick {
		autoKick = fmt.Sprintf("Enabled (%d minutes)", settings.AutoKickTimeoutMinutes())
	}
	resp.AddField("Auto Kick", autoKick, true)

	welcomeMessage := settings.WelcomeMessage
	if welcomeMessage == "" {
		welcomeMessage = "Default message"
	}
	resp.AddField("Welcome Message", welcomeMessage, false)

	return resp
}

// verificationPrompt builds the message members interact with to verify
func verificationPrompt(welcomeMessage string, method entities.VerificationMethod, guildName string) dto.OutboundMessage {
	var howTo string
	switch method {
	case entities.VerificationMethodCaptcha:
		howTo = "Click the button below and solve the captcha to verify yourself."
	case entities.VerificationMethodReaction:
		howTo = "React to this message with " + verifiedEmoji + " to verify yourself."
	default:
		howTo = "Click the button below to verify yourself."
	}

	embed := dto.Info("Server Verification", welcomeMessage)
	embed.Color = VerificationColor
	embed.Footer = "Verification System • " + guildName
	embed.Timestamp = true
	embed.AddField("Why Verify?", "Verification helps us protect our community from spam and automated accounts.", false).
		AddField("How to Verify", howTo, false)

	msg := dto.OutboundMessage{Embed: *embed}
	if method != entities.VerificationMethodReaction {
		msg.Button = &dto.Button{CustomID: dto.VerifyButtonID, Label: "Verify", Emoji: verifiedEmoji}
	}
	return msg
}
