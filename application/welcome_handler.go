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

const noAutoRolesMessage = "There are no roles being automatically assigned to new members."

// welcomeHandler implements the WelcomeHandler interface
type welcomeHandler struct {
	service  interfaces.WelcomeSettingsService
	platform GuildPlatform
}

// NewWelcomeHandler creates a new welcome command handler
func NewWelcomeHandler(service interfaces.WelcomeSettingsService, platform GuildPlatform) WelcomeHandler {
	return &welcomeHandler{
		service:  service,
		platform: platform,
	}
}

// Setup configures and enables the welcome flow, then posts a test welcome into the channel
func (h *welcomeHandler) Setup(ctx context.Context, req dto.WelcomeSetupRequest) *dto.Response {
	const action = "setting up the welcome system"
	fields := logFields(req.Invocation, "welcome-setup")

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	message := stringOr(req.Message, entities.DefaultWelcomeMessage)
	useImage := boolOr(req.UseImage, true)
	color := stringOr(req.Color, entities.DefaultWelcomeColor)
	dmEnabled := boolOr(req.DMEnabled, false)
	dmMessage := stringOr(req.DMMessage, entities.DefaultWelcomeDMMessage)

	if err := validation.ValidateHexColor(color); err != nil {
		return ErrorResponse(err, action, fields)
	}

	enabled := true
	settings, err := h.service.UpdateSettings(ctx, req.GuildID, entities.WelcomeSettingsUpdate{
		Enabled:   &enabled,
		ChannelID: entities.SetID(req.Channel.ID),
		Message:   &message,
		UseImage:  &useImage,
		Color:     &color,
		DMEnabled: &dmEnabled,
		DMMessage: &dmMessage,
	})
	if err != nil {
		return ErrorResponse(err, action, fields)
	}

	resp := dto.Success("Welcome System Setup", "The welcome system has been set up successfully.").
		AddField("Channel", req.Channel.Mention(), true).
		AddField("Message", message, true).
		AddField("Image", enabledText(useImage), true).
		AddField("Color", color, true).
		AddField("DM", enabledText(dmEnabled), true)
	if dmEnabled {
		resp.AddField("DM Message", dmMessage, false)
	}

	invoker := &entities.Member{UserID: req.UserID, Username: req.Username}
	if member, err := h.platform.GetMember(ctx, req.GuildID, req.UserID); err == nil && member != nil {
		invoker = member
	}
	test := welcomeMessage(settings, "Welcome Test", invoker, req.GuildName, dto.ResponseInfo)
	if _, err := h.platform.SendMessage(ctx, req.Channel.ID, dto.OutboundMessage{Embed: test}); err != nil {
		log.WithFields(fields).WithError(err).Warn("Failed to send test welcome message")
		resp.FollowUps = append(resp.FollowUps, *dto.Failure(dto.OutcomeError, "Test Message Failed",
			fmt.Sprintf("The settings were saved, but I could not send a test welcome message to %s.", req.Channel.Mention())))
	}

	log.WithFields(fields).WithField("channel_id", req.Channel.ID).Info("Welcome system set up")
	return resp
}

// Toggle enables or disables the welcome flow without touching its configuration
func (h *welcomeHandler) Toggle(ctx context.Context, req dto.WelcomeToggleRequest) *dto.Response {
	const action = "toggling the welcome system"
	fields := logFields(req.Invocation, "welcome-toggle")

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	if _, err := h.service.SetEnabled(ctx, req.GuildID, req.Enabled); err != nil {
		return ErrorResponse(err, action, fields)
	}

	return dto.Success("Welcome System Toggled",
		fmt.Sprintf("The welcome system has been %s.", lowerEnabled(req.Enabled)))
}

// Status reports every welcome setting of the guild
func (h *welcomeHandler) Status(ctx context.Context, req dto.StatusRequest) *dto.Response {
	const action = "checking the welcome system status"
	fields := logFields(req.Invocation, "welcome-status")

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	settings, err := h.service.GetSettings(ctx, req.GuildID)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}

	resp := dto.Info("Welcome System Status",
		fmt.Sprintf("The welcome system is currently **%s**.", lowerEnabled(settings.Enabled)))

	channel := "Not set"
	if settings.HasChannel() {
		if channel, err = describeChannel(ctx, h.platform, req.GuildID, *settings.ChannelID); err != nil {
			return ErrorResponse(err, action, fields)
		}
	}
	resp.AddField("Welcome Channel", channel, true).
		AddField("Welcome Message", stringOr(&settings.Message, "Default message"), false).
		AddField("Welcome Image", enabledText(settings.UseImage), true).
		AddField("Color", stringOr(&settings.Color, entities.DefaultWelcomeColor), true).
		AddField("Welcome DM", enabledText(settings.DMEnabled), true)
	if settings.DMEnabled {
		resp.AddField("DM Message", stringOr(&settings.DMMessage, "Default DM message"), false)
	}

	roles := "No auto roles configured"
	if len(settings.RoleIDs) > 0 {
		if roles, err = describeRoles(ctx, h.platform, req.GuildID, settings.RoleIDs); err != nil {
			return ErrorResponse(err, action, fields)
		}
	}
	resp.AddField("Auto Roles", roles, false)

	return resp
}

// Message handles the /welcome-message subcommands
func (h *welcomeHandler) Message(ctx context.Context, req dto.WelcomeMessageRequest) *dto.Response {
	const action = "customizing welcome messages"
	fields := logFields(req.Invocation, "welcome-message")
	fields["subcommand"] = req.Action

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	settings, err := h.service.GetSettings(ctx, req.GuildID)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}
	if err := validation.ValidateWelcomeConfigured(settings); err != nil {
		return ErrorResponse(err, action, fields)
	}

	var (
		update entities.WelcomeSettingsUpdate
		resp   *dto.Response
	)
	switch req.Action {
	case dto.WelcomeMessageSet:
		update.Message = &req.Text
		resp = dto.Success("Welcome Message Updated", "The welcome message has been updated.").
			AddField("New Message", req.Text, false)
	case dto.WelcomeMessageSetDM:
		update.DMMessage = &req.Text
		resp = dto.Success("Welcome DM Message Updated", "The welcome DM message has been updated.").
			AddField("New Message", req.Text, false)
	case dto.WelcomeMessageToggleDM:
		update.DMEnabled = &req.Enabled
		resp = dto.Success("Welcome DMs Toggled",
			fmt.Sprintf("Welcome DMs have been %s.", lowerEnabled(req.Enabled)))
	case dto.WelcomeMessageToggleImage:
		update.UseImage = &req.Enabled
		resp = dto.Success("Welcome Images Toggled",
			fmt.Sprintf("Welcome images have been %s.", lowerEnabled(req.Enabled)))
	case dto.WelcomeMessageSetColor:
		if err := validation.ValidateHexColor(req.Text); err != nil {
			return ErrorResponse(err, action, fields)
		}
		update.Color = &req.Text
		resp = dto.Success("Welcome Color Updated", "The welcome message color has been updated.").
			AddField("New Color", req.Text, false)
		resp.Color = req.Text
	default:
		return ErrorResponse(fmt.Errorf("unknown welcome-message subcommand %q", req.Action), action, fields)
	}

	if _, err := h.service.UpdateSettings(ctx, req.GuildID, update); err != nil {
		return ErrorResponse(err, action, fields)
	}
	return resp
}

// Roles handles the /welcome-roles subcommands
func (h *welcomeHandler) Roles(ctx context.Context, req dto.WelcomeRolesRequest) *dto.Response {
	const action = "managing welcome roles"
	fields := logFields(req.Invocation, "welcome-roles")
	fields["subcommand"] = req.Action

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	switch req.Action {
	case dto.WelcomeRolesAdd:
		if req.Role == nil {
			return ErrorResponse(fmt.Errorf("welcome-roles add without a role"), action, fields)
		}
		if err := validation.ValidateRoleNotManaged(req.Role); err != nil {
			return ErrorResponse(err, action, fields)
		}
		botPosition, err := h.platform.BotHighestRolePosition(ctx, req.GuildID)
		if err != nil {
			return ErrorResponse(err, action, fields)
		}
		if err := validation.ValidateRoleAssignable(req.Role, botPosition); err != nil {
			return ErrorResponse(err, action, fields)
		}
		if _, err := h.service.AddRole(ctx, req.GuildID, req.Role.ID); err != nil {
			return ErrorResponse(err, action, fields)
		}
		return dto.Success("Role Added",
			fmt.Sprintf("%s will now be automatically assigned to new members.", req.Role.Mention()))

	case dto.WelcomeRolesRemove:
		if req.Role == nil {
			return ErrorResponse(fmt.Errorf("welcome-roles remove without a role"), action, fields)
		}
		if _, err := h.service.RemoveRole(ctx, req.GuildID, req.Role.ID); err != nil {
			return ErrorResponse(err, action, fields)
		}
		return dto.Success("Role Removed",
			fmt.Sprintf("%s will no longer be automatically assigned to new members.", req.Role.Mention()))

	case dto.WelcomeRolesList:
		settings, err := h.service.GetSettings(ctx, req.GuildID)
		if err != nil {
			return ErrorResponse(err, action, fields)
		}
		if len(settings.RoleIDs) == 0 {
			resp := dto.Info("Auto Roles", noAutoRolesMessage)
			resp.Ephemeral = true
			return resp
		}
		roles, err := describeRoles(ctx, h.platform, req.GuildID, settings.RoleIDs)
		if err != nil {
			return ErrorResponse(err, action, fields)
		}
		return dto.Info("Auto Roles", roles)

	case dto.WelcomeRolesClear:
		settings, err := h.service.GetSettings(ctx, req.GuildID)
		if err != nil {
			return ErrorResponse(err, action, fields)
		}
		if len(settings.RoleIDs) == 0 {
			resp := dto.Info("Auto Roles", noAutoRolesMessage)
			resp.Ephemeral = true
			return resp
		}
		if _, err := h.service.ClearRoles(ctx, req.GuildID); err != nil {
			return ErrorResponse(err, action, fields)
		}
		return dto.Success("Auto Roles Cleared", "All automatic roles have been cleared.")
	}

	return ErrorResponse(fmt.Errorf("unknown welcome-roles subcommand %q", req.Action), action, fields)
}

// Test posts a rendered welcome for the target member and, when enabled, tests the DM
func (h *welcomeHandler) Test(ctx context.Context, req dto.WelcomeTestRequest, deferrer Deferrer) *dto.Response {
	const action = "testing the welcome system"
	fields := logFields(req.Invocation, "welcome-test")

	if err := requireManageGuild(req.Invocation); err != nil {
		return ErrorResponse(err, action, fields)
	}

	targetID := req.UserID
	if targetID == 0 {
		targetID = req.Invocation.UserID
	}
	fields["target_id"] = targetID

	member, err := h.platform.GetMember(ctx, req.GuildID, targetID)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}
	if member == nil {
		return ErrorResponse(entities.NewValidationError("Error", "User not found in this server."), action, fields)
	}

	settings, err := h.service.GetSettings(ctx, req.GuildID)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}
	if err := validation.ValidateWelcomeConfigured(settings); err != nil {
		return ErrorResponse(err, action, fields)
	}

	channel, err := h.platform.GetChannel(ctx, req.GuildID, *settings.ChannelID)
	if err != nil {
		return ErrorResponse(err, action, fields)
	}
	if channel == nil {
		return ErrorResponse(entities.NewValidationError("Invalid Channel",
			"The welcome channel no longer exists. Please update it using `/welcome-setup`."), action, fields)
	}

	if err := deferrer.Defer(ctx); err != nil {
		return ErrorResponse(fmt.Errorf("failed to defer reply: %w", err), action, fields)
	}

	welcome := welcomeMessage(settings, "Welcome Test", member, req.GuildName, dto.ResponseSuccess)
	if _, err := h.platform.SendMessage(ctx, channel.ID, dto.OutboundMessage{Embed: welcome}); err != nil {
		return ErrorResponse(fmt.Errorf("failed to send test welcome: %w", err), action, fields)
	}

	var followUps []dto.Response
	if settings.DMEnabled {
		if member.UserID == req.Invocation.UserID {
			dm := dto.Success(fmt.Sprintf("Welcome to %s", req.GuildName),
				entities.RenderTemplate(settings.DMMessage, member.Username, req.GuildName))
			dm.Color = settings.Color
			if err := h.platform.SendDirectMessage(ctx, member.UserID, dto.OutboundMessage{Embed: *dm}); err != nil {
				log.WithFields(fields).WithError(err).Warn("Could not send welcome test DM")
				followUps = append(followUps, *dto.Failure(dto.OutcomeError, "DM Error",
					"Could not send a DM to the user. They may have DMs disabled."))
			}
		} else {
			skipped := dto.Success("DM Test", "DM would be sent to the user, but was skipped for this test.")
			skipped.Ephemeral = true
			followUps = append(followUps, *skipped)
		}
	}

	resp := dto.Success("Welcome Test Complete",
		fmt.Sprintf("A test welcome message has been sent to %s.", channel.Mention()))
	resp.FollowUps = followUps
	return resp
}

// welcomeMessage renders the guild's welcome message for member
func welcomeMessage(settings *entities.WelcomeSettings, title string, member *entities.Member, guildName string, kind dto.ResponseKind) dto.Response {
	embed := dto.Response{
		Kind:        kind,
		Outcome:     dto.OutcomeSuccess,
		Title:       title,
		Description: entities.RenderTemplate(settings.Message, member.Mention(), guildName),
		Color:       settings.Color,
	}
	if settings.UseImage {
		embed.ImageURL = member.AvatarURL
	}
	return embed
}

func stringOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func lowerEnabled(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
