package welcome

import (
	"context"

	"github.com/ssorr707/discord-system-bot2/application"
	"github.com/ssorr707/discord-system-bot2/application/dto"
	"github.com/ssorr707/discord-system-bot2/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Command names handled by this feature
const (
	CommandSetup   = "welcome-setup"
	CommandToggle  = "welcome-toggle"
	CommandStatus  = "welcome-status"
	CommandMessage = "welcome-message"
	CommandRoles   = "welcome-roles"
	CommandTest    = "welcome-test"
)

// Feature handles the welcome flow commands
type Feature struct {
	handler application.WelcomeHandler
}

// NewFeature creates a new welcome feature instance
func NewFeature(handler application.WelcomeHandler) *Feature {
	return &Feature{handler: handler}
}

// HandleCommand routes welcome commands to the handler and returns the outcome
func (f *Feature) HandleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) dto.Outcome {
	inv, err := common.NewInvocation(s, i)
	if err != nil {
		log.WithError(err).Warn("Rejected welcome command")
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return dto.OutcomeError
	}

	var (
		resp     *dto.Response
		deferred bool
	)
	switch i.ApplicationCommandData().Name {
	case CommandSetup:
		req, ok := DecodeSetup(inv, common.CommandOptions(i))
		if !ok {
			common.RespondWithError(s, i, "A welcome channel is required.")
			return dto.OutcomeValidationFailed
		}
		resp = f.handler.Setup(ctx, req)
	case CommandToggle:
		resp = f.handler.Toggle(ctx, DecodeToggle(inv, common.CommandOptions(i)))
	case CommandStatus:
		resp = f.handler.Status(ctx, dto.StatusRequest{Invocation: inv})
	case CommandMessage:
		name, opts := common.Subcommand(i)
		resp = f.handler.Message(ctx, DecodeMessage(inv, name, opts))
	case CommandRoles:
		name, opts := common.Subcommand(i)
		resp = f.handler.Roles(ctx, DecodeRoles(inv, name, opts))
	case CommandTest:
		deferrer := common.NewInteractionDeferrer(s, i, false)
		resp = f.handler.Test(ctx, DecodeTest(inv, common.CommandOptions(i)), deferrer)
		deferred = deferrer.Deferred()
	default:
		return dto.OutcomeError
	}

	common.SendResponse(s, i, resp, deferred)
	return resp.Outcome
}

// DecodeSetup builds a setup request; ok is false when the channel is missing
func DecodeSetup(inv dto.Invocation, opts common.Options) (req dto.WelcomeSetupRequest, ok bool) {
	channel := opts.Channel("channel")
	if channel == nil {
		return req, false
	}

	return dto.WelcomeSetupRequest{
		Invocation: inv,
		Channel:    *channel,
		Message:    opts.String("message"),
		UseImage:   opts.Bool("image"),
		Color:      opts.String("color"),
		DMEnabled:  opts.Bool("dm"),
		DMMessage:  opts.String("dm-message"),
	}, true
}

// DecodeToggle builds a toggle request
func DecodeToggle(inv dto.Invocation, opts common.Options) dto.WelcomeToggleRequest {
	req := dto.WelcomeToggleRequest{Invocation: inv}
	if enabled := opts.Bool("enabled"); enabled != nil {
		req.Enabled = *enabled
	}
	return req
}

// DecodeMessage builds a /welcome-message request from the invoked subcommand
func DecodeMessage(inv dto.Invocation, subcommand string, opts common.Options) dto.WelcomeMessageRequest {
	req := dto.WelcomeMessageRequest{
		Invocation: inv,
		Action:     dto.WelcomeMessageAction(subcommand),
	}
	switch req.Action {
	case dto.WelcomeMessageSet, dto.WelcomeMessageSetDM:
		if text := opts.String("message"); text != nil {
			req.Text = *text
		}
	case dto.WelcomeMessageSetColor:
		if color := opts.String("color"); color != nil {
			req.Text = *color
		}
	case dto.WelcomeMessageToggleDM, dto.WelcomeMessageToggleImage:
		if enabled := opts.Bool("enabled"); enabled != nil {
			req.Enabled = *enabled
		}
	}
	return req
}

// DecodeRoles builds a /welcome-roles request from the invoked subcommand
func DecodeRoles(inv dto.Invocation, subcommand string, opts common.Options) dto.WelcomeRolesRequest {
	return dto.WelcomeRolesRequest{
		Invocation: inv,
		Action:     dto.WelcomeRolesAction(subcommand),
		Role:       opts.Role("role"),
	}
}

// DecodeTest builds a /welcome-test request
func DecodeTest(inv dto.Invocation, opts common.Options) dto.WelcomeTestRequest {
	req := dto.WelcomeTestRequest{Invocation: inv}
	if userID := opts.UserID("user"); userID != nil {
		req.UserID = *userID
	}
	return req
}
