package verification

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
	CommandSetup  = "verification-setup"
	CommandToggle = "verification-toggle"
	CommandStatus = "verification-status"
)

// Feature handles the verification gate commands
type Feature struct {
	handler application.VerificationHandler
}

// NewFeature creates a new verification feature instance
func NewFeature(handler application.VerificationHandler) *Feature {
	return &Feature{handler: handler}
}

// HandleCommand routes verification commands to the handler and returns the outcome
func (f *Feature) HandleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) dto.Outcome {
	inv, err := common.NewInvocation(s, i)
	if err != nil {
		log.WithError(err).Warn("Rejected verification command")
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return dto.OutcomeError
	}

	opts := common.CommandOptions(i)

	var resp *dto.Response
	switch i.ApplicationCommandData().Name {
	case CommandSetup:
		req, ok := DecodeSetup(inv, opts)
		if !ok {
			common.RespondWithError(s, i, "A channel and a verified role are required.")
			return dto.OutcomeValidationFailed
		}
		resp = f.handler.Setup(ctx, req)
	case CommandToggle:
		resp = f.handler.Toggle(ctx, DecodeToggle(inv, opts))
	case CommandStatus:
		resp = f.handler.Status(ctx, dto.StatusRequest{Invocation: inv})
	default:
		return dto.OutcomeError
	}

	common.SendResponse(s, i, resp, false)
	return resp.Outcome
}

// DecodeSetup builds a setup request; ok is false when a required option is missing
func DecodeSetup(inv dto.Invocation, opts common.Options) (req dto.VerificationSetupRequest, ok bool) {
	channel := opts.Channel("channel")
	verifiedRole := opts.Role("verified_role")
	if channel == nil || verifiedRole == nil {
		return req, false
	}

	return dto.VerificationSetupRequest{
		Invocation:             inv,
		Channel:                *channel,
		VerifiedRole:           *verifiedRole,
		UnverifiedRole:         opts.Role("unverified_role"),
		LogChannel:             opts.Channel("log_channel"),
		WelcomeMessage:         opts.String("welcome_message"),
		Method:                 opts.String("method"),
		AutoKick:               opts.Bool("auto_kick"),
		AutoKickTimeoutMinutes: opts.Int("auto_kick_timeout"),
	}, true
}

// DecodeToggle builds a toggle request
func DecodeToggle(inv dto.Invocation, opts common.Options) dto.VerificationToggleRequest {
	req := dto.VerificationToggleRequest{Invocation: inv}
	if enabled := opts.Bool("enabled"); enabled != nil {
		req.Enabled = *enabled
	}
	return req
}
