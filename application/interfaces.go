package application

import (
	"context"

	"github.com/ssorr707/discord-system-bot2/application/dto"
	"github.com/ssorr707/discord-system-bot2/domain/entities"
)

// GuildPlatform is the slice of the chat platform the command handlers need.
// Lookups return (nil, nil) when the object does not exist.
type GuildPlatform interface {
	// BotHighestRolePosition returns the position of the bot's highest role in the guild
	BotHighestRolePosition(ctx context.Context, guildID int64) (int, error)

	GetRole(ctx context.Context, guildID, roleID int64) (*entities.Role, error)
	GetChannel(ctx context.Context, guildID, channelID int64) (*entities.Channel, error)
	GetMember(ctx context.Context, guildID, userID int64) (*entities.Member, error)

	// CanSendMessages reports whether the bot may post in the channel
	CanSendMessages(ctx context.Context, guildID, channelID int64) (bool, error)

	// SendMessage posts msg to the channel and returns the new message ID
	SendMessage(ctx context.Context, channelID int64, msg dto.OutboundMessage) (int64, error)
	AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error
	SendDirectMessage(ctx context.Context, userID int64, msg dto.OutboundMessage) error
}

// Deferrer acknowledges an interaction so the final reply can be sent later
type Deferrer interface {
	Defer(ctx context.Context) error
}

// VerificationHandler handles the verification gate commands
type VerificationHandler interface {
	Setup(ctx context.Context, req dto.VerificationSetupRequest) *dto.Response
	Toggle(ctx context.Context, req dto.VerificationToggleRequest) *dto.Response
	Status(ctx context.Context, req dto.StatusRequest) *dto.Response
}

// WelcomeHandler handles the welcome flow commands
type WelcomeHandler interface {
	Setup(ctx context.Context, req dto.WelcomeSetupRequest) *dto.Response
	Toggle(ctx context.Context, req dto.WelcomeToggleRequest) *dto.Response
	Status(ctx context.Context, req dto.StatusRequest) *dto.Response
	Message(ctx context.Context, req dto.WelcomeMessageRequest) *dto.Response
	Roles(ctx context.Context, req dto.WelcomeRolesRequest) *dto.Response
	// Test may call deferrer before doing slow work; the returned response is then the edited reply
	Test(ctx context.Context, req dto.WelcomeTestRequest, deferrer Deferrer) *dto.Response
}
