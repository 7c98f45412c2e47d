package application

import (
	"context"

	"github.com/ssorr707/discord-system-bot2/application/dto"
	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/stretchr/testify/mock"
)

// mockGuildPlatform is a mock implementation of GuildPlatform
type mockGuildPlatform struct {
	mock.Mock
}

func (m *mockGuildPlatform) BotHighestRolePosition(ctx context.Context, guildID int64) (int, error) {
	args := m.Called(ctx, guildID)
	return args.Int(0), args.Error(1)
}

func (m *mockGuildPlatform) GetRole(ctx context.Context, guildID, roleID int64) (*entities.Role, error) {
	args := m.Called(ctx, guildID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Role), args.Error(1)
}

func (m *mockGuildPlatform) GetChannel(ctx context.Context, guildID, channelID int64) (*entities.Channel, error) {
	args := m.Called(ctx, guildID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Channel), args.Error(1)
}

func (m *mockGuildPlatform) GetMember(ctx context.Context, guildID, userID int64) (*entities.Member, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *mockGuildPlatform) CanSendMessages(ctx context.Context, guildID, channelID int64) (bool, error) {
	args := m.Called(ctx, guildID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockGuildPlatform) SendMessage(ctx context.Context, channelID int64, msg dto.OutboundMessage) (int64, error) {
	args := m.Called(ctx, channelID, msg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGuildPlatform) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	args := m.Called(ctx, channelID, messageID, emoji)
	return args.Error(0)
}

func (m *mockGuildPlatform) SendDirectMessage(ctx context.Context, userID int64, msg dto.OutboundMessage) error {
	args := m.Called(ctx, userID, msg)
	return args.Error(0)
}

type mockDeferrer struct {
	mock.Mock
}

func (m *mockDeferrer) Defer(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func adminInvocation(guildID int64) dto.Invocation {
	return dto.Invocation{
		GuildID:     guildID,
		GuildName:   "Test Guild",
		UserID:      1001,
		Username:    "admin",
		Permissions: dto.PermissionManageGuild,
	}
}

func memberInvocation(guildID int64) dto.Invocation {
	return dto.Invocation{
		GuildID:   guildID,
		GuildName: "Test Guild",
		UserID:    2002,
		Username:  "member",
	}
}
