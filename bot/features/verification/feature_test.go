package verification

import (
	"testing"

	"github.com/ssorr707/discord-system-bot2/application/dto"
	"github.com/ssorr707/discord-system-bot2/bot/common"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSetup(t *testing.T) {
	t.Parallel()

	inv := dto.Invocation{GuildID: 42, UserID: 1001}

	t.Run("all options", func(t *testing.T) {
		t.Parallel()

		opts := common.NewOptions([]*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "channel", Type: discordgo.ApplicationCommandOptionChannel, Value: "500"},
			{Name: "verified_role", Type: discordgo.ApplicationCommandOptionRole, Value: "600"},
			{Name: "unverified_role", Type: discordgo.ApplicationCommandOptionRole, Value: "601"},
			{Name: "log_channel", Type: discordgo.ApplicationCommandOptionChannel, Value: "700"},
			{Name: "method", Type: discordgo.ApplicationCommandOptionString, Value: "reaction"},
			{Name: "auto_kick", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
			{Name: "auto_kick_timeout", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(90)},
		}, nil)

		req, ok := DecodeSetup(inv, opts)

		require.True(t, ok)
		assert.Equal(t, inv, req.Invocation)
		assert.Equal(t, int64(500), req.Channel.ID)
		assert.Equal(t, int64(600), req.VerifiedRole.ID)
		require.NotNil(t, req.UnverifiedRole)
		assert.Equal(t, int64(601), req.UnverifiedRole.ID)
		require.NotNil(t, req.LogChannel)
		assert.Equal(t, int64(700), req.LogChannel.ID)
		assert.Equal(t, "reaction", *req.Method)
		assert.True(t, *req.AutoKick)
		assert.Equal(t, int64(90), *req.AutoKickTimeoutMinutes)
		assert.Nil(t, req.WelcomeMessage)
	})

	t.Run("missing verified role", func(t *testing.T) {
		t.Parallel()

		opts := common.NewOptions([]*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "channel", Type: discordgo.ApplicationCommandOptionChannel, Value: "500"},
		}, nil)

		_, ok := DecodeSetup(inv, opts)
		assert.False(t, ok)
	})
}

func TestDecodeToggle(t *testing.T) {
	t.Parallel()

	opts := common.NewOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "enabled", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
	}, nil)

	assert.True(t, DecodeToggle(dto.Invocation{}, opts).Enabled)
	assert.False(t, DecodeToggle(dto.Invocation{}, common.NewOptions(nil, nil)).Enabled)
}
