package bot

import (
	"fmt"

	"github.com/ssorr707/discord-system-bot2/bot/features/verification"
	"github.com/ssorr707/discord-system-bot2/bot/features/welcome"
	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var (
	manageGuildPermission int64 = discordgo.PermissionManageGuild
	minTimeoutMinutes           = float64(entities.MinAutoKickTimeoutMinutes)
	textChannelTypes            = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := applicationCommands()

	// Register commands to specific guild if configured, otherwise globally
	guildID := b.config.GuildID

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, guildID, cmd); err != nil {
			return fmt.Errorf("cannot create command %s: %w", cmd.Name, err)
		}
	}

	log.WithFields(log.Fields{
		"count":    len(commands),
		"guild_id": guildID,
	}).Info("Slash commands registered")
	return nil
}

// applicationCommands declares every slash command the bot serves
func applicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     verification.CommandSetup,
			Description:              "Set up the verification system for your server",
			DefaultMemberPermissions: &manageGuildPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "The channel where users will verify themselves",
					ChannelTypes: textChannelTypes,
					Required:     true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "verified_role",
					Description: "The role to give users after verification",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "unverified_role",
					Description: "The role to give users before verification (optional)",
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "log_channel",
					Description:  "The channel where verification logs will be sent",
					ChannelTypes: textChannelTypes,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "welcome_message",
					Description: "The message shown in the verification channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "method",
					Description: "The verification method to use",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Captcha", Value: string(entities.VerificationMethodCaptcha)},
						{Name: "Reaction", Value: string(entities.VerificationMethodReaction)},
						{Name: "Button", Value: string(entities.VerificationMethodButton)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "auto_kick",
					Description: "Kick users who don't verify within the timeout",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "auto_kick_timeout",
					Description: "Minutes before unverified users are kicked (default 30)",
					MinValue:    &minTimeoutMinutes,
					MaxValue:    entities.MaxAutoKickTimeoutMinutes,
				},
			},
		},
		{
			Name:                     verification.CommandToggle,
			Description:              "Enable or disable the verification system",
			DefaultMemberPermissions: &manageGuildPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "Whether verification should be enabled",
					Required:    true,
				},
			},
		},
		{
			Name:                     verification.CommandStatus,
			Description:              "Check the status of the verification system",
			DefaultMemberPermissions: &manageGuildPermission,
		},
		{
			Name:                     welcome.CommandSetup,
			Description:              "Set up the welcome system for your server",
			DefaultMemberPermissions: &manageGuildPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "The channel where welcome messages will be sent",
					ChannelTypes: textChannelTypes,
					Required:     true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "The welcome message. Use {user} for the member and {server} for the server name",
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "image",
					Description: "Whether to show the member's avatar in the welcome message",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "color",
					Description: "The embed color as a hex code (e.g. #7289DA)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "dm",
					Description: "Whether to also send the welcome message as a DM",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "dm-message",
					Description: "The DM message. Use {user} for the member and {server} for the server name",
				},
			},
		},
		{
			Name:                     welcome.CommandToggle,
			Description:              "Enable or disable the welcome system",
			DefaultMemberPermissions: &manageGuildPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "Whether the welcome system should be enabled",
					Required:    true,
				},
			},
		},
		{
			Name:                     welcome.CommandStatus,
			Description:              "Check the status of the welcome system",
			DefaultMemberPermissions: &manageGuildPermission,
		},
		{
			Name:                     welcome.CommandMessage,
			Description:              "Customize welcome messages",
			DefaultMemberPermissions: &manageGuildPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set the welcome message",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "The welcome message. Use {user} and {server} as placeholders",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set-dm",
					Description: "Set the welcome DM message",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "The DM message. Use {user} and {server} as placeholders",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "toggle-dm",
					Description: "Enable or disable welcome DMs",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Whether to send welcome DMs",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "toggle-image",
					Description: "Enable or disable welcome images",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Whether to show welcome images",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set-color",
					Description: "Set the welcome message color",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "color",
							Description: "The color as a hex code (e.g. #7289DA)",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:                     welcome.CommandRoles,
			Description:              "Manage roles automatically assigned to new members",
			DefaultMemberPermissions: &manageGuildPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a role to assign to new members",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "The role to assign",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Stop assigning a role to new members",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "The role to remove",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List roles assigned to new members",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Clear all automatic roles",
				},
			},
		},
		{
			Name:                     welcome.CommandTest,
			Description:              "Send a test welcome message",
			DefaultMemberPermissions: &manageGuildPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The member to greet (defaults to you)",
				},
			},
		},
	}
}
