package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ssorr707/discord-system-bot2/application"
	"github.com/ssorr707/discord-system-bot2/application/dto"
	"github.com/ssorr707/discord-system-bot2/bot/common"
	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// sendPermissions are the channel permissions required to post a message
const sendPermissions = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages

// discordPlatform implements application.GuildPlatform on a discordgo session.
// Lookups prefer the gateway state cache and fall back to the REST API.
type discordPlatform struct {
	session *discordgo.Session
}

var _ application.GuildPlatform = (*discordPlatform)(nil)

// NewPlatform creates a GuildPlatform backed by the session
func NewPlatform(session *discordgo.Session) application.GuildPlatform {
	return &discordPlatform{session: session}
}

func (p *discordPlatform) BotHighestRolePosition(ctx context.Context, guildID int64) (int, error) {
	gid := common.FormatID(guildID)
	member, err := p.member(ctx, gid, p.session.State.User.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to get bot member: %w", err)
	}
	roles, err := p.roles(ctx, gid)
	if err != nil {
		return 0, err
	}
	return highestPosition(member.Roles, roles), nil
}

func (p *discordPlatform) GetRole(ctx context.Context, guildID, roleID int64) (*entities.Role, error) {
	roles, err := p.roles(ctx, common.FormatID(guildID))
	if err != nil {
		return nil, err
	}
	rid := common.FormatID(roleID)
	for _, r := range roles {
		if r.ID == rid {
			return &entities.Role{ID: roleID, Name: r.Name, Position: r.Position, Managed: r.Managed}, nil
		}
	}
	return nil, nil
}

func (p *discordPlatform) GetChannel(ctx context.Context, guildID, channelID int64) (*entities.Channel, error) {
	cid := common.FormatID(channelID)
	channel, err := p.session.State.Channel(cid)
	if err != nil {
		channel, err = p.session.Channel(cid, discordgo.WithContext(ctx))
	}
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel %d: %w", channelID, err)
	}
	if channel.GuildID != common.FormatID(guildID) {
		return nil, nil
	}
	return &entities.Channel{ID: channelID, Name: channel.Name}, nil
}

func (p *discordPlatform) GetMember(ctx context.Context, guildID, userID int64) (*entities.Member, error) {
	member, err := p.member(ctx, common.FormatID(guildID), common.FormatID(userID))
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member %d: %w", userID, err)
	}
	return &entities.Member{
		UserID:    userID,
		Username:  member.User.Username,
		Tag:       member.User.String(),
		AvatarURL: member.AvatarURL(""),
	}, nil
}

func (p *discordPlatform) CanSendMessages(ctx context.Context, guildID, channelID int64) (bool, error) {
	botID := p.session.State.User.ID
	cid := common.FormatID(channelID)

	perms, err := p.session.State.UserChannelPermissions(botID, cid)
	if err != nil {
		perms, err = p.session.UserChannelPermissions(botID, cid, discordgo.WithContext(ctx))
	}
	if err != nil {
		return false, fmt.Errorf("failed to get permissions in channel %d: %w", channelID, err)
	}
	return hasPermissions(perms, sendPermissions), nil
}

func (p *discordPlatform) SendMessage(ctx context.Context, channelID int64, msg dto.OutboundMessage) (int64, error) {
	sent, err := p.session.ChannelMessageSendComplex(common.FormatID(channelID), common.BuildMessageSend(msg), discordgo.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	return common.ParseID(sent.ID)
}

func (p *discordPlatform) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	return p.session.MessageReactionAdd(common.FormatID(channelID), common.FormatID(messageID), emoji, discordgo.WithContext(ctx))
}

func (p *discordPlatform) SendDirectMessage(ctx context.Context, userID int64, msg dto.OutboundMessage) error {
	dm, err := p.session.UserChannelCreate(common.FormatID(userID), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	_, err = p.session.ChannelMessageSendComplex(dm.ID, common.BuildMessageSend(msg), discordgo.WithContext(ctx))
	return err
}

func (p *discordPlatform) member(ctx context.Context, guildID, userID string) (*discordgo.Member, error) {
	if member, err := p.session.State.Member(guildID, userID); err == nil {
		return member, nil
	}
	return p.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
}

func (p *discordPlatform) roles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	if guild, err := p.session.State.Guild(guildID); err == nil && len(guild.Roles) > 0 {
		return guild.Roles, nil
	}
	roles, err := p.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get guild roles: %w", err)
	}
	return roles, nil
}

// highestPosition returns the highest position among the member's roles, or 0 with none
func highestPosition(memberRoles []string, guildRoles []*discordgo.Role) int {
	held := make(map[string]struct{}, len(memberRoles))
	for _, id := range memberRoles {
		held[id] = struct{}{}
	}

	highest := 0
	for _, r := range guildRoles {
		if _, ok := held[r.ID]; ok && r.Position > highest {
			highest = r.Position
		}
	}
	return highest
}

func hasPermissions(perms, required int64) bool {
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&required == required
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
