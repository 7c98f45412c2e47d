package common

import (
	"fmt"
	"strconv"

	"github.com/ssorr707/discord-system-bot2/application/dto"

	"github.com/bwmarrin/discordgo"
)

// ParseID converts a Discord snowflake string into an int64
func ParseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatID converts an int64 ID back into a Discord snowflake string
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// NewInvocation describes the guild member who triggered the interaction
func NewInvocation(s *discordgo.Session, i *discordgo.InteractionCreate) (dto.Invocation, error) {
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		return dto.Invocation{}, fmt.Errorf("interaction %s was not sent from a guild", i.ID)
	}

	guildID, err := ParseID(i.GuildID)
	if err != nil {
		return dto.Invocation{}, fmt.Errorf("invalid guild ID %q: %w", i.GuildID, err)
	}
	userID, err := ParseID(i.Member.User.ID)
	if err != nil {
		return dto.Invocation{}, fmt.Errorf("invalid user ID %q: %w", i.Member.User.ID, err)
	}

	inv := dto.Invocation{
		GuildID:     guildID,
		UserID:      userID,
		Username:    i.Member.User.Username,
		Permissions: i.Member.Permissions,
	}
	if s != nil && s.State != nil {
		if guild, err := s.State.Guild(i.GuildID); err == nil {
			inv.GuildName = guild.Name
			inv.MemberCount = guild.MemberCount
		}
	}
	return inv, nil
}
