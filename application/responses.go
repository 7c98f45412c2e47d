package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/ssorr707/discord-system-bot2/application/dto"
	"github.com/ssorr707/discord-system-bot2/domain/entities"

	log "github.com/sirupsen/logrus"
)

const (
	// VerificationColor is the brand colour of verification prompts and status
	VerificationColor = "#5865F2"
	verifiedEmoji     = "✅"
)

// ErrorResponse maps err to a reply. SettingsErrors are shown as-is; anything
// else is logged and replaced with a generic message naming the failed action.
func ErrorResponse(err error, action string, fields log.Fields) *dto.Response {
	if settingsErr, ok := entities.AsSettingsError(err); ok {
		return dto.Failure(outcomeFor(settingsErr.Kind), settingsErr.Title, settingsErr.Reason)
	}

	log.WithFields(fields).WithError(err).Errorf("Unexpected error while %s", action)
	return dto.Failure(dto.OutcomeError, "Error", fmt.Sprintf("An error occurred while %s.", action))
}

func outcomeFor(kind entities.ErrorKind) dto.Outcome {
	switch kind {
	case entities.KindPermissionDenied:
		return dto.OutcomePermissionDenied
	case entities.KindSetupRequired:
		return dto.OutcomeSetupRequired
	default:
		return dto.OutcomeValidationFailed
	}
}

// requireManageGuild returns a PermissionDenied error unless the invoker can manage the guild
func requireManageGuild(inv dto.Invocation) error {
	if !inv.CanManageGuild() {
		return entities.NewPermissionDenied("You need the Manage Server permission to use this command.")
	}
	return nil
}

func logFields(inv dto.Invocation, command string) log.Fields {
	return log.Fields{
		"guild_id": inv.GuildID,
		"user_id":  inv.UserID,
		"command":  command,
	}
}

func enabledText(enabled bool) string {
	if enabled {
		return "Enabled"
	}
	return "Disabled"
}

func channelMention(id int64) string {
	return (&entities.Channel{ID: id}).Mention()
}

func roleMention(id int64) string {
	return (&entities.Role{ID: id}).Mention()
}

// describeChannel renders "<#id> (id)" or the unknown-channel fallback
func describeChannel(ctx context.Context, platform GuildPlatform, guildID, channelID int64) (string, error) {
	channel, err := platform.GetChannel(ctx, guildID, channelID)
	if err != nil {
		return "", err
	}
	if channel == nil {
		return fmt.Sprintf("Unknown Channel (%d)", channelID), nil
	}
	return fmt.Sprintf("%s (%d)", channel.Mention(), channel.ID), nil
}

// describeRole renders "<@&id> (id)" or the unknown-role fallback
func describeRole(ctx context.Context, platform GuildPlatform, guildID, roleID int64) (string, error) {
	role, err := platform.GetRole(ctx, guildID, roleID)
	if err != nil {
		return "", err
	}
	if role == nil {
		return fmt.Sprintf("Unknown Role (%d)", roleID), nil
	}
	return fmt.Sprintf("%s (%d)", role.Mention(), role.ID), nil
}

func describeRoles(ctx context.Context, platform GuildPlatform, guildID int64, roleIDs []int64) (string, error) {
	lines := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		line, err := describeRole(ctx, platform, guildID, id)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
