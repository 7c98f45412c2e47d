package testutil

import (
	"github.com/ssorr707/discord-system-bot2/domain/entities"
)

// CreateTestVerificationSettings returns configured, enabled verification settings
func CreateTestVerificationSettings(guildID int64) *entities.VerificationSettings {
	settings := entities.DefaultVerificationSettings(guildID)
	channelID := int64(1001)
	roleID := int64(2001)
	settings.Enabled = true
	settings.VerificationChannelID = &channelID
	settings.VerifiedRoleID = &roleID
	settings.Method = entities.VerificationMethodButton
	return settings
}

// CreateTestWelcomeSettings returns an enabled welcome configuration with roleIDs auto-assigned
func CreateTestWelcomeSettings(guildID int64, roleIDs ...int64) *entities.WelcomeSettings {
	settings := entities.DefaultWelcomeSettings(guildID)
	channelID := int64(3001)
	settings.Enabled = true
	settings.ChannelID = &channelID
	settings.RoleIDs = append([]int64{}, roleIDs...)
	return settings
}

// Overwrite copies src into dst, for use as a repository mutate function
func Overwrite[T any](src *T) func(*T) error {
	return func(dst *T) error {
		*dst = *src
		return nil
	}
}
