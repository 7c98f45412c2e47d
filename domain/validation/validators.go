// Package validation holds the pure checks run before any settings mutation.
// Validators never read or write the settings store.
package validation

import (
	"fmt"
	"regexp"

	"github.com/ssorr707/discord-system-bot2/domain/entities"
)

var hexColorPattern = regexp.MustCompile(`(?i)^#[0-9A-F]{6}$`)

// ValidateHexColor checks that s is a #RRGGBB colour (case-insensitive)
func ValidateHexColor(s string) error {
	if !hexColorPattern.MatchString(s) {
		return entities.NewValidationError("Invalid Color", "Please provide a valid hex color code (e.g., #7289DA).")
	}
	return nil
}

// ValidateRoleAssignable checks that role sits strictly below the bot's highest role
func ValidateRoleAssignable(role *entities.Role, botHighestPosition int) error {
	if role == nil {
		return entities.NewValidationError("Role Error", "The selected role could not be found.")
	}
	if role.Position >= botHighestPosition {
		return entities.NewValidationError("Role Error",
			fmt.Sprintf("I can't assign %s because it's higher than or equal to my highest role.", role.Mention()))
	}
	return nil
}

// ValidateRoleNotManaged rejects roles owned by an integration
func ValidateRoleNotManaged(role *entities.Role) error {
	if role != nil && role.Managed {
		return entities.NewValidationError("Invalid Role", "This role is managed by an integration and cannot be assigned manually.")
	}
	return nil
}

// ValidateTimeoutMinutes checks the auto-kick timeout bounds (inclusive)
func ValidateTimeoutMinutes(n int64) error {
	if n < entities.MinAutoKickTimeoutMinutes || n > entities.MaxAutoKickTimeoutMinutes {
		return entities.NewValidationError("Invalid Timeout",
			fmt.Sprintf("The auto-kick timeout must be between %d and %d minutes.",
				entities.MinAutoKickTimeoutMinutes, entities.MaxAutoKickTimeoutMinutes))
	}
	return nil
}

// ValidateVerificationMethod checks the method is supported
func ValidateVerificationMethod(m entities.VerificationMethod) error {
	if !m.IsValid() {
		return entities.NewValidationError("Invalid Method", "The verification method must be captcha, reaction or button.")
	}
	return nil
}

// ValidateVerificationEnable fails when enabling and no verification channel is set
func ValidateVerificationEnable(settings *entities.VerificationSettings) error {
	if settings.Enabled && !settings.HasVerificationChannel() {
		return entities.NewSetupRequired("Please set up the verification system first using `/verification-setup`.")
	}
	return nil
}

// ValidateWelcomeEnable fails when enabling and no welcome channel is set
func ValidateWelcomeEnable(settings *entities.WelcomeSettings) error {
	if settings.Enabled && !settings.HasChannel() {
		return entities.NewSetupRequired("Please set up the welcome system first using `/welcome-setup`.")
	}
	return nil
}

// ValidateWelcomeConfigured fails when the welcome channel is not set
func ValidateWelcomeConfigured(settings *entities.WelcomeSettings) error {
	if !settings.HasChannel() {
		return entities.NewSetupRequired("Please set up the welcome system first using `/welcome-setup`.")
	}
	return nil
}
