package dto

import "github.com/ssorr707/discord-system-bot2/domain/entities"

// VerificationSetupRequest is the decoded /verification-setup command
type VerificationSetupRequest struct {
	Invocation
	Channel                entities.Channel
	VerifiedRole           entities.Role
	UnverifiedRole         *entities.Role
	LogChannel             *entities.Channel
	WelcomeMessage         *string
	Method                 *string
	AutoKick               *bool
	AutoKickTimeoutMinutes *int64
}

// VerificationToggleRequest is the decoded /verification-toggle command
type VerificationToggleRequest struct {
	Invocation
	Enabled bool
}

// StatusRequest is used by the status commands, which take no options
type StatusRequest struct {
	Invocation
}

// WelcomeSetupRequest is the decoded /welcome-setup command
type WelcomeSetupRequest struct {
	Invocation
	Channel   entities.Channel
	Message   *string
	UseImage  *bool
	Color     *string
	DMEnabled *bool
	DMMessage *string
}

// WelcomeToggleRequest is the decoded /welcome-toggle command
type WelcomeToggleRequest struct {
	Invocation
	Enabled bool
}

// WelcomeMessageAction is a /welcome-message subcommand
type WelcomeMessageAction string

const (
	WelcomeMessageSet         WelcomeMessageAction = "set"
	WelcomeMessageSetDM       WelcomeMessageAction = "set-dm"
	WelcomeMessageToggleDM    WelcomeMessageAction = "toggle-dm"
	WelcomeMessageToggleImage WelcomeMessageAction = "toggle-image"
	WelcomeMessageSetColor    WelcomeMessageAction = "set-color"
)

// WelcomeMessageRequest is the decoded /welcome-message command.
// Text carries the message or colour, Enabled the toggle value.
type WelcomeMessageRequest struct {
	Invocation
	Action  WelcomeMessageAction
	Text    string
	Enabled bool
}

// WelcomeRolesAction is a /welcome-roles subcommand
type WelcomeRolesAction string

const (
	WelcomeRolesAdd    WelcomeRolesAction = "add"
	WelcomeRolesRemove WelcomeRolesAction = "remove"
	WelcomeRolesList   WelcomeRolesAction = "list"
	WelcomeRolesClear  WelcomeRolesAction = "clear"
)

// WelcomeRolesRequest is the decoded /welcome-roles command. Role is set for add and remove.
type WelcomeRolesRequest struct {
	Invocation
	Action WelcomeRolesAction
	Role   *entities.Role
}

// WelcomeTestRequest is the decoded /welcome-test command. A zero UserID targets the invoker.
type WelcomeTestRequest struct {
	Invocation
	UserID int64
}
