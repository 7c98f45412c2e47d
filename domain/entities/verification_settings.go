package entities

import (
	"strings"
	"time"
)

// VerificationMethod is how members prove they are human
type VerificationMethod string

const (
	VerificationMethodCaptcha  VerificationMethod = "captcha"
	VerificationMethodReaction VerificationMethod = "reaction"
	VerificationMethodButton   VerificationMethod = "button"
)

// IsValid reports whether the method is one of the supported methods
func (m VerificationMethod) IsValid() bool {
	switch m {
	case VerificationMethodCaptcha, VerificationMethodReaction, VerificationMethodButton:
		return true
	}
	return false
}

// DisplayName returns the method with its first letter capitalised
func (m VerificationMethod) DisplayName() string {
	if m == "" {
		return "Captcha"
	}
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Auto-kick timeout bounds, in minutes
const (
	MinAutoKickTimeoutMinutes     = 5
	MaxAutoKickTimeoutMinutes     = 1440
	DefaultAutoKickTimeoutMinutes = 30
)

// DefaultVerificationWelcomeMessage is shown in the verification prompt when none is configured
const DefaultVerificationWelcomeMessage = "Welcome to the server! Please verify yourself to access all channels."

// VerificationSettings represents the member-verification gate configuration of a guild
type VerificationSettings struct {
	GuildID               int64              `db:"guild_id" json:"guild_id"`
	Enabled               bool               `db:"enabled" json:"enabled"`
	VerificationChannelID *int64             `db:"verification_channel_id" json:"verification_channel_id"`
	LogChannelID          *int64             `db:"log_channel_id" json:"log_channel_id"`
	VerifiedRoleID        *int64             `db:"verified_role_id" json:"verified_role_id"`
	UnverifiedRoleID      *int64             `db:"unverified_role_id" json:"unverified_role_id"`
	WelcomeMessage        string             `db:"welcome_message" json:"welcome_message"`
	Method                VerificationMethod `db:"method" json:"method"`
	AutoKick              bool               `db:"auto_kick" json:"auto_kick"`
	AutoKickTimeoutMs     int64              `db:"auto_kick_timeout_ms" json:"auto_kick_timeout_ms"`
	VerificationMessageID *int64             `db:"verification_message_id" json:"verification_message_id"`
}

// DefaultVerificationSettings returns the record every guild starts from
func DefaultVerificationSettings(guildID int64) *VerificationSettings {
	return &VerificationSettings{
		GuildID:           guildID,
		Enabled:           false,
		WelcomeMessage:    DefaultVerificationWelcomeMessage,
		Method:            VerificationMethodCaptcha,
		AutoKick:          false,
		AutoKickTimeoutMs: MinutesToMillis(DefaultAutoKickTimeoutMinutes),
	}
}

// MinutesToMillis converts a timeout in minutes to the stored millisecond value
func MinutesToMillis(minutes int64) int64 {
	return int64(time.Duration(minutes) * time.Minute / time.Millisecond)
}

// AutoKickTimeoutMinutes returns the stored timeout in whole minutes
func (vs *VerificationSettings) AutoKickTimeoutMinutes() int64 {
	return vs.AutoKickTimeoutMs / MinutesToMillis(1)
}

// HasVerificationChannel checks if the verification channel is configured
func (vs *VerificationSettings) HasVerificationChannel() bool {
	return vs.VerificationChannelID != nil && *vs.VerificationChannelID > 0
}

// HasVerifiedRole checks if the verified role is configured
func (vs *VerificationSettings) HasVerifiedRole() bool {
	return vs.VerifiedRoleID != nil && *vs.VerifiedRoleID > 0
}

// HasUnverifiedRole checks if the unverified role is configured
func (vs *VerificationSettings) HasUnverifiedRole() bool {
	return vs.UnverifiedRoleID != nil && *vs.UnverifiedRoleID > 0
}

// HasLogChannel checks if the log channel is configured
func (vs *VerificationSettings) HasLogChannel() bool {
	return vs.LogChannelID != nil && *vs.LogChannelID > 0
}

// Clone returns a deep copy
func (vs *VerificationSettings) Clone() *VerificationSettings {
	c := *vs
	c.VerificationChannelID = cloneID(vs.VerificationChannelID)
	c.LogChannelID = cloneID(vs.LogChannelID)
	c.VerifiedRoleID = cloneID(vs.VerifiedRoleID)
	c.UnverifiedRoleID = cloneID(vs.UnverifiedRoleID)
	c.VerificationMessageID = cloneID(vs.VerificationMessageID)
	return &c
}

// OptionalID is a partial-update value for a nullable ID field.
// A nil *OptionalID leaves the field alone; a non-nil one with a nil ID clears it.
type OptionalID struct {
	ID *int64
}

// SetID returns an OptionalID that sets the field to id
func SetID(id int64) *OptionalID {
	return &OptionalID{ID: &id}
}

// ClearID returns an OptionalID that unsets the field
func ClearID() *OptionalID {
	return &OptionalID{}
}

func (o *OptionalID) apply(dst **int64) {
	if o == nil {
		return
	}
	*dst = cloneID(o.ID)
}

// VerificationSettingsUpdate is a partial update; nil fields retain their stored value
type VerificationSettingsUpdate struct {
	Enabled               *bool
	VerificationChannelID *OptionalID
	LogChannelID          *OptionalID
	VerifiedRoleID        *OptionalID
	UnverifiedRoleID      *OptionalID
	WelcomeMessage        *string
	Method                *VerificationMethod
	AutoKick              *bool
	AutoKickTimeoutMs     *int64
	VerificationMessageID *OptionalID
}

// ApplyTo merges the supplied fields into settings
func (u VerificationSettingsUpdate) ApplyTo(settings *VerificationSettings) {
	if u.Enabled != nil {
		settings.Enabled = *u.Enabled
	}
	u.VerificationChannelID.apply(&settings.VerificationChannelID)
	u.LogChannelID.apply(&settings.LogChannelID)
	u.VerifiedRoleID.apply(&settings.VerifiedRoleID)
	u.UnverifiedRoleID.apply(&settings.UnverifiedRoleID)
	if u.WelcomeMessage != nil {
		settings.WelcomeMessage = *u.WelcomeMessage
	}
	if u.Method != nil {
		settings.Method = *u.Method
	}
	if u.AutoKick != nil {
		settings.AutoKick = *u.AutoKick
	}
	if u.AutoKickTimeoutMs != nil {
		settings.AutoKickTimeoutMs = *u.AutoKickTimeoutMs
	}
	u.VerificationMessageID.apply(&settings.VerificationMessageID)
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
