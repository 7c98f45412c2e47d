package entities

// Welcome defaults
const (
	DefaultWelcomeMessage   = "Welcome to {server}, {user}! We hope you enjoy your stay."
	DefaultWelcomeDMMessage = "Welcome to {server}, {user}! We're glad to have you."
	DefaultWelcomeColor     = "#7289DA"
)

// WelcomeSettings represents the new-member welcome flow configuration of a guild
type WelcomeSettings struct {
	GuildID   int64   `db:"guild_id" json:"guild_id"`
	Enabled   bool    `db:"enabled" json:"enabled"`
	ChannelID *int64  `db:"channel_id" json:"channel_id"`
	Message   string  `db:"message" json:"message"`
	UseImage  bool    `db:"use_image" json:"use_image"`
	Color     string  `db:"color" json:"color"`
	DMEnabled bool    `db:"dm_enabled" json:"dm_enabled"`
	DMMessage string  `db:"dm_message" json:"dm_message"`
	RoleIDs   []int64 `db:"role_ids" json:"role_ids"`
}

// DefaultWelcomeSettings returns the record every guild starts from
func DefaultWelcomeSettings(guildID int64) *WelcomeSettings {
	return &WelcomeSettings{
		GuildID:   guildID,
		Enabled:   false,
		Message:   DefaultWelcomeMessage,
		UseImage:  true,
		Color:     DefaultWelcomeColor,
		DMEnabled: false,
		DMMessage: DefaultWelcomeDMMessage,
		RoleIDs:   []int64{},
	}
}

// HasChannel checks if the welcome channel is configured
func (ws *WelcomeSettings) HasChannel() bool {
	return ws.ChannelID != nil && *ws.ChannelID > 0
}

// HasRole reports whether roleID is in the auto-role set
func (ws *WelcomeSettings) HasRole(roleID int64) bool {
	for _, id := range ws.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// AddRole inserts roleID into the auto-role set. It returns false if the role was already present.
func (ws *WelcomeSettings) AddRole(roleID int64) bool {
	if ws.HasRole(roleID) {
		return false
	}
	ws.RoleIDs = append(ws.RoleIDs, roleID)
	return true
}

// RemoveRole deletes roleID from the auto-role set. It returns false if the role was absent.
func (ws *WelcomeSettings) RemoveRole(roleID int64) bool {
	for i, id := range ws.RoleIDs {
		if id == roleID {
			ws.RoleIDs = append(ws.RoleIDs[:i:i], ws.RoleIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (ws *WelcomeSettings) Clone() *WelcomeSettings {
	c := *ws
	c.ChannelID = cloneID(ws.ChannelID)
	c.RoleIDs = append([]int64{}, ws.RoleIDs...)
	return &c
}

// normalizeRoles drops duplicate role IDs, keeping the first occurrence
func (ws *WelcomeSettings) normalizeRoles() {
	seen := make(map[int64]struct{}, len(ws.RoleIDs))
	roles := make([]int64, 0, len(ws.RoleIDs))
	for _, id := range ws.RoleIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		roles = append(roles, id)
	}
	ws.RoleIDs = roles
}

// WelcomeSettingsUpdate is a partial update; nil fields retain their stored value
type WelcomeSettingsUpdate struct {
	Enabled   *bool
	ChannelID *OptionalID
	Message   *string
	UseImage  *bool
	Color     *string
	DMEnabled *bool
	DMMessage *string
	RoleIDs   *[]int64
}

// ApplyTo merges the supplied fields into settings
func (u WelcomeSettingsUpdate) ApplyTo(settings *WelcomeSettings) {
	if u.Enabled != nil {
		settings.Enabled = *u.Enabled
	}
	u.ChannelID.apply(&settings.ChannelID)
	if u.Message != nil {
		settings.Message = *u.Message
	}
	if u.UseImage != nil {
		settings.UseImage = *u.UseImage
	}
	if u.Color != nil {
		settings.Color = *u.Color
	}
	if u.DMEnabled != nil {
		settings.DMEnabled = *u.DMEnabled
	}
	if u.DMMessage != nil {
		settings.DMMessage = *u.DMMessage
	}
	if u.RoleIDs != nil {
		settings.RoleIDs = append([]int64{}, (*u.RoleIDs)...)
		settings.normalizeRoles()
	}
}
