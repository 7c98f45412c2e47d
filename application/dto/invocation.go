package dto

// Permission bits as sent by the platform with each interaction
const (
	PermissionAdministrator int64 = 1 << 3
	PermissionManageGuild   int64 = 1 << 5
)

// Invocation describes who ran a command and where
type Invocation struct {
	GuildID     int64
	GuildName   string
	MemberCount int
	UserID      int64
	Username    string
	Permissions int64 // Effective permissions of the invoking member
}

// CanManageGuild reports whether the invoker holds the manage-server capability
func (i Invocation) CanManageGuild() bool {
	return i.Permissions&(PermissionManageGuild|PermissionAdministrator) != 0
}
