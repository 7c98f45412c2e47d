package entities

import "strconv"

// Role is the live view of a guild role needed for hierarchy checks
type Role struct {
	ID       int64
	Name     string
	Position int
	Managed  bool // Owned by an integration; cannot be assigned manually
}

// Mention returns the role mention markup
func (r *Role) Mention() string {
	return "<@&" + formatID(r.ID) + ">"
}

// Channel is the live view of a guild channel
type Channel struct {
	ID   int64
	Name string
}

// Mention returns the channel mention markup
func (c *Channel) Mention() string {
	return "<#" + formatID(c.ID) + ">"
}

// Member is the live view of a guild member
type Member struct {
	UserID    int64
	Username  string
	Tag       string
	AvatarURL string
}

// Mention returns the user mention markup
func (m *Member) Mention() string {
	return "<@" + formatID(m.UserID) + ">"
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
