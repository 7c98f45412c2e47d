package entities

import "strings"

// Template placeholders understood by welcome messages
const (
	PlaceholderUser   = "{user}"
	PlaceholderServer = "{server}"
)

// RenderTemplate replaces every placeholder occurrence in template
func RenderTemplate(template, user, server string) string {
	return strings.NewReplacer(PlaceholderUser, user, PlaceholderServer, server).Replace(template)
}
