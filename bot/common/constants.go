package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorError   = 0xED4245 // Red (alias for ColorDanger)
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
)

// Discord embed limits
const (
	MaxEmbedDescription = 4096
	MaxFieldValue       = 1024
	MaxEmbedFields      = 25
)
