package observability

// Metric name prefixes
const (
	MetricPrefix = "guild_settings_bot"
)

// Metric names
const (
	// Command metrics
	CommandsTotal   = MetricPrefix + ".commands.total"
	CommandDuration = MetricPrefix + ".commands.duration"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelCommand   = "command"
	LabelOutcome   = "outcome"
	LabelEventType = "event_type"
)

// Command outcomes
const (
	OutcomeSuccess          = "success"
	OutcomePermissionDenied = "permission_denied"
	OutcomeSetupRequired    = "setup_required"
	OutcomeValidationFailed = "validation_failed"
	OutcomeError            = "error"
)
