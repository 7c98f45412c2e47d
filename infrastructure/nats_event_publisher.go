package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ssorr707/discord-system-bot2/domain/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	sourceService  = "guild-settings-bot"
	publishTimeout = 5 * time.Second
)

// MessagePublisher sends raw envelope bytes to a subject.
// NATSClient publishes through JetStream; tests substitute a recorder.
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

var _ MessagePublisher = (*NATSClient)(nil)

// EventEnvelope wraps every event published to the bus
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher implements the EventPublisher interface using NATS
type NATSEventPublisher struct {
	publisher     MessagePublisher
	subjectMapper *EventSubjectMapper
	onPublished   func(eventType string)
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher.
// onPublished, if set, is called after every successful publish.
func NewNATSEventPublisher(publisher MessagePublisher, subjectMapper *EventSubjectMapper, onPublished func(eventType string)) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		onPublished:   onPublished,
		now:           time.Now,
	}
}

// Publish publishes an event to NATS using the appropriate subject
func (p *NATSEventPublisher) Publish(event events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	subject := p.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     p.now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.publisher.Publish(ctx, subject, envelopeData); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	if p.onPublished != nil {
		p.onPublished(envelope.EventType)
	}

	log.WithFields(log.Fields{
		"eventType": envelope.EventType,
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")

	return nil
}
