package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/agendape/agenda-api/internal/model"
)

const (
	// StreamName is the name of the agenda lifecycle stream.
	StreamName = "AGENDA"

	// SubjectPrefix is the prefix for all agenda subjects.
	SubjectPrefix = "agenda"
)

// Lifecycle actions published on event mutations.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LifecycleEvent is the payload published for every store mutation, so
// downstream consumers (notifications, audit, sync) can follow along.
type LifecycleEvent struct {
	Action    string            `json:"action"`
	Event     model.AgendaEvent `json:"event"`
	Timestamp time.Time         `json:"timestamp"`
}

// StreamManager handles JetStream stream operations.
type StreamManager struct {
	client *Client
}

// NewStreamManager creates a new stream manager.
func NewStreamManager(client *Client) *StreamManager {
	return &StreamManager{client: client}
}

// EnsureStream ensures the agenda stream exists with proper configuration.
func (m *StreamManager) EnsureStream(ctx context.Context) error {
	js := m.client.JetStream()

	// Check if stream exists
	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	// Create stream
	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      365 * 24 * time.Hour, // 1 year
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Agenda event lifecycle notifications",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// LifecycleSubject returns the subject for a lifecycle action on an event.
func LifecycleSubject(action, eventID string) string {
	return fmt.Sprintf("%s.events.%s.%s", SubjectPrefix, action, eventID)
}

// PublishLifecycle publishes a lifecycle event to JetStream.
func (m *StreamManager) PublishLifecycle(ctx context.Context, action string, ev model.AgendaEvent) (uint64, error) {
	payload := LifecycleEvent{
		Action:    action,
		Event:     ev,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal lifecycle event: %w", err)
	}

	ack, err := m.client.JetStream().Publish(ctx, LifecycleSubject(action, ev.ID), data)
	if err != nil {
		return 0, fmt.Errorf("failed to publish lifecycle event: %w", err)
	}

	return ack.Sequence, nil
}
