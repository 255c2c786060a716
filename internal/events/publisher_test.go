package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
)

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Record(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	id := uint(42)
	err := p.Record(context.Background(), audit.Event{
		BarbershopID: 7,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &id,
		OccurredAt:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "7" {
		t.Fatalf("expected key 7, got %q", msg.Key)
	}

	var env Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if env.EventType != "appointment_created" || env.EntityID == nil || *env.EntityID != 42 || env.EventID == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	var eventType string
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			eventType = string(h.Value)
		}
	}
	if eventType != "appointment_created" {
		t.Fatalf("missing event_type header, got %q", eventType)
	}
}
