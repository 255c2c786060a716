package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
)

// Envelope é o formato publicado no tópico de agendamentos.
type Envelope struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	BarbershopID uint      `json:"barbershop_id"`
	Entity       string    `json:"entity"`
	EntityID     *uint     `json:"entity_id,omitempty"`
	UserID       *uint     `json:"user_id,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
	Data         any       `json:"data,omitempty"`
}

func NewEnvelope(ev audit.Event) Envelope {
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    ev.Action,
		BarbershopID: ev.BarbershopID,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		UserID:       ev.UserID,
		RequestID:    ev.RequestID,
		OccurredAt:   ev.OccurredAt,
		Data:         ev.Metadata,
	}
}

// Message monta a mensagem Kafka. A chave é a barbearia, então os
// eventos de uma mesma barbearia caem na mesma partição.
func (e Envelope) Message() (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(e.BarbershopID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(e.EventID)},
			{Key: "event_type", Value: []byte(e.EventType)},
		},
	}, nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica os eventos de auditoria; é um audit.Sink.
type KafkaPublisher struct {
	writer messageWriter
}

var _ audit.Sink = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Record(ctx context.Context, ev audit.Event) error {
	msg, err := NewEnvelope(ev).Message()
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
