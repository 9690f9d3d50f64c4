package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/messaging/kafka"
)

// publishEvent keys messages by aggregate id so all events for one
// payroll month land in the same partition, in order.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
