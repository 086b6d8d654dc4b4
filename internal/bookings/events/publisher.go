package events

import (
	"context"
	"time"

	"roomly/pkg/kafka"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

const (
	EventTypeBookingCreated = "booking.created"

	schemaVersion = "1"
	source        = "roomly"

	publishTimeout = 5 * time.Second
)

// Publisher announces booking lifecycle events to downstream consumers
// (notifications, analytics). Publishing is best-effort: a reservation
// is never rolled back because the event could not be sent.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	// Keyed by room so events for one room stay ordered.
	msg, err := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithEventType(EventTypeBookingCreated).
		WithSource(source).
		WithSchemaVersion(schemaVersion).
		WithJSONValue(booking).
		Build()
	if err != nil {
		p.log.Error("Failed to build booking event", "booking_id", booking.ID, "error", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.producer.Publish(publishCtx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", EventTypeBookingCreated,
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}

	p.log.Debug("Booking event published", "event_type", EventTypeBookingCreated, "booking_id", booking.ID)
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingCreated(context.Context, *model.Booking) {}
