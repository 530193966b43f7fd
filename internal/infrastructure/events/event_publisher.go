// Package events publishes route lifecycle events to Kafka, grounded on
// services/shipping/internal/infrastructure/events/event_publisher.go.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventRouteGenerated    = "route.generated"
	EventRouteConflict     = "route.conflict"
	EventRouteRecalculated = "route.recalculated"
)

// EventPublisher publishes route domain events to Kafka.
type EventPublisher struct {
	writer   *kafka.Writer
	clientID string
}

func NewEventPublisher(brokers []string, topic, clientID string) *EventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}
	return &EventPublisher{writer: writer, clientID: clientID}
}

// PublishRouteEvent publishes a route-scoped event envelope.
func (p *EventPublisher) PublishRouteEvent(ctx context.Context, routeID uuid.UUID, eventType string, data interface{}) error {
	envelope := map[string]interface{}{
		"event_type": eventType,
		"route_id":   routeID,
		"data":       data,
		"timestamp":  time.Now().UTC(),
		"source":     "geo-rota",
		"client_id":  p.clientID,
		"version":    "1.0",
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	message := kafka.Message{
		Key:   []byte(routeID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
			{Key: "route-id", Value: []byte(routeID.String())},
			{Key: "source", Value: []byte("geo-rota")},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

// RouteGenerated fires after C7/C8 persist a new route (spec.md §6.2).
func (p *EventPublisher) RouteGenerated(ctx context.Context, routeID uuid.UUID, data interface{}) error {
	return p.PublishRouteEvent(ctx, routeID, EventRouteGenerated, data)
}

// RouteConflict fires when a conflict check rejects a plan/edit before
// anything is persisted (spec.md §4.7 conflict rules).
func (p *EventPublisher) RouteConflict(ctx context.Context, routeID uuid.UUID, data interface{}) error {
	return p.PublishRouteEvent(ctx, routeID, EventRouteConflict, data)
}

// RouteRecalculated fires after EditPlanner.Recalculate commits (spec.md §4.8).
func (p *EventPublisher) RouteRecalculated(ctx context.Context, routeID uuid.UUID, data interface{}) error {
	return p.PublishRouteEvent(ctx, routeID, EventRouteRecalculated, data)
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func (p *EventPublisher) Health(ctx context.Context) error {
	conn, err := kafka.DialContext(ctx, "tcp", p.writer.Addr.String())
	if err != nil {
		return fmt.Errorf("kafka health check failed: %w", err)
	}
	defer conn.Close()
	return nil
}
