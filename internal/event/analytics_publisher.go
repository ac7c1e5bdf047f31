package event

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventFormSubmit    = "form_submit"
	EventWhatsAppClick = "whatsapp_click"

	CategoryEngagement = "engagement"
	CategoryConversion = "conversion"
)

// AnalyticsEvent mirrors the gtag event shape: category, a label carrying
// the insurance type, and an optional 1/0 success value.
type AnalyticsEvent struct {
	Event    string `json:"event"`
	Category string `json:"event_category"`
	Label    string `json:"event_label"`
	Value    *int   `json:"value,omitempty"`
}

// AnalyticsPublisher publishes analytics events to RabbitMQ. Callers treat
// every publish as best-effort; a failed publish is counted and logged,
// never propagated into the submission pipeline. Publish runs on the
// pipeline's detached goroutines, so the counters are atomic.
type AnalyticsPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished atomic.Int64
	messagesFailed    atomic.Int64
}

// NewAnalyticsPublisher creates a new analytics event publisher
func NewAnalyticsPublisher(conn *RabbitMQConnection) *AnalyticsPublisher {
	return &AnalyticsPublisher{conn: conn}
}

// Publish sends one analytics event to the analytics_events queue.
func (p *AnalyticsPublisher) Publish(ctx context.Context, event AnalyticsEvent) error {
	_, err := p.conn.Channel.QueueDeclare(
		AnalyticsQueue, // queue name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to marshal analytics event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",             // exchange
		AnalyticsQueue, // routing key (queue name)
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Transient,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed.Add(1)
		return fmt.Errorf("failed to publish analytics event: %w", err)
	}

	slog.Info("Analytics event published",
		"queue", AnalyticsQueue,
		"event", event.Event,
		"label", event.Label,
		"published_total", p.messagesPublished.Add(1),
	)

	return nil
}
