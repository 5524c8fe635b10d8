package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/resumeiq/backend/models"
	ws "github.com/resumeiq/backend/websocket"
)

const (
	EventAnalysisCompleted = "analysis.completed"
	EventAnalysisFailed    = "analysis.failed"
)

// AnalysisEvent announces a newly stored analysis record.
type AnalysisEvent struct {
	Type       string    `json:"type"`
	AnalysisID string    `json:"analysis_id"`
	FileName   string    `json:"file_name"`
	Status     string    `json:"status"`
	ATSScore   *int      `json:"ats_score,omitempty"`
	Trend      string    `json:"trend"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewAnalysisEvent(analysis *models.ResumeAnalysis) AnalysisEvent {
	eventType := EventAnalysisCompleted
	if analysis.Status == models.StatusFailed {
		eventType = EventAnalysisFailed
	}
	return AnalysisEvent{
		Type:       eventType,
		AnalysisID: analysis.ID,
		FileName:   analysis.FileName,
		Status:     analysis.Status,
		ATSScore:   analysis.ATSScore,
		Trend:      analysis.Trend,
		OccurredAt: time.Now().UTC(),
	}
}

// Notifier delivers analysis events. Delivery is best effort.
type Notifier interface {
	Publish(ctx context.Context, event AnalysisEvent) error
}

// HubNotifier pushes events to connected dashboards.
type HubNotifier struct {
	hub *ws.Hub
}

func NewHubNotifier(hub *ws.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Publish(ctx context.Context, event AnalysisEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	n.hub.Broadcast(body)
	return nil
}

// AMQPNotifier publishes events to a topic exchange, routed by event type.
type AMQPNotifier struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	slog.Info("Connected to RabbitMQ", "exchange", exchange)
	return &AMQPNotifier{conn: conn, channel: ch, exchange: exchange}, nil
}

func (n *AMQPNotifier) Publish(ctx context.Context, event AnalysisEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return n.channel.PublishWithContext(
		ctx,
		n.exchange,
		event.Type, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.AnalysisID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
}

func (n *AMQPNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		n.conn.Close()
		return err
	}
	return n.conn.Close()
}

// MultiNotifier fans an event out to several notifiers, logging failures.
type MultiNotifier []Notifier

func (m MultiNotifier) Publish(ctx context.Context, event AnalysisEvent) error {
	var firstErr error
	for _, n := range m {
		if err := n.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish analysis event", "type", event.Type, "analysis_id", event.AnalysisID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
