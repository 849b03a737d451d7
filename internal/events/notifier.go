// Package events publishes marketplace events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/requestid"
)

const (
	// DefaultExchange is the topic exchange events are published on.
	DefaultExchange = "trznica.events"

	// EventMessageCreated is emitted after a contact message is stored.
	EventMessageCreated = "message.created"

	eventVersion   = "1.0.0"
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 5 * time.Second
	confirmTimeout = 5 * time.Second
)

var errNotAcked = errors.New("event not acknowledged")

// Event is the envelope every published message uses.
type Event struct {
	EventID      string `json:"event_id"`
	EventType    string `json:"event_type"`
	EventVersion string `json:"event_version"`
	Timestamp    string `json:"timestamp"`
	RequestID    string `json:"request_id,omitempty"`
	Payload      any    `json:"payload"`
}

// MessagePayload describes a stored contact message.
type MessagePayload struct {
	MessageID int64  `json:"message_id"`
	ItemID    int64  `json:"item_id"`
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
	Message   string `json:"message"`
}

// Recorder counts publish outcomes.
type Recorder interface {
	EventPublished(ok bool)
}

type sendFunc func(ctx context.Context, routingKey string, msg amqp.Publishing) error

// Notifier publishes contact message events with publisher confirms.
type Notifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	send     sendFunc
	metrics  Recorder
	log      *slog.Logger
	backoff  time.Duration
	now      func() time.Time

	// Confirms are matched by delivery tag, so one publish at a time.
	mu sync.Mutex
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithRecorder sets the publish counter.
func WithRecorder(r Recorder) Option {
	return func(n *Notifier) { n.metrics = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) { n.log = l }
}

// Dial connects to the broker, declares the exchange and enables confirms.
func Dial(url, exchange string, opts ...Option) (*Notifier, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("enabling publisher confirms: %w", err)
	}

	n := newNotifier(exchange, nil, opts...)
	n.conn = conn
	n.ch = ch
	n.send = n.publishConfirmed
	n.log.Info("connected to broker", "exchange", exchange)
	return n, nil
}

func newNotifier(exchange string, send sendFunc, opts ...Option) *Notifier {
	n := &Notifier{
		exchange: exchange,
		send:     send,
		log:      slog.Default(),
		backoff:  initialBackoff,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// MessageCreated publishes a message.created event for msg.
func (n *Notifier) MessageCreated(ctx context.Context, msg *model.ContactMessage) error {
	event := Event{
		EventID:      uuid.NewString(),
		EventType:    EventMessageCreated,
		EventVersion: eventVersion,
		Timestamp:    n.now().UTC().Format(time.RFC3339),
		RequestID:    requestid.FromContext(ctx),
		Payload: MessagePayload{
			MessageID: msg.ID,
			ItemID:    msg.ItemID,
			FromEmail: msg.FromEmail,
			ToEmail:   msg.ToEmail,
			Message:   msg.Message,
		},
	}
	err := n.publish(ctx, EventMessageCreated, event)
	if n.metrics != nil {
		n.metrics.EventPublished(err == nil)
	}
	return err
}

func (n *Notifier) publish(ctx context.Context, routingKey string, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    n.now(),
		MessageId:    event.EventID,
		Body:         body,
		Headers: amqp.Table{
			"event_type":    event.EventType,
			"event_version": event.EventVersion,
		},
	}

	backoff := n.backoff
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			backoff = min(backoff*2, maxBackoff)
		}

		lastErr = n.send(ctx, routingKey, msg)
		if lastErr == nil {
			n.log.Debug("event published", "event_id", event.EventID, "event_type", event.EventType)
			return nil
		}
		n.log.Warn("publishing event failed, retrying", "attempt", attempt+1, "error", lastErr)
	}
	return fmt.Errorf("publishing %s after %d attempts: %w", event.EventType, maxRetries, lastErr)
}

func (n *Notifier) publishConfirmed(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	confirm, err := n.ch.PublishWithDeferredConfirmWithContext(ctx, n.exchange, routingKey, false, false, msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("waiting for confirm: %w", err)
	}
	if !acked {
		return errNotAcked
	}
	return nil
}

// Healthy reports whether the broker connection is open.
func (n *Notifier) Healthy() bool {
	return n != nil && n.conn != nil && !n.conn.IsClosed()
}

// Close closes the channel and the connection.
func (n *Notifier) Close() error {
	if n.ch != nil {
		if err := n.ch.Close(); err != nil {
			n.log.Error("closing channel", "error", err)
		}
	}
	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			return fmt.Errorf("closing broker connection: %w", err)
		}
	}
	return nil
}
