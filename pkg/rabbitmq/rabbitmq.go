package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"productapi/internal/models"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// ErrMalformedEvent marks a delivery that can never be processed. Such
// messages are rejected without requeue.
var ErrMalformedEvent = errors.New("malformed product event")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  zerolog.Logger
	mu      sync.Mutex // guards publishing on channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL    string
	Queue  string
	Logger zerolog.Logger
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the product event queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	cfg.Logger.Info().Str("queue", cfg.Queue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		logger:  cfg.Logger,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishProductEvent publishes a product event to the queue as a persistent JSON message.
func (c *Client) PublishProductEvent(event models.ProductEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         string(event.Type),
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	c.logger.Debug().Str("type", string(event.Type)).Str("product_id", event.ProductID).Msg("product event sent")
	return nil
}

// ConsumeProductEvents starts a goroutine delivering messages from the queue to handler.
// Messages are acked when handler returns nil, rejected when it returns
// ErrMalformedEvent and nacked with requeue otherwise.
func (c *Client) ConsumeProductEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			c.handleDelivery(msg, handler)
		}
	}()

	return nil
}

func (c *Client) handleDelivery(msg amqp.Delivery, handler func(msg amqp.Delivery) error) {
	err := handler(msg)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			c.logger.Error().Err(ackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error acking message")
		}
	case errors.Is(err, ErrMalformedEvent):
		c.logger.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("dropping malformed product event")
		if rejectErr := msg.Reject(false); rejectErr != nil {
			c.logger.Error().Err(rejectErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error rejecting message")
		}
	default:
		c.logger.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("error processing product event")
		if nackErr := msg.Nack(false, true); nackErr != nil {
			c.logger.Error().Err(nackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error nacking message")
		}
	}
}

// DecodeProductEvent parses a delivered message body.
func DecodeProductEvent(msg amqp.Delivery) (models.ProductEvent, error) {
	var event models.ProductEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return event, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	return event, nil
}

// AuditHandler returns a consumer handler that logs every product event.
func AuditHandler(logger zerolog.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		event, err := DecodeProductEvent(msg)
		if err != nil {
			return err
		}
		logger.Info().
			Str("type", string(event.Type)).
			Str("product_id", event.ProductID).
			Time("occurred_at", event.OccurredAt).
			Msg("product event")
		return nil
	}
}
