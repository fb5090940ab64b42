package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cashflow/mcp-gateway/internal/core"
	"github.com/cashflow/mcp-gateway/internal/port/output"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	ExchangeName  = "mcp_gateway"
	QueueName     = "mcp_dispatch_audit"
	RoutingKey    = "dispatch.completed"
	PrefetchCount = 10
)

// RabbitMQClient is a secondary adapter that implements DispatchEvents output port
type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger

	// guards channel publishes
	mu sync.Mutex
}

// NewRabbitMQClient creates a new RabbitMQ client (returns interface for ports)
func NewRabbitMQClient(amqpURL string, logger *zap.Logger) (output.DispatchEvents, error) {
	return NewRabbitMQClientConcrete(amqpURL, logger)
}

// NewRabbitMQClientConcrete creates a new RabbitMQ client (returns concrete type for workers)
func NewRabbitMQClientConcrete(amqpURL string, logger *zap.Logger) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		logger:  logger.With(zap.String("component", "rabbitmq")),
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	err := channel.ExchangeDeclare(
		ExchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.QueueBind(QueueName, RoutingKey, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

// PublishDispatchEvent publishes a completed dispatch
func (c *RabbitMQClient) PublishDispatchEvent(ctx context.Context, event core.DispatchEvent) error {
	msg, err := newPublishing(event, time.Now())
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.PublishWithContext(
		ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	c.logger.Debug("published dispatch event", zap.String("event_id", event.ID.String()))
	return nil
}

func newPublishing(event core.DispatchEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Body:         body,
		Timestamp:    now,
	}, nil
}

// ConsumeDispatchEvents starts consuming dispatch events.
// Messages that cannot be decoded, or that the handler marks permanent, are dropped;
// other handler errors requeue the message.
func (c *RabbitMQClient) ConsumeDispatchEvents(handler func(core.DispatchEvent) error, permanent func(error) bool) error {
	if err := c.channel.Qos(PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		QueueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("started consuming dispatch events", zap.String("queue", QueueName))

	go func() {
		for msg := range msgs {
			action := c.handleDelivery(msg.MessageId, msg.Body, handler, permanent)
			if err := settle(&msg, action); err != nil {
				c.logger.Error("error settling delivery", zap.String("message_id", msg.MessageId), zap.Error(err))
			}
		}
		c.logger.Info("dispatch event consumer stopped")
	}()

	return nil
}

type deliveryAction int

const (
	// actionAck removes the message after success or a permanent failure
	actionAck deliveryAction = iota
	// actionDrop rejects an undecodable message without requeueing it
	actionDrop
	// actionRequeue returns the message to the queue for another attempt
	actionRequeue
)

// handleDelivery decodes one message, runs the handler and decides how the
// message is settled
func (c *RabbitMQClient) handleDelivery(
	messageID string,
	body []byte,
	handler func(core.DispatchEvent) error,
	permanent func(error) bool,
) deliveryAction {
	var event core.DispatchEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Error("error unmarshaling event", zap.String("message_id", messageID), zap.Error(err))
		return actionDrop
	}

	if err := handler(event); err != nil {
		c.logger.Error("error processing event", zap.String("event_id", event.ID.String()), zap.Error(err))
		if permanent != nil && permanent(err) {
			return actionAck
		}
		return actionRequeue
	}
	return actionAck
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func settle(msg acknowledger, action deliveryAction) error {
	switch action {
	case actionDrop:
		return msg.Nack(false, false)
	case actionRequeue:
		return msg.Nack(false, true)
	default:
		return msg.Ack(false)
	}
}

// Close closes the RabbitMQ connection
func (c *RabbitMQClient) Close() error {
	var errs []error
	if c.channel != nil {
		errs = append(errs, c.channel.Close())
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
	}
	return errors.Join(errs...)
}
