package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AMQPQueue publishes JSON bodies to durable RabbitMQ queues named after the
// topic. Subscribers get the raw body and ack manually.
type AMQPQueue struct {
	Logger *zap.Logger

	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
}

func DialAMQP(url string, logger *zap.Logger) (*AMQPQueue, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &AMQPQueue{Logger: logger, conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) declare(ch *amqp.Channel, topic string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		topic, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, err := q.declare(q.ch, topic); err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	return q.ch.Publish("", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Subscribe consumes topic on a dedicated channel. A handler error nacks the
// delivery without requeue, so a failed publish is final. A handler stopped
// by cancellation requeues the delivery for the next consumer.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	ch, err := q.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if _, err := q.declare(ch, topic); err != nil {
		ch.Close()
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		return fmt.Errorf("set qos: %w", err)
	}
	msgs, err := ch.Consume(
		topic,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		defer ch.Close()
		for d := range msgs {
			if err := settle(d, handler(d.Body)); err != nil {
				q.Logger.Warn("settle delivery", zap.String("topic", topic), zap.Error(err))
			}
		}
		q.Logger.Info("consumer stopped", zap.String("topic", topic))
	}()
	return nil
}

// settle acks a handled delivery and nacks a failed one. Only an interrupted
// handler gets its delivery requeued.
func settle(d amqp.Delivery, handlerErr error) error {
	switch {
	case handlerErr == nil:
		return d.Ack(false)
	case errors.Is(handlerErr, context.Canceled):
		return d.Nack(false, true)
	default:
		return d.Nack(false, false)
	}
}

// NotifyClose reports when the broker connection drops.
func (q *AMQPQueue) NotifyClose() <-chan *amqp.Error {
	return q.conn.NotifyClose(make(chan *amqp.Error, 1))
}

func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ch != nil {
		_ = q.ch.Close()
	}
	return q.conn.Close()
}

var (
	_ Queue = (*AMQPQueue)(nil)
	_ Queue = (*InMemoryQueue)(nil)
)
