package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const confirmTimeout = 5 * time.Second

type Publisher struct {
	ch         *amqp091.Channel // AMQP channel in confirm mode
	exchange   string           // exchange to publish messages to
	routingKey string           // routing key for the messages
}

func NewPublisher(conn *amqp091.Connection, exchange, routingKey string) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("AMQP connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, err
	}

	return &Publisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

// PublishEvent wraps payload in an EventPayload envelope and waits for the
// broker to confirm that message. Each publish holds its own confirmation, so
// an abandoned wait never shifts acks onto later messages.
func (p *Publisher) PublishEvent(ctx context.Context, eventType string, payload any) error {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", eventType, err)
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", eventType, err)
	}

	confirm, err := p.publish(ctx, event.Type, body)
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	acked, err := confirm.WaitContext(waitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return errors.New("publish confirm timeout")
		}
		return err
	}
	if !acked {
		return errors.New("broker rejected message")
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, eventType string, body []byte) (*amqp091.DeferredConfirmation, error) {
	if p.ch == nil {
		return nil, errors.New("AMQP channel is nil")
	}

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(
		ctx,
		p.exchange,
		p.routingKey,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Type:         eventType,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return nil, err
	}
	if confirm == nil {
		return nil, errors.New("AMQP channel is not in confirm mode")
	}
	return confirm, nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
