package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/routineboard/routineboard/internal/model"
)

const notificationQueue = "routine.notifications"

// AMQPForwarder publishes every emitted notification to a durable
// RabbitMQ queue so external consumers (mailers, dashboards) can react.
// A fresh connection per publish keeps the forwarder robust against
// broker restarts; the sink tolerates and logs any error.
type AMQPForwarder struct {
	url string
}

func NewAMQPForwarder(url string) *AMQPForwarder {
	return &AMQPForwarder{url: url}
}

type notificationEvent struct {
	Notification model.Notification `json:"notification"`
	ProgramCode  string             `json:"program_code"`
}

func (f *AMQPForwarder) Forward(ctx context.Context, n model.Notification, recipient model.Program) error {
	conn, err := amqp.Dial(f.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(notificationQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(notificationEvent{Notification: n, ProgramCode: recipient.ProgramCode})
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",                // default exchange
		notificationQueue, // routing key = queue name
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
