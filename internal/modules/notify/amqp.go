package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all inventory notifications are
// published to. Consumers bind per warehouse with warehouse.<id>.
const ExchangeName = "inventory.events"

type amqpDeliverer struct {
	ch *amqp.Channel
}

// NewAMQPDeliverer creates a Deliverer publishing to RabbitMQ. It declares
// the exchange so consumers can bind before any message is sent.
func NewAMQPDeliverer(ch *amqp.Channel) (Deliverer, error) {
	err := ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("could not declare exchange: %w", err)
	}
	return &amqpDeliverer{ch: ch}, nil
}

func (d *amqpDeliverer) Deliver(ctx context.Context, recipientID uuid.UUID, msg Message) error {
	payload := struct {
		RecipientID uuid.UUID `json:"recipient_id"`
		Message
	}{RecipientID: recipientID, Message: msg}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal notification: %w", err)
	}

	// Routing key: warehouse.<warehouse_id>
	routingKey := fmt.Sprintf("warehouse.%s", msg.WarehouseID)

	return d.ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
