package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Publisher — подмножество *amqp.Channel, нужное для публикации.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PublishMessage сериализует message в JSON и публикует его как persistent-сообщение.
func PublishMessage(ch Publisher, exchange, routingKey, messageID string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
