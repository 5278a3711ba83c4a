package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// QueueConfig описывает очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключи маршрутизации событий заказов.
const (
	RoutingKeyOrderPlaced   = "order.placed"
	RoutingKeyOrderAccepted = "order.accepted"
)

// OrderQueues возвращает очереди для событий заказов.
func OrderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "orders.placed", RoutingKey: RoutingKeyOrderPlaced},
		{QueueName: "orders.accepted", RoutingKey: RoutingKeyOrderAccepted},
	}
}

// SetupChannel открывает канал, объявляет durable direct-обменник exchange
// и привязывает к нему очереди.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
