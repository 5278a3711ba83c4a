// Package rabbitmq содержит подключение к RabbitMQ, объявление топологии
// и публикацию JSON-сообщений.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Connect подключается к брокеру, делая до retries попыток с паузой delay.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	if retries < 1 {
		retries = 1
	}
	for attempt := range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		if attempt < retries-1 {
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}
