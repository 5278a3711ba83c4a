package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
)

// Deliverer — часть *amqp.Channel, нужная потребителю.
type Deliverer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// ConsumeMessages запускает чтение очереди queueName с ручным подтверждением.
// Одновременно обрабатывается не больше workers сообщений. Ошибка handler
// возвращает сообщение в очередь. Чтение прекращается при отмене ctx
// или закрытии канала; возвращаемый канал закрывается после этого.
func ConsumeMessages(ctx context.Context, ch Deliverer, queueName string, workers int, log *slog.Logger, handler func([]byte) error) (<-chan struct{}, error) {
	const op = "rabbitmq.ConsumeMessages"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if workers < 1 {
		workers = 1
	}
	log = log.With(slog.String("queue", queueName))
	done := make(chan struct{})
	sem := make(chan struct{}, workers)

	go func() {
		defer close(done)
		defer func() {
			// ждём обработчики, которые ещё работают
			for range workers {
				sem <- struct{}{}
			}
		}()
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(d.Body); err != nil {
						log.Warn("message handling failed, requeueing", slog.String("message_id", d.MessageId), sl.Err(err))
						if nackErr := d.Nack(false, true); nackErr != nil {
							log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := d.Ack(false); ackErr != nil {
						log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return done, nil
}
