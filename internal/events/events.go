// Package events публикует и читает события жизненного цикла заказов в RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/shop-backend/internal/config"
	"github.com/magabrotheeeer/shop-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
)

// Типы событий, совпадают с ключами маршрутизации.
const (
	TypeOrderPlaced   = rabbitmq.RoutingKeyOrderPlaced
	TypeOrderAccepted = rabbitmq.RoutingKeyOrderAccepted
)

// OrderEvent — сообщение о заказе.
type OrderEvent struct {
	ID             string    `json:"event_id"`
	Type           string    `json:"type"`
	OrderID        int64     `json:"order_id"`
	ProductID      int64     `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Quantity       int       `json:"quantity"`
	RemainingStock *int      `json:"remaining_stock,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewOrderEvent заполняет идентификатор и время события.
func NewOrderEvent(eventType string, orderID, productID int64, quantity int) OrderEvent {
	return OrderEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    orderID,
		ProductID:  productID,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher публикует события заказов.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// AMQPPublisher публикует события в durable direct-обменник.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       rabbitmq.Publisher
	closer   func() error
	exchange string
}

// NewAMQPPublisher подключается к брокеру и объявляет обменник с очередями заказов.
func NewAMQPPublisher(cfg config.RabbitMQ) (*AMQPPublisher, error) {
	const op = "events.NewAMQPPublisher"

	conn, err := rabbitmq.Connect(cfg.URLRabbitMQ, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.OrderQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &AMQPPublisher{
		conn:     conn,
		ch:       ch,
		closer:   ch.Close,
		exchange: cfg.Exchange,
	}, nil
}

// PublishOrderEvent публикует событие с ключом маршрутизации event.Type.
func (p *AMQPPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	const op = "events.PublishOrderEvent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := rabbitmq.PublishMessage(p.ch, p.exchange, event.Type, event.ID, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closer != nil {
		_ = p.closer()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Noop используется, когда брокер не настроен.
type Noop struct{}

// PublishOrderEvent ничего не делает.
func (Noop) PublishOrderEvent(context.Context, OrderEvent) error { return nil }

// ConsumeOrderEvents читает события заказов из очереди queueName и передаёт их handler.
// Сообщения, которые не разбираются как OrderEvent, логируются и подтверждаются,
// чтобы не возвращаться в очередь бесконечно.
func ConsumeOrderEvents(ctx context.Context, ch rabbitmq.Deliverer, queueName string, log *slog.Logger, handler func(context.Context, OrderEvent) error) (<-chan struct{}, error) {
	const op = "events.ConsumeOrderEvents"
	done, err := rabbitmq.ConsumeMessages(ctx, ch, queueName, 4, log, func(body []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(body, &event); err != nil {
			log.Error("dropping malformed order event", slog.String("queue", queueName), sl.Err(err))
			return nil
		}
		return handler(ctx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return done, nil
}
