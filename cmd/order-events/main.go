// Package main читает события заказов из RabbitMQ и пишет их в журнал.
//
// Сервис нужен для аудита: каждое событие order.placed и order.accepted
// попадает в лог с идентификатором события и заказа.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/shop-backend/internal/config"
	"github.com/magabrotheeeer/shop-backend/internal/events"
	"github.com/magabrotheeeer/shop-backend/internal/lib/rabbitmq"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if cfg.URLRabbitMQ == "" {
		logger.Error("RABBITMQ_URL is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := rabbitmq.Connect(cfg.URLRabbitMQ, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.Any("err", err))
		os.Exit(1)
	}
	defer conn.Close()

	queues := rabbitmq.OrderQueues()
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, queues)
	if err != nil {
		logger.Error("failed to set up channel", slog.Any("err", err))
		os.Exit(1)
	}
	defer ch.Close()

	audit := func(_ context.Context, ev events.OrderEvent) error {
		attrs := []any{
			slog.String("event_id", ev.ID),
			slog.String("type", ev.Type),
			slog.Int64("order_id", ev.OrderID),
			slog.Int64("product_id", ev.ProductID),
			slog.Int("quantity", ev.Quantity),
		}
		if ev.RemainingStock != nil {
			attrs = append(attrs, slog.Int("remaining_stock", *ev.RemainingStock))
		}
		logger.Info("order event", attrs...)
		return nil
	}

	var consumers []<-chan struct{}
	for _, q := range queues {
		done, err := events.ConsumeOrderEvents(ctx, ch, q.QueueName, logger, audit)
		if err != nil {
			logger.Error("failed to start consumer", slog.String("queue", q.QueueName), slog.Any("err", err))
			os.Exit(1)
		}
		consumers = append(consumers, done)
	}

	logger.Info("order-events started", slog.String("exchange", cfg.Exchange))
	for _, done := range consumers {
		<-done
	}
	logger.Info("order-events stopped")
}
