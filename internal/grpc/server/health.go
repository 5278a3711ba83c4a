// Package server реализует gRPC-сервер проверки здоровья магазина.
//
// Сервер отдаёт стандартный grpc.health.v1 и reflection. Статус обслуживания
// обновляется в фоне по результату пинга базы данных.
package server

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
)

// ServiceName задаёт имя сервиса в ответах grpc.health.v1 помимо общего "".
const ServiceName = "shop"

// Pinger проверяет доступность базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer объединяет gRPC-сервер, health и reflection.
type HealthServer struct {
	grpcServer *grpc.Server
	health     *health.Server
	db         Pinger
	interval   time.Duration
	log        *slog.Logger
}

// NewHealthServer создает сервер. Пока первая проверка не выполнена, статус NOT_SERVING.
func NewHealthServer(db Pinger, interval time.Duration, log *slog.Logger) *HealthServer {
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	reflection.Register(grpcServer)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		grpcServer: grpcServer,
		health:     hs,
		db:         db,
		interval:   interval,
		log:        log,
	}
}

// Serve запускает проверки и обслуживает lis до остановки сервера.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	go s.watch(ctx)
	s.log.Info("gRPC health server listening", slog.String("address", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

// Check обновляет статус по одному пингу базы данных.
func (s *HealthServer) Check(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.Ping(pingCtx); err != nil {
		s.log.Warn("database ping failed", sl.Err(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// GracefulStop переводит статус в NOT_SERVING и дожидается завершения вызовов.
func (s *HealthServer) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

func (s *HealthServer) watch(ctx context.Context) {
	s.Check(ctx)
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}
