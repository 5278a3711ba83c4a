package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type fakeDB struct {
	down atomic.Bool
}

func (f *fakeDB) Ping(context.Context) error {
	if f.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func startServer(t *testing.T, db Pinger, interval time.Duration) (*HealthServer, healthpb.HealthClient) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewHealthServer(db, interval, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		srv.GracefulStop()
	})
	return srv, healthpb.NewHealthClient(conn)
}

func status(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthServer_ServingWhenDatabaseUp(t *testing.T) {
	_, client := startServer(t, &fakeDB{}, time.Hour)

	assert.Eventually(t, func() bool {
		return status(t, client, ServiceName) == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
}

func TestHealthServer_FollowsDatabase(t *testing.T) {
	db := &fakeDB{}
	srv, client := startServer(t, db, time.Hour)
	require.Eventually(t, func() bool {
		return status(t, client, ServiceName) == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 20*time.Millisecond)

	srv.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ServiceName))

	db.down.Store(true)
	srv.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, ServiceName))

	db.down.Store(false)
	srv.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
}

func TestHealthServer_UnknownService(t *testing.T) {
	_, client := startServer(t, &fakeDB{}, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: "payments"})
	assert.Error(t, err)
}
