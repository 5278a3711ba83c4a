// Package pgtest поднимает PostgreSQL в контейнере для интеграционных тестов.
//
// Тесты, использующие пакет, пропускаются при go test -short.
package pgtest

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image    = "postgres:15-alpine"
	database = "shop"
	user     = "shop"
	password = "shop"
)

// StartPostgres запускает контейнер и возвращает строку подключения.
// Контейнер останавливается в t.Cleanup.
func StartPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase(database),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		user, password, net.JoinHostPort(host, port.Port()), database)
}

// MigrationsPath возвращает абсолютный путь к каталогу migrations в корне модуля.
func MigrationsPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "cannot resolve caller")
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}
