package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	handler "github.com/musetix/polls/internal/adapters/handler/http"
	redisrepo "github.com/musetix/polls/internal/adapters/repository/redis"
	"github.com/musetix/polls/internal/core/services"
)

func setupRedisContainer(ctx context.Context) (testcontainers.Container, string, error) {
	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		return nil, "", fmt.Errorf("failed to start redis container: %w", err)
	}

	connStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return nil, "", err
	}

	return redisContainer, connStr, nil
}

type TestApp struct {
	Redis          *goredis.Client
	Repo           *redisrepo.PollRepository
	Server         *httptest.Server
	RedisContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()

	redisContainer, connStr, err := setupRedisContainer(ctx)
	require.NoError(t, err)

	opts, err := goredis.ParseURL(connStr)
	require.NoError(t, err)
	client := goredis.NewClient(opts)

	repo := redisrepo.NewPollRepository(client)
	service := services.NewPollService(repo)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pollHandler := handler.NewPollHandler(service, logger)
	healthHandler := handler.NewHealthHandler(repo)

	server := httptest.NewServer(handler.NewHandler(pollHandler, healthHandler))

	return &TestApp{
		Redis:          client,
		Repo:           repo,
		Server:         server,
		RedisContainer: redisContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.Redis.Close()
	if err := app.RedisContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
