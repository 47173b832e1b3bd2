package testutil

import (
	"strconv"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultRedisImage          = "redis:7-alpine"
	defaultRedisPort  nat.Port = "6379/tcp"
	startupTimeout             = 60 * time.Second
)

type RedisTestContainer struct {
	Container testcontainers.Container
	Host      string
	Port      nat.Port
}

func (c *RedisTestContainer) PortNumber(t *testing.T) int {
	t.Helper()

	port, err := strconv.Atoi(c.Port.Port())
	require.NoError(t, err)

	return port
}

// SetupRedisContainer starts a disposable Redis server. Skipped in -short mode.
func SetupRedisContainer(t *testing.T) *RedisTestContainer {
	t.Helper()

	SkipIfShort(t)

	ctx := t.Context()

	//nolint:exhaustruct
	req := testcontainers.ContainerRequest{
		Image:        defaultRedisImage,
		ExposedPorts: []string{string(defaultRedisPort)},
		WaitingFor:   wait.ForListeningPort(defaultRedisPort).WithStartupTimeout(startupTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     testcontainers.ProviderDocker,
		Logger:           &log.Logger,
		Reuse:            false,
	})

	t.Cleanup(func() {
		if container != nil {
			_ = container.Terminate(ctx)
		}
	})

	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, defaultRedisPort)
	require.NoError(t, err)

	return &RedisTestContainer{
		Container: container,
		Host:      host,
		Port:      port,
	}
}
