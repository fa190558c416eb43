// Package containers spins up throwaway dependencies for integration tests
package containers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/vlatan/transcript-gateway/internal/config"
)

const redisImage = "redis:8.0.3"

type Container interface {
	Terminate(ctx context.Context)
}

type redisContainer struct {
	container *tcredis.RedisContainer
}

// Terminate stops and removes the Redis container
func (rc *redisContainer) Terminate(ctx context.Context) {
	if err := rc.container.Terminate(ctx); err != nil {
		slog.Warn("failed to terminate redis container", slog.Any("error", err))
	}
}

// StartRedis runs a Redis container and points
// the Redis host and port of the config at it.
func StartRedis(ctx context.Context, cfg *config.Config) (Container, error) {

	container, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		return nil, fmt.Errorf("failed to start redis container: %w", err)
	}

	// Terminate on any failure below, the caller gets no handle to do it
	fail := func(err error) (Container, error) {
		if cErr := container.Terminate(ctx); cErr != nil {
			err = errors.Join(err, cErr)
		}
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to get container host: %w", err))
	}

	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		return fail(fmt.Errorf("failed to get container port: %w", err))
	}

	cfg.RedisHost = host
	cfg.RedisPort = port.Int()

	return &redisContainer{container}, nil
}

// ProjectRoot walks up from the caller's directory until it finds go.mod
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		return "", errors.New("failed to get the caller information")
	}

	for dir := filepath.Dir(filename); ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("reached root without finding go.mod")
		}
		dir = parent
	}
}
