// Package redistest starts disposable Redis containers for integration tests.
package redistest

import (
	"context"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type Server struct {
	Container *tcredis.RedisContainer
	Client    *redis.Client
}

func Start(ctx context.Context) (*Server, error) {
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		return nil, err
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	opts, err := redis.ParseURL(uri)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Server{Container: container, Client: redis.NewClient(opts)}, nil
}

func (s *Server) Terminate(ctx context.Context) error {
	_ = s.Client.Close()
	return s.Container.Terminate(ctx)
}
