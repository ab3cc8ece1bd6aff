package client

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient connects the optional audio-URL cache. The cache is a pure
// optimization, so a dead Redis just means every phrase is synthesized fresh.
func RedisClient(addr, password string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return conn, nil
}
