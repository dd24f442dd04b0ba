//go:build integration

package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisServer *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis starts one miniredis server for the suite and returns a client for it.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		redisServer, redisConn = openRedisConn()
	})
	return redisConn
}

func openRedisConn() (*miniredis.Miniredis, *redis.Client) {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: server.Addr(),
		},
	)

	return server, conn
}

// ClearRedis drops every key.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
