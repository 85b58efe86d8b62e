package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type RedisChecker struct {
	rdb redis.UniversalClient
}

func NewRedisChecker(rdb redis.UniversalClient) *RedisChecker {
	return &RedisChecker{rdb: rdb}
}

func (c *RedisChecker) Name() string {
	return "redis"
}

func (c *RedisChecker) Check(ctx context.Context) Result {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return down(err)
	}
	return up()
}
