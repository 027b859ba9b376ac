package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/pkg/errors"
)

const KeyPrefix = "report:"

const DefaultTTL = 24 * time.Hour

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache ttl为0时永不过期
func NewRedisCache(client *redis.Client, ttl time.Duration) ReportCache {
	return &redisCache{client: client, ttl: ttl}
}

func (r *redisCache) Get(ctx context.Context, key string) (*report.Report, error) {
	val, err := r.client.Get(ctx, KeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	} else if err != nil {
		return nil, errors.Wrap(err, "读取redis缓存失败")
	}

	result := &report.Report{}
	if err = json.Unmarshal(val, result); err != nil {
		return nil, errors.Wrap(err, "解析缓存的报表失败")
	}
	return result, nil
}

func (r *redisCache) Set(ctx context.Context, key string, rep *report.Report) error {
	val, err := json.Marshal(rep)
	if err != nil {
		return errors.Wrap(err, "序列化报表失败")
	}
	if err = r.client.Set(ctx, KeyPrefix+key, val, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "写入redis缓存失败")
	}
	return nil
}
