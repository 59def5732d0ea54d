package prefs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists preferences in Redis.
//
// Layout, with prefix "hrml":
//
//	hrml:FavoriteApplicants          HASH  field "j1_u1" → "true"
//	hrml:job_preferences:favorite_jobs SET  {"j1", "j7"}
//
// Scalars of one bucket share a hash; each string set gets its own key.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore returns a RedisStore writing under prefix.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) hashKey(bucket string) string {
	return fmt.Sprintf("%s:%s", s.prefix, bucket)
}

func (s *RedisStore) setKey(bucket, key string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, bucket, key)
}

func (s *RedisStore) GetString(ctx context.Context, bucket, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.hashKey(bucket), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis HGET %s/%s: %w", bucket, key, err)
	}
	return v, true, nil
}

func (s *RedisStore) PutString(ctx context.Context, bucket, key, value string) error {
	if err := s.rdb.HSet(ctx, s.hashKey(bucket), key, value).Err(); err != nil {
		return fmt.Errorf("redis HSET %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *RedisStore) GetBool(ctx context.Context, bucket, key string) (bool, bool, error) {
	raw, found, err := s.GetString(ctx, bucket, key)
	if err != nil || !found {
		return false, false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, &TypeError{Bucket: bucket, Key: key, Want: "bool"}
	}
	return v, true, nil
}

func (s *RedisStore) PutBool(ctx context.Context, bucket, key string, value bool) error {
	return s.PutString(ctx, bucket, key, strconv.FormatBool(value))
}

func (s *RedisStore) GetStringSet(ctx context.Context, bucket, key string) ([]string, error) {
	members, err := s.rdb.SMembers(ctx, s.setKey(bucket, key)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis SMEMBERS %s/%s: %w", bucket, key, err)
	}
	sort.Strings(members)
	return members, nil
}

// PutStringSet replaces the set atomically (DEL + SADD in MULTI/EXEC), so a
// reader never observes a half-written set.
func (s *RedisStore) PutStringSet(ctx context.Context, bucket, key string, values []string) error {
	k := s.setKey(bucket, key)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		if len(values) > 0 {
			members := make([]interface{}, len(values))
			for i, v := range values {
				members[i] = v
			}
			pipe.SAdd(ctx, k, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis replace set %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, bucket string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	setKeys := make([]string, len(keys))
	for i, k := range keys {
		setKeys[i] = s.setKey(bucket, k)
	}
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, s.hashKey(bucket), keys...)
		pipe.Del(ctx, setKeys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis remove %s: %w", bucket, err)
	}
	return nil
}
