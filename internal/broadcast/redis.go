package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "broadcast:events:"

// RedisQueue keeps per-response sequences in redis lists so the buffer
// survives process restarts and can be shared across instances. RPUSH keeps
// enqueue order; drain reads and deletes the list in one transaction.
type RedisQueue struct {
	client *redis.Client
}

// NewRedisQueue wraps an existing client.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, responseID int64, event Event) error {
	encoded, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, redisKey(responseID), encoded).Err()
}

func (q *RedisQueue) Drain(ctx context.Context, responseID int64) ([]Event, error) {
	key := redisKey(responseID)

	var raw *redis.StringSliceCmd
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		raw = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := raw.Val()
	result := make([]Event, 0, len(entries))
	for _, entry := range entries {
		var event Event
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, nil
}

func redisKey(responseID int64) string {
	return fmt.Sprintf("%s%d", redisKeyPrefix, responseID)
}
