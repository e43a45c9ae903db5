package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "travelify:notifications"

// RedisQueue keeps jobs in a Redis list: LPUSH to enqueue, BRPOP to dequeue.
type RedisQueue struct {
	client *redis.Client
	key    string
	// poll bounds each BRPOP so ctx cancellation is noticed.
	poll time.Duration
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisQueue{client: client, key: key, poll: time.Second}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("push notification job: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Job{}, err
		}

		res, err := q.client.BRPop(ctx, q.poll, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Job{}, ctxErr
			}
			return Job{}, fmt.Errorf("pop notification job: %w", err)
		}

		// res is [key, value]
		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			return Job{}, fmt.Errorf("unmarshal notification job: %w", err)
		}
		return job, nil
	}
}
