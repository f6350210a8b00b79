package notify

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultAlertStream = "feedback:alerts"

// RedisNotifier appends alerts to a Redis stream for other services to consume.
type RedisNotifier struct {
	client *redis.Client
	stream string
}

func NewRedisNotifier(client *redis.Client, stream string) *RedisNotifier {
	if stream == "" {
		stream = DefaultAlertStream
	}
	return &RedisNotifier{client: client, stream: stream}
}

// NewRedisNotifierWithURL creates a notifier from a redis:// URL.
func NewRedisNotifierWithURL(url, stream string) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedisNotifier(redis.NewClient(opts), stream), nil
}

func (n *RedisNotifier) Publish(ctx context.Context, message string) error {
	return n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]interface{}{
			"type":        "rating_trend_alert",
			"message":     message,
			"occurred_at": time.Now().UTC().Format(time.RFC3339),
		},
	}).Err()
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
