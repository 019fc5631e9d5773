package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mkoval/markd/internal/domain"
)

// RedisEventSink publishes reminder events on a pub/sub channel so
// other processes (a UI, a log tailer) can react to fires.
type RedisEventSink struct {
	client  *redis.Client
	channel string
}

func NewRedisEventSink(client *redis.Client, channel string) *RedisEventSink {
	return &RedisEventSink{
		client:  client,
		channel: channel,
	}
}

type eventPayload struct {
	Event    string           `json:"event"`
	Bookmark *domain.Bookmark `json:"bookmark"`
}

func (s *RedisEventSink) Emit(ctx context.Context, event string, bm *domain.Bookmark) error {
	data, err := json.Marshal(eventPayload{Event: event, Bookmark: bm})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
