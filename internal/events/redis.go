package events

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher publishes every event as JSON on one pub/sub channel.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
	log     *zap.Logger
}

func NewRedisPublisher(rdb *redis.Client, channel string, log *zap.Logger) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) {
	data, err := event.Marshal()
	if err != nil {
		p.log.Warn("events: failed to marshal event", zap.String("event", event.Event), zap.Error(err))
		return
	}
	if err := p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
		p.log.Warn("events: redis publish failed",
			zap.String("channel", p.channel),
			zap.String("event", event.Event),
			zap.Error(err))
		return
	}
	p.log.Debug("events: published to redis", zap.String("channel", p.channel), zap.String("event", event.Event))
}
