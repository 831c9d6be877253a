package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/pkg/xredis"
)

type redisBus[T any] struct {
	*fanout[T]

	client  redis.UniversalClient
	channel string

	pubsub *redis.PubSub
	cancel context.CancelFunc
}

// NewRedis returns a bus that publishes JSON encoded values on a redis
// channel. The channel is subscribed while the bus has subscribers.
func NewRedis[T any](client redis.UniversalClient, channel string, buffer int) (Bus[T], error) {
	if client == nil {
		return nil, errors.New("broadcast: redis client is required")
	}

	if channel == "" {
		return nil, errors.New("broadcast: channel is required")
	}

	b := &redisBus[T]{
		fanout:  newFanout[T](buffer),
		client:  client,
		channel: channel,
	}
	b.start = b.listen
	b.stop = b.close

	return b, nil
}

// NewRedisFromConfig connects to redis with cfg and returns a bus on channel.
func NewRedisFromConfig[T any](ctx context.Context, cfg xredis.Config, channel string, buffer int) (Bus[T], error) {
	client, err := xredis.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}

	return NewRedis[T](client, channel, buffer)
}

func (b *redisBus[T]) Publish(ctx context.Context, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("broadcast: failed to encode value: %w", err)
	}

	return b.client.Publish(ctx, b.channel, payload).Err()
}

func (b *redisBus[T]) listen() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	b.pubsub = b.client.Subscribe(ctx, b.channel)
	// Wait for the subscription so values published right after Subscribe arrive.
	if _, err := b.pubsub.Receive(ctx); err != nil {
		log.Warn(ctx, "broadcast subscribe failed", log.String("channel", b.channel), log.Cause(err))
	}

	go b.receive(ctx, b.pubsub)
}

func (b *redisBus[T]) receive(ctx context.Context, ps *redis.PubSub) {
	for {
		msg, err := ps.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, redis.ErrClosed) {
				return
			}

			log.Warn(ctx, "broadcast receive failed", log.String("channel", b.channel), log.Cause(err))

			continue
		}

		var v T
		if err := json.Unmarshal([]byte(msg.Payload), &v); err != nil {
			log.Warn(ctx, "broadcast decode failed",
				log.String("channel", b.channel),
				log.String("payload", msg.Payload),
				log.Cause(err),
			)

			continue
		}

		b.deliver(v)
	}
}

func (b *redisBus[T]) close() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}

	if b.pubsub != nil {
		_ = b.pubsub.Close()
		b.pubsub = nil
	}
}
