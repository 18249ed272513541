package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cerberus-dev/cerberus/internal/shared/goroutine"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

const ticketRoomChannel = "cerberus:tickets:rooms"

// TicketEvent is a room broadcast relayed between instances.
type TicketEvent struct {
	TicketID   uint            `json:"ticket_id"`
	Event      string          `json:"event"`
	Data       json.RawMessage `json:"data"`
	InstanceID string          `json:"instance_id,omitempty"`
}

// TicketEventPublisher relays a room broadcast to the other instances.
type TicketEventPublisher interface {
	PublishTicketEvent(ctx context.Context, event TicketEvent) error
}

// TicketEventSubscriber receives broadcasts published by other instances.
type TicketEventSubscriber interface {
	SubscribeTicketEvents(ctx context.Context, handler func(event TicketEvent)) error
}

// RedisTicketEventBus implements both sides on Redis Pub/Sub.
type RedisTicketEventBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

func NewRedisTicketEventBus(client *redis.Client, logger logger.Interface) *RedisTicketEventBus {
	return &RedisTicketEventBus{
		client:     client,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisTicketEventBus) InstanceID() string {
	return b.instanceID
}

// PublishTicketEvent stamps the instance id so the sender skips its own echo.
func (b *RedisTicketEventBus) PublishTicketEvent(ctx context.Context, event TicketEvent) error {
	event.InstanceID = b.instanceID
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	if err := b.client.Publish(ctx, ticketRoomChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ticket event",
			"ticket_id", event.TicketID,
			"event", event.Event,
			"error", err,
		)
		return fmt.Errorf("failed to publish ticket event: %w", err)
	}
	return nil
}

// SubscribeTicketEvents blocks until ctx is done, reconnecting with backoff.
// Events published by this instance are filtered out.
func (b *RedisTicketEventBus) SubscribeTicketEvents(ctx context.Context, handler func(event TicketEvent)) error {
	return b.subscribeWithReconnect(ctx, ticketRoomChannel, func(payload string) {
		var event TicketEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			b.logger.Warnw("failed to unmarshal ticket event",
				"payload", payload,
				"error", err,
			)
			return
		}
		if event.InstanceID == b.instanceID {
			return
		}
		handler(event)
	})
}

func (b *RedisTicketEventBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("ticket event subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisTicketEventBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	ps := b.client.Subscribe(ctx, channel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to ticket event channel", "channel", channel)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("ticket event channel closed", "channel", channel)
				return nil
			}
			goroutine.SafeGo(b.logger, "ticket-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
