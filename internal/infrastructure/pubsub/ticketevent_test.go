package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func TestRedisTicketEventBus_RelaysToOtherInstances(t *testing.T) {
	client := setupRedis(t)
	sender := NewRedisTicketEventBus(client, logger.NewNopLogger())
	receiver := NewRedisTicketEventBus(client, logger.NewNopLogger())
	require.NotEqual(t, sender.InstanceID(), receiver.InstanceID())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan TicketEvent, 2)
	selfEcho := make(chan TicketEvent, 2)
	go func() { _ = receiver.SubscribeTicketEvents(ctx, func(e TicketEvent) { got <- e }) }()
	go func() { _ = sender.SubscribeTicketEvents(ctx, func(e TicketEvent) { selfEcho <- e }) }()

	// wait for both subscriptions to register
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(ctx, ticketRoomChannel).Result()
		return err == nil && n[ticketRoomChannel] == 2
	}, 2*time.Second, 20*time.Millisecond)

	data, _ := json.Marshal(map[string]any{"id": 5})
	require.NoError(t, sender.PublishTicketEvent(ctx, TicketEvent{TicketID: 3, Event: "new-message", Data: data}))

	select {
	case e := <-got:
		assert.Equal(t, uint(3), e.TicketID)
		assert.Equal(t, "new-message", e.Event)
		assert.JSONEq(t, `{"id":5}`, string(e.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("event not relayed")
	}

	select {
	case <-selfEcho:
		t.Fatal("sender received its own event")
	case <-time.After(100 * time.Millisecond):
	}
}
