package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/pubsub"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

type recordingPublisher struct {
	events []pubsub.TicketEvent
	err    error
}

func (p *recordingPublisher) PublishTicketEvent(_ context.Context, e pubsub.TicketEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func readFrame(t *testing.T, c *RoomConn) RoomFrame {
	t.Helper()
	select {
	case data := <-c.Send:
		var f RoomFrame
		require.NoError(t, json.Unmarshal(data, &f))
		return f
	default:
		t.Fatal("expected a frame")
		return RoomFrame{}
	}
}

func TestTicketHub_BroadcastReachesRoomOnly(t *testing.T) {
	pub := &recordingPublisher{}
	hub := NewTicketHub(pub, logger.NewNopLogger())

	staff := hub.Register(1, authorization.RoleSupport)
	client := hub.Register(2, authorization.RoleClient)
	other := hub.Register(3, authorization.RoleClient)
	hub.Join(staff, 10)
	hub.Join(client, 10)
	hub.Join(other, 11)
	assert.Equal(t, 2, hub.RoomSize(10))

	require.NoError(t, hub.BroadcastTicket(context.Background(), 10, TicketEventNewMessage, map[string]any{"message": "hola"}))

	for _, c := range []*RoomConn{staff, client} {
		f := readFrame(t, c)
		assert.Equal(t, TicketEventNewMessage, f.Event)
		assert.Equal(t, uint(10), f.TicketID)
		assert.JSONEq(t, `{"message":"hola"}`, string(f.Data))
	}
	assert.Empty(t, other.Send)
	require.Len(t, pub.events, 1)
	assert.Equal(t, uint(10), pub.events[0].TicketID)
}

func TestTicketHub_LocalDeliveryWhenPublishFails(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis down")}
	hub := NewTicketHub(pub, logger.NewNopLogger())
	c := hub.Register(1, authorization.RoleAdmin)
	hub.Join(c, 4)

	err := hub.BroadcastTicket(context.Background(), 4, TicketEventNewMessage, "x")
	assert.Error(t, err)
	assert.Equal(t, TicketEventNewMessage, readFrame(t, c).Event)
}

func TestTicketHub_LeaveAndUnregister(t *testing.T) {
	hub := NewTicketHub(nil, logger.NewNopLogger())
	c := hub.Register(1, authorization.RoleAdmin)
	hub.Join(c, 1)
	hub.Join(c, 2)

	hub.Leave(c, 1)
	assert.Equal(t, 0, hub.RoomSize(1))
	assert.Equal(t, 1, hub.RoomSize(2))

	hub.Unregister(c)
	assert.Equal(t, 0, hub.RoomSize(2))
	assert.Equal(t, 0, hub.ConnCount())
	assert.False(t, c.TrySend([]byte("x")))

	// joining after unregister is a no-op
	hub.Join(c, 3)
	assert.Equal(t, 0, hub.RoomSize(3))
}

func TestTicketHub_RemoteEvents(t *testing.T) {
	hub := NewTicketHub(nil, logger.NewNopLogger())
	c := hub.Register(1, authorization.RoleAdmin)
	hub.Join(c, 8)

	hub.HandleRemoteEvent(pubsub.TicketEvent{TicketID: 8, Event: TicketEventStatusChanged, Data: json.RawMessage(`{"status":"closed"}`)})
	f := readFrame(t, c)
	assert.Equal(t, TicketEventStatusChanged, f.Event)

	hub.Shutdown()
	assert.Equal(t, 0, hub.ConnCount())
}

func TestTicketHub_InternalNotesSkipClients(t *testing.T) {
	hub := NewTicketHub(nil, logger.NewNopLogger())
	staff := hub.Register(1, authorization.RoleAdmin)
	support := hub.Register(3, authorization.RoleSupport)
	client := hub.Register(2, authorization.RoleClient)
	hub.Join(staff, 5)
	hub.Join(support, 5)
	hub.Join(client, 5)

	note := map[string]any{"message": "revisar logs", "isInternal": true}
	require.NoError(t, hub.BroadcastTicket(context.Background(), 5, TicketEventNewMessage, note))

	for _, c := range []*RoomConn{staff, support} {
		f := readFrame(t, c)
		assert.Equal(t, TicketEventNewMessage, f.Event)
		assert.JSONEq(t, `{"message":"revisar logs","isInternal":true}`, string(f.Data))
	}
	assert.Empty(t, client.Send)

	// a relayed note from another instance is filtered the same way
	hub.HandleRemoteEvent(pubsub.TicketEvent{TicketID: 5, Event: TicketEventNewMessage, Data: json.RawMessage(`{"isInternal":true}`)})
	assert.Equal(t, TicketEventNewMessage, readFrame(t, staff).Event)
	assert.Empty(t, client.Send)

	require.NoError(t, hub.BroadcastTicket(context.Background(), 5, TicketEventNewMessage, map[string]any{"isInternal": false}))
	assert.Equal(t, TicketEventNewMessage, readFrame(t, client).Event)
}
