// Package services provides infrastructure services.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cerberus-dev/cerberus/internal/infrastructure/pubsub"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

// Ticket room events pushed to websocket clients.
const (
	TicketEventNewMessage    = "new-message"
	TicketEventStatusChanged = "status-changed"
)

// RoomFrame is the server-to-client websocket payload.
type RoomFrame struct {
	Event    string          `json:"event"`
	TicketID uint            `json:"ticket_id"`
	Data     json.RawMessage `json:"data"`
}

// RoomConn is one websocket connection. It may be in several rooms.
type RoomConn struct {
	ID          string
	UserID      uint
	Role        authorization.UserRole
	Send        chan []byte
	ConnectedAt time.Time

	rooms  map[uint]struct{}
	closed atomic.Bool
}

// TrySend queues data without blocking. Returns false when the connection
// is closed or its buffer is full.
func (c *RoomConn) TrySend(data []byte) (sent bool) {
	if c.closed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *RoomConn) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.Send)
	}
}

// TicketHub tracks websocket connections and their ticket rooms. A
// broadcast reaches local room members directly and other instances
// through the event bus.
type TicketHub struct {
	mu    sync.RWMutex
	conns map[string]*RoomConn
	rooms map[uint]map[string]*RoomConn

	publisher pubsub.TicketEventPublisher
	logger    logger.Interface
}

// NewTicketHub builds a hub. A nil publisher keeps broadcasts local.
func NewTicketHub(publisher pubsub.TicketEventPublisher, log logger.Interface) *TicketHub {
	return &TicketHub{
		conns:     make(map[string]*RoomConn),
		rooms:     make(map[uint]map[string]*RoomConn),
		publisher: publisher,
		logger:    log,
	}
}

func (h *TicketHub) Register(userID uint, role authorization.UserRole) *RoomConn {
	conn := &RoomConn{
		ID:          uuid.NewString(),
		UserID:      userID,
		Role:        role,
		Send:        make(chan []byte, 64),
		ConnectedAt: time.Now(),
		rooms:       make(map[uint]struct{}),
	}

	h.mu.Lock()
	h.conns[conn.ID] = conn
	h.mu.Unlock()

	h.logger.Debugw("ticket socket connected", "conn_id", conn.ID, "user_id", userID)
	return conn
}

// Unregister removes conn from every room and closes it.
func (h *TicketHub) Unregister(conn *RoomConn) {
	h.mu.Lock()
	if _, ok := h.conns[conn.ID]; ok {
		for ticketID := range conn.rooms {
			h.removeFromRoomLocked(ticketID, conn)
		}
		delete(h.conns, conn.ID)
	}
	h.mu.Unlock()

	conn.Close()
	h.logger.Debugw("ticket socket disconnected", "conn_id", conn.ID, "user_id", conn.UserID)
}

func (h *TicketHub) Join(conn *RoomConn, ticketID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn.ID]; !ok {
		return
	}
	room, ok := h.rooms[ticketID]
	if !ok {
		room = make(map[string]*RoomConn)
		h.rooms[ticketID] = room
	}
	room[conn.ID] = conn
	conn.rooms[ticketID] = struct{}{}
}

func (h *TicketHub) Leave(conn *RoomConn, ticketID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoomLocked(ticketID, conn)
}

func (h *TicketHub) removeFromRoomLocked(ticketID uint, conn *RoomConn) {
	if room, ok := h.rooms[ticketID]; ok {
		delete(room, conn.ID)
		if len(room) == 0 {
			delete(h.rooms, ticketID)
		}
	}
	delete(conn.rooms, ticketID)
}

// RoomSize returns the number of local members of a ticket room.
func (h *TicketHub) RoomSize(ticketID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[ticketID])
}

func (h *TicketHub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// BroadcastTicket sends event to every member of the ticket's room, here and
// on other instances. Local delivery happens even when publishing fails.
func (h *TicketHub) BroadcastTicket(ctx context.Context, ticketID uint, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal room payload: %w", err)
	}

	h.deliver(ticketID, event, raw)

	if h.publisher == nil {
		return nil
	}
	return h.publisher.PublishTicketEvent(ctx, pubsub.TicketEvent{
		TicketID: ticketID,
		Event:    event,
		Data:     raw,
	})
}

// HandleRemoteEvent delivers an event relayed from another instance.
func (h *TicketHub) HandleRemoteEvent(event pubsub.TicketEvent) {
	h.deliver(event.TicketID, event.Event, event.Data)
}

func (h *TicketHub) deliver(ticketID uint, event string, raw json.RawMessage) {
	frame, err := json.Marshal(RoomFrame{Event: event, TicketID: ticketID, Data: raw})
	if err != nil {
		h.logger.Warnw("failed to marshal room frame", "ticket_id", ticketID, "error", err)
		return
	}

	h.mu.RLock()
	members := make([]*RoomConn, 0, len(h.rooms[ticketID]))
	for _, c := range h.rooms[ticketID] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	staffOnly := isInternalPayload(raw)
	for _, c := range members {
		if staffOnly && !c.Role.IsStaff() {
			continue
		}
		if !c.TrySend(frame) {
			h.logger.Debugw("dropped room frame for slow socket",
				"conn_id", c.ID,
				"ticket_id", ticketID,
			)
		}
	}
}

// Run relays events from other instances until ctx is done.
func (h *TicketHub) Run(ctx context.Context, subscriber pubsub.TicketEventSubscriber) error {
	if subscriber == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return subscriber.SubscribeTicketEvents(ctx, h.HandleRemoteEvent)
}

// Shutdown closes every connection.
func (h *TicketHub) Shutdown() {
	h.mu.Lock()
	conns := make([]*RoomConn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[string]*RoomConn)
	h.rooms = make(map[uint]map[string]*RoomConn)
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
	h.logger.Infow("ticket hub shut down", "connections", len(conns))
}

// isInternalPayload reports whether the payload is flagged as a staff-only
// note. Such frames never reach client connections, whatever the event.
func isInternalPayload(raw json.RawMessage) bool {
	var flag struct {
		IsInternal bool `json:"isInternal"`
	}
	return json.Unmarshal(raw, &flag) == nil && flag.IsInternal
}
