package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/cerberus-dev/cerberus/internal/application/ticket/usecases"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/services"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/goroutine"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

const (
	roomWriteWait  = 10 * time.Second
	roomPongWait   = 60 * time.Second
	roomPingPeriod = 30 * time.Second
	roomReadLimit  = 4096
	roomJoinWait   = 5 * time.Second

	actionJoin  = "join"
	actionLeave = "leave"
)

// RoomHandler serves GET /api/tickets/ws. A socket joins ticket rooms with
// {"action":"join","ticket_id":N} and receives every event broadcast to
// them.
type RoomHandler struct {
	hub      roomHub
	access   roomAccess
	upgrader websocket.Upgrader
	logger   logger.Interface
}

func NewRoomHandler(hub roomHub, access roomAccess, allowedOrigins []string, logger logger.Interface) *RoomHandler {
	return &RoomHandler{
		hub:    hub,
		access: access,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		logger: logger,
	}
}

// checkOrigin admits same-host pages and the configured origins.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if slices.Contains(allowed, origin) {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

func (h *RoomHandler) Connect(c *gin.Context) {
	actor := actorOf(c)

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("failed to upgrade ticket socket", "error", err, "user_id", actor.UserID)
		return
	}

	conn := h.hub.Register(actor.UserID, actor.Role)

	goroutine.SafeGo(h.logger, "ticket-room-write-pump", func() {
		h.writePump(ws, conn)
	})
	h.readPump(ws, conn, actor)
}

func (h *RoomHandler) readPump(ws *websocket.Conn, conn *services.RoomConn, actor usecases.Actor) {
	defer func() {
		h.hub.Unregister(conn)
		ws.Close()
	}()

	ws.SetReadLimit(roomReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(roomPongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(roomPongWait))
	})

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnw("ticket socket read error", "error", err, "user_id", actor.UserID)
			}
			return
		}

		var req roomRequest
		if err := json.Unmarshal(message, &req); err != nil || req.TicketID == 0 {
			h.reply(conn, roomReply{Event: "error", Error: "bad_request"})
			continue
		}

		switch req.Action {
		case actionJoin:
			h.join(conn, actor, req.TicketID)
		case actionLeave:
			h.hub.Leave(conn, req.TicketID)
			h.reply(conn, roomReply{Event: "left", TicketID: req.TicketID})
		default:
			h.reply(conn, roomReply{Event: "error", TicketID: req.TicketID, Error: "bad_action"})
		}
	}
}

func (h *RoomHandler) join(conn *services.RoomConn, actor usecases.Actor, ticketID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), roomJoinWait)
	defer cancel()

	if err := h.access.Execute(ctx, actor, ticketID); err != nil {
		code := "internal_error"
		if appErr := errors.GetAppError(err); appErr != nil {
			code = appErr.Message
		} else {
			h.logger.Errorw("failed to check ticket room access", "error", err, "ticket_id", ticketID)
		}
		h.reply(conn, roomReply{Event: "error", TicketID: ticketID, Error: code})
		return
	}

	h.hub.Join(conn, ticketID)
	h.reply(conn, roomReply{Event: "joined", TicketID: ticketID})
}

func (h *RoomHandler) reply(conn *services.RoomConn, r roomReply) {
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	conn.TrySend(data)
}

func (h *RoomHandler) writePump(ws *websocket.Conn, conn *services.RoomConn) {
	ticker := time.NewTicker(roomPingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case msg, ok := <-conn.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(roomWriteWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debugw("failed to write to ticket socket", "error", err, "conn_id", conn.ID)
				return
			}

		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(roomWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
