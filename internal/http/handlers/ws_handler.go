package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/adforge/backend/internal/auth"
	"github.com/adforge/backend/internal/config"
	"github.com/adforge/backend/internal/events"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WSHub relays pipeline progress events to connected browsers. Connections
// are keyed by session id and each event is delivered only to the session it
// names, so one advertiser never sees another's run.
type WSHub struct {
	cfg         *config.Config
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[uuid.UUID][]*websocket.Conn
}

func NewWSHub(cfg *config.Config, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:         cfg,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[uuid.UUID][]*websocket.Conn),
	}
}

func (h *WSHub) Start(ctx context.Context) {
	_ = h.subscriber.Subscribe(ctx, events.StreamRuns, func(event events.Event) {
		h.dispatch(event)
	})
}

// dispatch routes an event to the session its payload names. Events without
// a parseable session id are dropped.
func (h *WSHub) dispatch(event events.Event) {
	raw, _ := event.Payload["session_id"].(string)
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return
	}
	h.SendToSession(sessionID, event)
}

func (h *WSHub) SendToSession(sessionID uuid.UUID, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[sessionID] {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	// Browsers cannot set headers on websocket dials, so the token rides the
	// query string.
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseSessionJWT(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	sessionID := claims.SessionID

	h.mu.Lock()
	h.connections[sessionID] = append(h.connections[sessionID], conn)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		conns := h.connections[sessionID]
		for i, c := range conns {
			if c == conn {
				h.connections[sessionID] = append(conns[:i], conns[i+1:]...)
				break
			}
		}
		if len(h.connections[sessionID]) == 0 {
			delete(h.connections, sessionID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
