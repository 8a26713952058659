package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
	"github.com/iamasit07/4-in-a-row/hotseat/pkg/auth"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	// largest client frame; the protocol only carries a column or two colours
	maxMessageSize = 4096
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Issuer         *auth.Issuer
	Upgrader       websocket.Upgrader
	log            *zap.SugaredLogger
}

// NewHandler creates a new WebSocket handler. Same-origin requests are always
// accepted; cross-origin ones only when listed in allowedOrigins.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, issuer *auth.Issuer, allowedOrigins []string, log *zap.SugaredLogger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Issuer:         issuer,
		log:            log,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("[WS] Upgrade error", "error", err)
		return
	}

	h.handleConnection(r.Context(), conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	client := NewClient(conn, h.log)
	defer client.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(client, done)

	// 1. Wait for init, which may carry a token from an earlier visit
	var init domain.ClientMessage
	if err := conn.ReadJSON(&init); err != nil {
		h.log.Debugw("[WS] Read error during init", "error", err)
		return
	}
	if init.Type != domain.MsgInit {
		client.Send(domain.ServerMessage{Type: domain.MsgError, Message: "expected init message"})
		return
	}

	session, err := h.attachSession(ctx, init.Token, client)
	if err != nil {
		h.log.Errorw("[WS] Could not open session", "error", err)
		client.Send(domain.ServerMessage{Type: domain.MsgError, Message: "could not open session"})
		return
	}

	token, err := h.Issuer.GenerateSessionToken(session.ID)
	if err != nil {
		h.log.Errorw("[WS] Could not sign session token", "session", session.ID, "error", err)
		session.Detach(client)
		client.Send(domain.ServerMessage{Type: domain.MsgError, Message: "could not open session"})
		return
	}

	h.ConnManager.AddConnection(session.ID, client)
	state := session.Snapshot()
	hello := domain.ServerMessage{
		Type:      domain.MsgSession,
		SessionID: session.ID,
		Token:     token,
		State:     &state,
	}
	// a resumed round that already finished carries its result
	if outcome, winner, over := session.Outcome(); over {
		hello.Message = game.EndMessage(outcome, winner)
		hello.Result = outcome.Result
		hello.Winner = outcome.Winner
		hello.Color = winner.Color
		hello.Line = outcome.Line
	}
	client.Send(hello)
	h.log.Infow("[WS] Connection initialized", "session", session.ID, "phase", state.Phase)

	// 2. Cleanup on exit
	defer func() {
		session.Detach(client)
		h.ConnManager.RemoveConnectionIfMatching(session.ID, client)
		h.log.Infow("[WS] Connection closed", "session", session.ID)
	}()

	// 3. Main message loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debugw("[WS] Disconnected unexpectedly", "session", session.ID, "error", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debugw("[WS] Invalid message format", "session", session.ID, "error", err)
			client.Send(domain.ServerMessage{Type: domain.MsgError, Message: "invalid message"})
			continue
		}

		h.processMessage(ctx, session, client, msg)
	}
}

// attachSession resumes the session named by token, or creates a new one
// when there is no usable token.
func (h *Handler) attachSession(ctx context.Context, token string, client *Client) (*game.Session, error) {
	if token != "" {
		claims, err := h.Issuer.ValidateSessionToken(token)
		if err == nil {
			session, err := h.SessionManager.ResumeSession(ctx, claims.SessionID, client)
			if err == nil {
				return session, nil
			}
			if !errors.Is(err, domain.ErrSessionNotFound) {
				return nil, err
			}
			h.log.Debugw("[WS] Token names an unknown session, starting fresh", "session", claims.SessionID)
		} else {
			h.log.Debugw("[WS] Ignoring invalid session token", "error", err)
		}
	}

	return h.SessionManager.CreateSession(ctx, client)
}

// processMessage routes inbound UI events to the session
func (h *Handler) processMessage(ctx context.Context, session *game.Session, client *Client, msg domain.ClientMessage) {
	switch msg.Type {
	case domain.MsgSelectColumn:
		session.HandleColumnSelected(ctx, msg.Column)

	case domain.MsgStart:
		session.HandleStartRequested(ctx, msg.Color1, msg.Color2)

	case domain.MsgRestart:
		session.HandleRestartRequested(ctx)

	default:
		client.Send(domain.ServerMessage{Type: domain.MsgError, Message: "unknown message type"})
	}
}

// keepAlive pings until done is closed or a write fails
func (h *Handler) keepAlive(client *Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := client.ping(); err != nil {
				return
			}
		}
	}
}
