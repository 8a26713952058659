package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
)

const writeWait = 10 * time.Second

// Client is one browser connection. It is the Notifier of the session it plays.
type Client struct {
	conn *websocket.Conn
	log  *zap.SugaredLogger

	// conn.WriteJSON is not safe for concurrent use; the end-of-game timer
	// and the pinger write from their own goroutines.
	writeMu sync.Mutex
}

func NewClient(conn *websocket.Conn, log *zap.SugaredLogger) *Client {
	return &Client{conn: conn, log: log}
}

// Send writes one JSON message. Errors are logged and returned; the read
// loop notices a dead socket on its own.
func (c *Client) Send(message domain.ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(message); err != nil {
		c.log.Debugw("[WS] write failed", "type", message.Type, "error", err)
		return err
	}
	return nil
}

func (c *Client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) PiecePlaced(move domain.Move, player domain.Player) {
	row, column := move.Row, move.Column
	c.Send(domain.ServerMessage{
		Type:   domain.MsgPiecePlaced,
		Row:    &row,
		Column: &column,
		Player: player.ID,
		Color:  player.Color,
	})
}

func (c *Client) TurnChanged(player domain.Player) {
	c.Send(domain.ServerMessage{
		Type:   domain.MsgTurnChanged,
		Player: player.ID,
		Color:  player.Color,
	})
}

func (c *Client) GameEnded(outcome domain.Outcome, winner domain.Player) {
	c.Send(domain.ServerMessage{
		Type:    domain.MsgGameOver,
		Message: game.EndMessage(outcome, winner),
		Result:  outcome.Result,
		Winner:  outcome.Winner,
		Color:   winner.Color,
		Line:    outcome.Line,
	})
}

func (c *Client) ConfigurationRejected(reason string) {
	c.Send(domain.ServerMessage{
		Type:    domain.MsgConfigRejected,
		Message: reason,
	})
}

func (c *Client) Restarted(state domain.Snapshot) {
	c.Send(domain.ServerMessage{
		Type:  domain.MsgRestarted,
		State: &state,
	})
}

// ConnectionManager tracks the connection currently driving each session.
type ConnectionManager struct {
	clients map[string]*Client // sessionID → client
	mu      sync.Mutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{clients: make(map[string]*Client)}
}

// AddConnection registers c for sessionID and closes the connection it replaces,
// so only one tab drives a session at a time.
func (cm *ConnectionManager) AddConnection(sessionID string, c *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if old, exists := cm.clients[sessionID]; exists && old != c {
		old.Send(domain.ServerMessage{Type: domain.MsgError, Message: "Session opened in another tab"})
		old.Close()
	}
	cm.clients[sessionID] = c
}

// RemoveConnectionIfMatching avoids dropping a newer connection when an old one shuts down.
func (cm *ConnectionManager) RemoveConnectionIfMatching(sessionID string, c *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.clients[sessionID]; exists && current == c {
		delete(cm.clients, sessionID)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return len(cm.clients)
}
