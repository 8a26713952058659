package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
	"github.com/iamasit07/4-in-a-row/hotseat/pkg/uid"
)

type SessionHandler struct {
	SessionManager *game.SessionManager
}

func NewSessionHandler(sm *game.SessionManager) *SessionHandler {
	return &SessionHandler{SessionManager: sm}
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// Health reports liveness and the number of sessions held in memory
func (h *SessionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Sessions: h.SessionManager.Count()})
}

// GetSession returns the current board of a session, from memory when it is
// live or from the snapshot store otherwise.
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if !uid.IsSessionID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	if session, ok := h.SessionManager.GetSession(id); ok {
		c.JSON(http.StatusOK, session.Snapshot())
		return
	}

	store := h.SessionManager.Store()
	if store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	snapshot, err := store.Load(c.Request.Context(), id)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
