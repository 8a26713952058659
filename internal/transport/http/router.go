package http

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/transport/http/middleware"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/transport/websocket"
	"github.com/iamasit07/4-in-a-row/hotseat/web"
)

// RouterDeps are the handlers and settings the router is built from
type RouterDeps struct {
	SessionManager *game.SessionManager
	WSHandler      *websocket.Handler
	AllowedOrigins []string
	Development    bool
	Log            *zap.SugaredLogger
}

// NewRouter wires the API, the WebSocket endpoint and the embedded client.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(deps.Log), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins, deps.Log))

	sessionHandler := NewSessionHandler(deps.SessionManager)

	api := router.Group("/api")
	{
		api.GET("/health", sessionHandler.Health)
		api.GET("/sessions/:id", sessionHandler.GetSession)
	}

	// WebSocket Route (origin is checked by the upgrader)
	router.GET("/ws", gin.WrapF(deps.WSHandler.HandleWebSocket))

	root := web.Static()
	if assets, err := fs.Sub(root, "assets"); err == nil {
		router.StaticFS("/assets", http.FS(assets))
	}
	router.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(root))
	})

	return router
}
