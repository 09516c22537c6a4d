package game

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Ghostzzz0507/uno/logger"
)

type GameHandler struct {
	registry *Registry
	tokens   TokenVerifier
}

func NewGameHandler(registry *Registry, tokens TokenVerifier) *GameHandler {
	return &GameHandler{registry: registry, tokens: tokens}
}

func RegisterRoute(router gin.IRouter, registry *Registry, tokens TokenVerifier) {
	h := NewGameHandler(registry, tokens)
	router.GET("/ws", h.ConnectHandler)
}

// ConnectHandler upgrades the connection and binds it to the player identity
// carried by the token. Rooms are created and joined afterwards via commands
// on the socket itself.
func (h *GameHandler) ConnectHandler(ctx *gin.Context) {
	playerID, name, err := h.tokens.Verify(ctx.Query("token"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warningf("WS upgrade failed for %s: %v", ctx.ClientIP(), err)
		return
	}

	sess := newSession(playerID, name, NewWebsocketConnection(conn), h.registry)
	go sess.ReadPump()
	go sess.WritePump()
}
