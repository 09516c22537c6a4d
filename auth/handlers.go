package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxNameLength = 24

type guestRequest struct {
	Name string `json:"name"`
}

func RegisterRoute(router gin.IRouter, manager *JWTManager) {
	router.POST("/auth/guest", GuestHandler(manager))
}

// GuestHandler hands out a signed identity token for a display name. No
// accounts, no passwords: one token per prospective player.
func GuestHandler(manager *JWTManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req guestRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-request-format"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
			return
		}
		if len(name) > maxNameLength {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name is too long"})
			return
		}

		token, playerID, err := manager.Generate(name, time.Now())
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"token":    token,
			"playerId": playerID,
			"name":     name,
		})
	}
}
