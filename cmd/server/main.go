package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Ghostzzz0507/uno/auth"
	"github.com/Ghostzzz0507/uno/config"
	"github.com/Ghostzzz0507/uno/game"
	"github.com/Ghostzzz0507/uno/logger"
)

const autoStartDelay = 2500 * time.Millisecond

func main() {
	if config.Envs.GIN_MODE == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger.SetDebug()
	}

	var allowedOrigins []string
	if config.Envs.GIN_MODE == "release" {
		allowedOrigins = append(allowedOrigins, "https://"+config.Envs.FRONTEND_ORIGIN)
		allowedOrigins = append(allowedOrigins, "https://www."+config.Envs.FRONTEND_ORIGIN)
	} else {
		allowedOrigins = append(allowedOrigins, "http://"+config.Envs.FRONTEND_ORIGIN)
	}

	r := gin.Default()

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{"Content-Type", "Origin"},
	}))

	tokens := auth.NewJWTManager(config.Envs.JWT_KEY, time.Hour*24)
	registry := game.NewRegistry(game.NewIdgen(), func() game.DeckBuilder {
		return game.NewDeckManager()
	}, autoStartDelay)

	done := make(chan struct{})
	defer close(done)
	go registry.RunTickers(done)

	auth.RegisterRoute(r, tokens)
	game.RegisterRoute(r, registry, tokens)

	logger.Infof("api listening on port %s", config.Envs.PORT)
	err := r.Run(":" + config.Envs.PORT)
	logger.Fatalf("Couldn't start server: %v", err)
}
