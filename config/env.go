package config

import "os"

var Envs = struct {
	PORT            string
	FRONTEND_ORIGIN string
	JWT_KEY         []byte
	GIN_MODE        string
}{
	PORT:            envOr("PORT", "3003"),
	FRONTEND_ORIGIN: os.Getenv("FRONTEND_ORIGIN"),
	JWT_KEY:         []byte(os.Getenv("JWT_KEY")),
	GIN_MODE:        os.Getenv("GIN_MODE"),
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
