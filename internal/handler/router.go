/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file defines the main Router, applying middleware (logging, CORS, IP-based
rate limiting) before delegating requests to the health and WebSocket handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/ssirawiitch/Socket-Programming/internal/app/chat"
	"github.com/ssirawiitch/Socket-Programming/internal/configs"
	"github.com/ssirawiitch/Socket-Programming/internal/pkg/limiter"
	"github.com/ssirawiitch/Socket-Programming/internal/pkg/logx"
	"github.com/ssirawiitch/Socket-Programming/internal/pkg/resp"
)

const (
	// ConnectRate limits how often a single IP may open new websocket connections.
	ConnectRate  = 0.2
	ConnectBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes the per-IP connect limiter, configures CORS, and applies global
// middleware before wiring the health and websocket endpoints.
func Router(hub *chat.Hub, cfg *configs.AppConfig) http.Handler {
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if cfg.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if cfg.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(cfg.AllowedOrigins) > 0 {
		corsAllowedOrigins = cfg.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status": "ok",
			"online": hub.OnlineCount(),
		}
		resp.RespondSuccess(w, r, data)
	})

	r.With(connectLimiter.Middleware).Get("/ws", HandleWebSocket(hub, wsUpgrader))

	return r
}
