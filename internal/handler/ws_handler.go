/*
Package handler provides the HTTP handler function for WebSocket connection upgrading.

This file contains HandleWebSocket, which upgrades the HTTP connection to
WebSocket and starts the client's read and write pumps. Per-IP connect limiting
happens in the router middleware; identity is established afterwards by the
in-band handshake event.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ssirawiitch/Socket-Programming/internal/app/chat"
	"github.com/ssirawiitch/Socket-Programming/internal/pkg/logx"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(hub *chat.Hub, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(hub, conn, r.RemoteAddr)

		go client.WritePump()

		logx.Info("WebSocket connection established, awaiting handshake", "remote_addr", r.RemoteAddr)

		client.ReadPump()
	}
}
