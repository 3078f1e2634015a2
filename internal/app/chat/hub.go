/*
Package chat contains the core logic for the in-memory message fan-out hub.

This file defines the Hub struct, the coordinator that owns all four shared
stores (identity registry, room directory, message ledger, alias pool) behind a
single mutex, and the fan-out broadcaster that delivers serialized events to
room members.
*/
package chat

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ssirawiitch/Socket-Programming/internal/pkg/logx"
)

// Hub coordinates all shared chat state. Every mutation of the four stores
// happens under mu; per-recipient sends happen after the lock is released.
type Hub struct {
	mu sync.Mutex

	registry *registry
	rooms    *directory
	ledger   *ledger
	aliases  *aliasPool

	// structured logger with Hub context.
	logger zerolog.Logger
}

// NewHub constructs a Hub with an empty registry, the permanent global room,
// an empty ledger, and an empty alias pool.
func NewHub() *Hub {
	hubLogger := logx.Logger().With().Str("component", "Hub").Logger()

	return &Hub{
		registry: newRegistry(),
		rooms:    newDirectory(),
		ledger:   newLedger(),
		aliases:  newAliasPool(),
		logger:   hubLogger,
	}
}

// broadcast serializes the event once and delivers it to every connection in
// the room's member set at call time. The member list is copied under the lock
// and sends happen outside it. A connection whose send fails is pruned from
// that room's member set only; authoritative disconnect cleanup stays with the
// transport-level disconnect path, because a failed send only proves the
// membership edge is stale.
func (h *Hub) broadcast(roomName string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("room", roomName).Msg("Error marshaling event for broadcast.")
		return
	}

	h.mu.Lock()
	members := h.rooms.members(roomName)
	h.mu.Unlock()

	var stale []*Client
	for _, m := range members {
		if err := m.enqueue(payload); err != nil {
			stale = append(stale, m)
		}
	}

	if len(stale) == 0 {
		return
	}

	h.mu.Lock()
	for _, m := range stale {
		h.rooms.removeMember(roomName, m)
	}
	h.mu.Unlock()

	h.logger.Warn().
		Str("room", roomName).
		Int("pruned", len(stale)).
		Msg("Pruned unreachable connections from room during broadcast.")
}

// dropClient removes the connection from every store and, if it was registered,
// notifies the global room. The order is fixed: unregister identity, release
// alias, prune room memberships, purge owned ledger entries, then broadcast the
// updated roster followed by the leave notice, so observers never see a stale
// roster after the leave notice.
func (h *Hub) dropClient(c *Client) {
	h.mu.Lock()

	p, wasRegistered := h.registry.unregister(c)
	h.aliases.release(c)
	h.rooms.prune(c)
	h.ledger.purgeOwner(c)

	users := h.registry.snapshot()
	h.mu.Unlock()

	if !wasRegistered {
		return
	}

	h.logger.Info().Str("username", p.Name).Int("online", len(users)).Msg("Client left.")

	h.broadcast(GlobalRoom, newUserListEvent(users))
	h.broadcast(GlobalRoom, newSystemEvent(GlobalRoom, p.Name+" left the chat"))
}

// groupListLocked assembles the group_list snapshot. Callers must hold mu.
func (h *Hub) groupListLocked() []GroupInfo {
	return h.rooms.groupSnapshot(func(c *Client) (string, bool) {
		p, ok := h.registry.lookup(c)
		return p.Name, ok
	})
}

// OnlineCount returns the number of registered connections.
func (h *Hub) OnlineCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.registry.byConn)
}

// Shutdown disconnects every live connection and runs its cleanup sequence.
func (h *Hub) Shutdown() {
	h.logger.Info().Msg("Shutting down hub...")

	h.mu.Lock()
	clients := h.registry.clients()
	h.mu.Unlock()

	for _, c := range clients {
		c.disconnect()
	}

	h.logger.Info().Msg("Hub shutdown complete.")
}
