/*
Package chat contains the core logic for the in-memory message fan-out hub.

This file defines the per-connection session coordination: the handshake gate,
the dispatch of each inbound event kind to the stores, and the outbound
notifications each operation emits.
*/
package chat

import (
	"fmt"
	"time"

	"github.com/ssirawiitch/Socket-Programming/internal/app/user"
	"github.com/ssirawiitch/Socket-Programming/internal/pkg/errs"
)

// Dispatch routes one inbound event according to the connection's session state.
// It returns false when the connection must be closed: a failed handshake, or
// any event other than a handshake before the handshake completed. While
// active, unrecognized event kinds are silently ignored so forward-compatible
// clients keep working.
func (h *Hub) Dispatch(c *Client, ev InboundEvent) bool {
	switch c.sessionState() {
	case stateHandshaking:
		if ev.Type != EventHandshake {
			c.SendError(errs.NewError(errs.ErrHandshakeRequired))
			return false
		}
		return h.handleHandshake(c, ev)

	case stateActive:
		switch ev.Type {
		case EventGlobal:
			h.handleGlobal(c, ev)
		case EventPrivate:
			h.handlePrivate(c, ev)
		case EventGroup:
			h.handleGroup(c, ev)
		case EventCreateGroup:
			h.handleCreateGroup(c, ev)
		case EventJoinGroup:
			h.handleJoinGroup(c, ev)
		case EventLeaveGroup:
			h.handleLeaveGroup(c, ev)
		case EventDeleteGroup:
			h.handleDeleteGroup(c, ev)
		case EventDelete:
			h.handleDelete(c, ev)
		default:
			// Unknown kinds are tolerated, not errors.
		}
		return true

	default:
		return false
	}
}

// handleHandshake registers the identity, joins the connection to the global
// room, and announces the newcomer. A duplicate or empty name is fatal to this
// connection only.
func (h *Hub) handleHandshake(c *Client, ev InboundEvent) bool {
	if ev.Username == "" {
		c.SendError(errs.NewError(errs.ErrUsernameRequired))
		return false
	}

	profile := user.Profile{Name: ev.Username, Avatar: ev.Avatar}

	h.mu.Lock()
	if !h.registry.register(c, profile) {
		h.mu.Unlock()
		c.SendError(errs.NewError(errs.ErrUsernameTaken))
		return false
	}

	h.rooms.addMember(GlobalRoom, c)

	users := h.registry.snapshot()
	groups := h.groupListLocked()
	h.mu.Unlock()

	c.setState(stateActive)
	c.logger.Info().
		Str("username", profile.Name).
		Int("online", len(users)).
		Msg("Client registered.")

	// The newcomer is already in the global room, so the roster broadcast below
	// reaches them too; only the group snapshot needs a direct send.
	c.sendEvent(newGroupListEvent(groups))

	h.broadcast(GlobalRoom, newUserListEvent(users))
	h.broadcast(GlobalRoom, newSystemEvent(GlobalRoom, profile.Name+" joined the chat"))
	return true
}

// handleGlobal broadcasts a chat message to the global room, masking the sender
// behind their stable numeric alias when the message is anonymous.
func (h *Hub) handleGlobal(c *Client, ev InboundEvent) {
	if len(ev.Message) > MaxContentBytes {
		c.SendError(errs.NewError(errs.ErrMessageContentTooLong))
		return
	}

	h.mu.Lock()
	p, ok := h.registry.lookup(c)
	if !ok {
		h.mu.Unlock()
		return
	}

	sender := p.Name
	avatar := p.Avatar
	original := ""

	if ev.Anonymous {
		alias, err := h.aliases.acquire(c)
		if err != nil {
			h.mu.Unlock()
			c.logger.Error().Err(err).Msg("Failed to acquire anonymous alias")
			c.SendError(errs.NewError(errs.ErrUnknown))
			return
		}

		original = p.Name
		sender = fmt.Sprintf("Anonymous #%d", alias)
		avatar = AnonymousAvatar
	}

	id := h.ledger.record(c, GlobalRoom)
	h.mu.Unlock()

	h.broadcast(GlobalRoom, ChatEvent{
		Type:           OutChat,
		Room:           GlobalRoom,
		MessageID:      id,
		Sender:         sender,
		Avatar:         avatar,
		Message:        ev.Message,
		OriginalSender: original,
		Timestamp:      time.Now().UnixMilli(),
	})
}

// handlePrivate routes a message to the deterministic two-party room, creating
// it on first use and repairing its membership from the live registry.
func (h *Hub) handlePrivate(c *Client, ev InboundEvent) {
	if len(ev.Message) > MaxContentBytes {
		c.SendError(errs.NewError(errs.ErrMessageContentTooLong))
		return
	}

	h.mu.Lock()
	p, ok := h.registry.lookup(c)
	if !ok {
		h.mu.Unlock()
		return
	}

	target, ok := h.registry.byDisplayName(ev.Target)
	if !ok {
		h.mu.Unlock()
		c.SendError(errs.NewError(errs.ErrTargetNotFound))
		return
	}

	r := h.rooms.getOrCreatePrivate(p.Name, ev.Target, []*Client{c, target})
	id := h.ledger.record(c, r.name)
	h.mu.Unlock()

	h.broadcast(r.name, ChatEvent{
		Type:      OutChat,
		Room:      r.name,
		MessageID: id,
		Sender:    p.Name,
		Avatar:    p.Avatar,
		Message:   ev.Message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// handleGroup broadcasts a chat message to a user-created group the sender has joined.
func (h *Hub) handleGroup(c *Client, ev InboundEvent) {
	if len(ev.Message) > MaxContentBytes {
		c.SendError(errs.NewError(errs.ErrMessageContentTooLong))
		return
	}

	h.mu.Lock()
	if !h.rooms.exists(ev.Room) {
		h.mu.Unlock()
		c.SendError(errs.NewError(errs.ErrGroupNotFound))
		return
	}
	if !h.rooms.isMember(ev.Room, c) {
		h.mu.Unlock()
		c.SendError(errs.NewError(errs.ErrNotGroupMember))
		return
	}

	p, ok := h.registry.lookup(c)
	if !ok {
		h.mu.Unlock()
		return
	}

	id := h.ledger.record(c, ev.Room)
	h.mu.Unlock()

	h.broadcast(ev.Room, ChatEvent{
		Type:      OutChat,
		Room:      ev.Room,
		MessageID: id,
		Sender:    p.Name,
		Avatar:    p.Avatar,
		Message:   ev.Message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// handleCreateGroup creates a group with the sender as sole member and refreshes
// the group roster for everyone.
func (h *Hub) handleCreateGroup(c *Client, ev InboundEvent) {
	h.mu.Lock()
	if cerr := h.rooms.createGroup(ev.Room, c); cerr != nil {
		h.mu.Unlock()
		c.SendError(cerr)
		return
	}

	p, _ := h.registry.lookup(c)
	groups := h.groupListLocked()
	h.mu.Unlock()

	h.broadcast(GlobalRoom, newGroupListEvent(groups))
	h.broadcast(GlobalRoom, newSystemEvent(GlobalRoom, p.Name+" created group "+ev.Room))
}

// handleJoinGroup adds the sender to an existing group and refreshes the group
// roster for everyone.
func (h *Hub) handleJoinGroup(c *Client, ev InboundEvent) {
	h.mu.Lock()
	if cerr := h.rooms.joinGroup(ev.Room, c); cerr != nil {
		h.mu.Unlock()
		c.SendError(cerr)
		return
	}

	p, _ := h.registry.lookup(c)
	groups := h.groupListLocked()
	h.mu.Unlock()

	h.broadcast(GlobalRoom, newGroupListEvent(groups))
	h.broadcast(ev.Room, newSystemEvent(ev.Room, p.Name+" joined "+ev.Room))
}

// handleLeaveGroup removes the sender from a group. Leaving a group the sender
// never joined, one that does not exist, or a room that is not a user-created
// group (the global room, a private room) is a silent no-op.
func (h *Hub) handleLeaveGroup(c *Client, ev InboundEvent) {
	h.mu.Lock()
	if !h.rooms.leaveGroup(ev.Room, c) {
		h.mu.Unlock()
		return
	}

	p, _ := h.registry.lookup(c)
	groups := h.groupListLocked()
	h.mu.Unlock()

	h.broadcast(GlobalRoom, newGroupListEvent(groups))
	// Reaches remaining members only; a no-op if the group emptied and was deleted.
	h.broadcast(ev.Room, newSystemEvent(ev.Room, p.Name+" left "+ev.Room))
}

// handleDeleteGroup removes a group and all its membership, then refreshes the
// group roster for everyone.
func (h *Hub) handleDeleteGroup(c *Client, ev InboundEvent) {
	h.mu.Lock()
	if cerr := h.rooms.deleteGroup(ev.Room); cerr != nil {
		h.mu.Unlock()
		c.SendError(cerr)
		return
	}

	p, _ := h.registry.lookup(c)
	groups := h.groupListLocked()
	h.mu.Unlock()

	h.broadcast(GlobalRoom, newGroupListEvent(groups))
	h.broadcast(GlobalRoom, newSystemEvent(GlobalRoom, p.Name+" deleted group "+ev.Room))
}

// handleDelete retracts a message the sender owns and announces the deletion to
// the room it was posted in. Failures go back to the requester only.
func (h *Hub) handleDelete(c *Client, ev InboundEvent) {
	h.mu.Lock()
	roomName, cerr := h.ledger.retract(ev.MessageID, c)
	h.mu.Unlock()

	if cerr != nil {
		c.SendError(cerr)
		return
	}

	h.broadcast(roomName, DeleteEvent{
		Type:      OutDelete,
		Room:      roomName,
		MessageID: ev.MessageID,
	})
}
