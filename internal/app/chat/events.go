/*
Package chat contains the core logic for the in-memory message fan-out hub: connected
identities, room membership, message retraction, and event broadcasting.

This file defines the wire-level event vocabulary: the inbound events clients send
over the websocket and the outbound events the hub fans out.
*/
package chat

import (
	"encoding/json"
	"time"

	"github.com/ssirawiitch/Socket-Programming/internal/app/user"
)

// EventType discriminates inbound client events.
type EventType string

const (
	EventHandshake   EventType = "handshake"
	EventGlobal      EventType = "global"
	EventPrivate     EventType = "private"
	EventGroup       EventType = "group"
	EventCreateGroup EventType = "create_group"
	EventJoinGroup   EventType = "join_group"
	EventLeaveGroup  EventType = "leave_group"
	EventDeleteGroup EventType = "delete_group"
	EventDelete      EventType = "delete"
)

// InboundEvent is the decoded form of one client event. The Type field selects
// which of the remaining fields are meaningful; unrecognized types are carried
// through unchanged and ignored by the dispatcher.
type InboundEvent struct {
	Type      EventType `json:"type"`
	Username  string    `json:"username,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Message   string    `json:"message,omitempty"`
	Anonymous bool      `json:"anonymous,omitempty"`
	Target    string    `json:"target,omitempty"`
	Room      string    `json:"room,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
}

// DecodeInbound parses one raw websocket payload into an InboundEvent.
func DecodeInbound(raw []byte) (InboundEvent, error) {
	var ev InboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return InboundEvent{}, err
	}
	return ev, nil
}

// Outbound event type discriminators.
const (
	OutUserList  = "user_list"
	OutGroupList = "group_list"
	OutChat      = "chat"
	OutDelete    = "delete"
	OutSystem    = "system"
	OutError     = "error"
)

// AnonymousAvatar is the placeholder avatar shown on anonymous messages in place
// of the sender's real one.
const AnonymousAvatar = "anonymous.png"

// ChatEvent is a delivered message. For anonymous messages Sender holds the
// alias form ("Anonymous #<n>") and OriginalSender the true display name.
type ChatEvent struct {
	Type           string `json:"type"`
	Room           string `json:"room"`
	MessageID      string `json:"message_id"`
	Sender         string `json:"sender"`
	Avatar         string `json:"avatar,omitempty"`
	Message        string `json:"message"`
	OriginalSender string `json:"original_sender,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

// UserListEvent is a roster snapshot, sorted by display name.
type UserListEvent struct {
	Type  string         `json:"type"`
	Users []user.Profile `json:"users"`
}

// GroupInfo describes one user-created group and its member names.
type GroupInfo struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// GroupListEvent is a snapshot of all user-created groups.
type GroupListEvent struct {
	Type   string      `json:"type"`
	Groups []GroupInfo `json:"groups"`
}

// DeleteEvent announces the retraction of a message to a room.
type DeleteEvent struct {
	Type      string `json:"type"`
	Room      string `json:"room"`
	MessageID string `json:"message_id"`
}

// SystemEvent carries join/leave and group lifecycle notices.
type SystemEvent struct {
	Type      string `json:"type"`
	Room      string `json:"room"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorEvent is scoped to a single requester and never broadcast.
type ErrorEvent struct {
	Type    string `json:"type"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

func newUserListEvent(users []user.Profile) UserListEvent {
	return UserListEvent{Type: OutUserList, Users: users}
}

func newGroupListEvent(groups []GroupInfo) GroupListEvent {
	return GroupListEvent{Type: OutGroupList, Groups: groups}
}

func newSystemEvent(room, message string) SystemEvent {
	return SystemEvent{
		Type:      OutSystem,
		Room:      room,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}
