/*
Package chat contains the core logic for the in-memory message fan-out hub.

This file defines the room directory: the permanent global room, user-created
groups, and the lazily created two-party private rooms. Like the other stores,
the directory is only ever mutated by the Hub under its mutex.
*/
package chat

import (
	"sort"
	"strings"

	"github.com/ssirawiitch/Socket-Programming/internal/pkg/errs"
)

const (
	// GlobalRoom is the permanent room every identity joins on handshake.
	GlobalRoom = "global"

	// PrivateSeparator joins the two sorted participant names into a private-room
	// key. Group names may not contain it.
	PrivateSeparator = "_"
)

type roomKind int

const (
	kindPermanent roomKind = iota
	kindGroup
	kindPrivate
)

type room struct {
	name    string
	kind    roomKind
	members map[*Client]struct{}
}

func newRoom(name string, kind roomKind) *room {
	return &room{
		name:    name,
		kind:    kind,
		members: make(map[*Client]struct{}),
	}
}

type directory struct {
	rooms map[string]*room
}

func newDirectory() *directory {
	d := &directory{rooms: make(map[string]*room)}
	d.rooms[GlobalRoom] = newRoom(GlobalRoom, kindPermanent)
	return d
}

// PrivateRoomKey derives the deterministic room key for a two-party private
// conversation: the sorted pair of display names joined by PrivateSeparator.
func PrivateRoomKey(nameA, nameB string) string {
	if nameB < nameA {
		nameA, nameB = nameB, nameA
	}
	return nameA + PrivateSeparator + nameB
}

// createGroup creates a user-created group with the creator as sole member.
func (d *directory) createGroup(name string, creator *Client) *errs.CustomError {
	if name == "" {
		return errs.NewError(errs.ErrGroupNameRequired)
	}
	if strings.Contains(name, PrivateSeparator) {
		return errs.NewError(errs.ErrGroupNameReserved)
	}
	if _, exists := d.rooms[name]; exists {
		return errs.NewError(errs.ErrGroupNameConflict)
	}

	r := newRoom(name, kindGroup)
	r.members[creator] = struct{}{}
	d.rooms[name] = r
	return nil
}

// joinGroup adds the connection to an existing group. Joining a group the
// connection already belongs to is a no-op.
func (d *directory) joinGroup(name string, c *Client) *errs.CustomError {
	r, ok := d.rooms[name]
	if !ok || r.kind != kindGroup {
		return errs.NewError(errs.ErrGroupNotFound)
	}

	r.members[c] = struct{}{}
	return nil
}

// leaveGroup removes the connection from a user-created group's member set,
// deleting the group if it empties. It reports whether a membership was
// actually removed. Only GROUP rooms can be left this way: the permanent
// global room and private rooms are not valid targets, so their membership
// is never touched here.
func (d *directory) leaveGroup(name string, c *Client) bool {
	r, ok := d.rooms[name]
	if !ok || r.kind != kindGroup {
		return false
	}
	if _, member := r.members[c]; !member {
		return false
	}

	d.removeMember(name, c)
	return true
}

// deleteGroup removes a user-created group and all its membership regardless of size.
func (d *directory) deleteGroup(name string) *errs.CustomError {
	r, ok := d.rooms[name]
	if !ok || r.kind != kindGroup {
		return errs.NewError(errs.ErrGroupNotFound)
	}

	delete(d.rooms, name)
	return nil
}

// getOrCreatePrivate returns the room for the two names, creating it on first
// use. Every supplied live participant connection is (re-)added to the member
// set, which repairs membership after a participant reconnected under the same
// name.
func (d *directory) getOrCreatePrivate(nameA, nameB string, participants []*Client) *room {
	key := PrivateRoomKey(nameA, nameB)

	r, ok := d.rooms[key]
	if !ok {
		r = newRoom(key, kindPrivate)
		d.rooms[key] = r
	}

	for _, c := range participants {
		r.members[c] = struct{}{}
	}
	return r
}

// addMember adds the connection to an existing room's member set.
func (d *directory) addMember(name string, c *Client) {
	if r, ok := d.rooms[name]; ok {
		r.members[c] = struct{}{}
	}
}

// removeMember removes the connection from the room's member set. A
// non-permanent room left empty is deleted immediately.
func (d *directory) removeMember(name string, c *Client) {
	r, ok := d.rooms[name]
	if !ok {
		return
	}

	delete(r.members, c)
	if len(r.members) == 0 && r.kind != kindPermanent {
		delete(d.rooms, name)
	}
}

// isMember reports whether the connection is in the room's member set.
func (d *directory) isMember(name string, c *Client) bool {
	r, ok := d.rooms[name]
	if !ok {
		return false
	}

	_, member := r.members[c]
	return member
}

// exists reports whether a room with the given name is present.
func (d *directory) exists(name string) bool {
	_, ok := d.rooms[name]
	return ok
}

// members returns a copy of the room's member set, the consistent snapshot
// fan-out delivers to.
func (d *directory) members(name string) []*Client {
	r, ok := d.rooms[name]
	if !ok {
		return nil
	}

	ms := make([]*Client, 0, len(r.members))
	for c := range r.members {
		ms = append(ms, c)
	}
	return ms
}

// prune removes the connection from every room's member set, deleting any
// non-permanent room left empty. Runs as part of every disconnect.
func (d *directory) prune(c *Client) {
	for name, r := range d.rooms {
		delete(r.members, c)
		if len(r.members) == 0 && r.kind != kindPermanent {
			delete(d.rooms, name)
		}
	}
}

// groupSnapshot lists all user-created groups with their member names resolved
// through the supplied lookup, sorted by group name for determinism.
func (d *directory) groupSnapshot(nameOf func(*Client) (string, bool)) []GroupInfo {
	groups := make([]GroupInfo, 0)

	for _, r := range d.rooms {
		if r.kind != kindGroup {
			continue
		}

		names := make([]string, 0, len(r.members))
		for c := range r.members {
			if n, ok := nameOf(c); ok {
				names = append(names, n)
			}
		}
		sort.Strings(names)

		groups = append(groups, GroupInfo{Name: r.name, Members: names})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}
