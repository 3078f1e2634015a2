/*
Package chat contains the core logic for the in-memory message fan-out hub.

This file defines the identity registry: the single source of truth for who is
online. It maps live connections to profiles and enforces display-name uniqueness.
The registry carries no lock of its own; the Hub mutates it under its mutex.
*/
package chat

import (
	"sort"

	"github.com/ssirawiitch/Socket-Programming/internal/app/user"
)

type registry struct {
	// byConn maps each live connection to its profile.
	byConn map[*Client]user.Profile

	// byName indexes live connections by display name for uniqueness checks
	// and private-message target resolution.
	byName map[string]*Client
}

func newRegistry() *registry {
	return &registry{
		byConn: make(map[*Client]user.Profile),
		byName: make(map[string]*Client),
	}
}

// register inserts the profile if its display name is not already held by a live
// connection. Returns false on a name conflict.
func (r *registry) register(c *Client, p user.Profile) bool {
	if _, taken := r.byName[p.Name]; taken {
		return false
	}

	r.byConn[c] = p
	r.byName[p.Name] = c
	return true
}

// unregister removes and returns the connection's profile. Safe to call for
// connections that never registered.
func (r *registry) unregister(c *Client) (user.Profile, bool) {
	p, ok := r.byConn[c]
	if !ok {
		return user.Profile{}, false
	}

	delete(r.byConn, c)
	delete(r.byName, p.Name)
	return p, true
}

// lookup returns the profile for a live connection.
func (r *registry) lookup(c *Client) (user.Profile, bool) {
	p, ok := r.byConn[c]
	return p, ok
}

// byDisplayName resolves a display name to its live connection.
func (r *registry) byDisplayName(name string) (*Client, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// snapshot returns all live profiles sorted by display name, so roster
// broadcasts are deterministic.
func (r *registry) snapshot() []user.Profile {
	users := make([]user.Profile, 0, len(r.byConn))
	for _, p := range r.byConn {
		users = append(users, p)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

// clients returns every live connection.
func (r *registry) clients() []*Client {
	cs := make([]*Client, 0, len(r.byConn))
	for c := range r.byConn {
		cs = append(cs, c)
	}
	return cs
}
