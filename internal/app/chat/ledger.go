/*
Package chat contains the core logic for the in-memory message fan-out hub.

This file defines the message ledger, which maps issued message identifiers to
their owning connection and originating room so messages can be retracted later.
*/
package chat

import (
	"github.com/ssirawiitch/Socket-Programming/internal/pkg/errs"
	"github.com/ssirawiitch/Socket-Programming/internal/pkg/randx"
)

type ledgerEntry struct {
	owner *Client
	room  string
}

type ledger struct {
	entries map[string]ledgerEntry
}

func newLedger() *ledger {
	return &ledger{entries: make(map[string]ledgerEntry)}
}

// record stores ownership for a newly accepted message and returns its fresh
// identifier (a UUID v4, so collisions are negligible).
func (l *ledger) record(owner *Client, room string) string {
	id := randx.MessageID()
	l.entries[id] = ledgerEntry{owner: owner, room: room}
	return id
}

// retract removes the entry and returns the room it belonged to so the caller
// can fan out a deletion event. An unknown identifier and an already-retracted
// one produce the same not-found error.
func (l *ledger) retract(id string, requester *Client) (string, *errs.CustomError) {
	entry, ok := l.entries[id]
	if !ok {
		return "", errs.NewError(errs.ErrMessageNotFound)
	}
	if entry.owner != requester {
		return "", errs.NewError(errs.ErrNotMessageOwner)
	}

	delete(l.entries, id)
	return entry.room, nil
}

// purgeOwner removes every entry owned by the connection. No per-message events
// are emitted for this bulk cleanup; only the disconnect notifications fire.
func (l *ledger) purgeOwner(c *Client) {
	for id, entry := range l.entries {
		if entry.owner == c {
			delete(l.entries, id)
		}
	}
}

// ownedBy counts the entries owned by the connection.
func (l *ledger) ownedBy(c *Client) int {
	n := 0
	for _, entry := range l.entries {
		if entry.owner == c {
			n++
		}
	}
	return n
}
