/*
Package chat contains the core logic for the in-memory message fan-out hub.

This file defines the anonymous alias pool. Aliases are small random numbers
substituted for display names in anonymous messages; each connection holds at
most one, stable for its lifetime, returned to the pool on disconnect.
*/
package chat

import (
	"fmt"

	"github.com/ssirawiitch/Socket-Programming/internal/pkg/randx"
)

const (
	// aliasRange is the initial upper bound for alias draws.
	aliasRange = 1000

	// aliasDrawAttempts is how many draws are tried per range before the range
	// is doubled to keep collisions improbable.
	aliasDrawAttempts = 16
)

type aliasPool struct {
	byConn map[*Client]int
	used   map[int]struct{}
}

func newAliasPool() *aliasPool {
	return &aliasPool{
		byConn: make(map[*Client]int),
		used:   make(map[int]struct{}),
	}
}

// acquire returns the connection's alias, drawing and reserving a fresh one on
// first use. Repeated calls for the same connection return the same number.
func (p *aliasPool) acquire(c *Client) (int, error) {
	if alias, ok := p.byConn[c]; ok {
		return alias, nil
	}

	limit := aliasRange
	for {
		for i := 0; i < aliasDrawAttempts; i++ {
			alias, err := randx.AliasNumber(limit)
			if err != nil {
				return 0, fmt.Errorf("drawing anonymous alias: %w", err)
			}

			if _, taken := p.used[alias]; taken {
				continue
			}

			p.byConn[c] = alias
			p.used[alias] = struct{}{}
			return alias, nil
		}

		// Range exhausted by collisions; widen and retry.
		limit *= 2
	}
}

// release returns the connection's alias, if any, to the available pool.
func (p *aliasPool) release(c *Client) {
	alias, ok := p.byConn[c]
	if !ok {
		return
	}

	delete(p.byConn, c)
	delete(p.used, alias)
}
