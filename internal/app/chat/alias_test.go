package chat

import "testing"

func TestAliasAcquireIsIdempotent(t *testing.T) {
	p := newAliasPool()
	c := &Client{}

	first, err := p.acquire(c)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	second, err := p.acquire(c)
	if err != nil {
		t.Fatalf("repeated acquire: %v", err)
	}
	if first != second {
		t.Errorf("alias changed across acquires: %d vs %d", first, second)
	}
	if first < 1 {
		t.Errorf("alias %d outside expected range", first)
	}
}

func TestAliasesUniqueAcrossConnections(t *testing.T) {
	p := newAliasPool()
	seen := make(map[int]struct{})

	for i := 0; i < 100; i++ {
		alias, err := p.acquire(&Client{})
		if err != nil {
			t.Fatalf("acquire #%d: %v", i, err)
		}
		if _, dup := seen[alias]; dup {
			t.Fatalf("alias %d issued twice while reserved", alias)
		}
		seen[alias] = struct{}{}
	}
}

func TestAliasReleaseReturnsToPool(t *testing.T) {
	p := newAliasPool()
	c := &Client{}

	alias, err := p.acquire(c)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	p.release(c)

	if _, reserved := p.used[alias]; reserved {
		t.Error("alias still reserved after release")
	}
	if _, held := p.byConn[c]; held {
		t.Error("connection still holds an alias after release")
	}

	// Releasing twice is a no-op.
	p.release(c)
}
