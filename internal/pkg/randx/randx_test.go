package randx

import "testing"

func TestMessageIDIsUnique(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		id := MessageID()
		if len(id) != 36 {
			t.Fatalf("MessageID() = %q, want UUID format", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate message id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestAliasNumberBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n, err := AliasNumber(10)
		if err != nil {
			t.Fatalf("AliasNumber: %v", err)
		}
		if n < 1 || n > 10 {
			t.Fatalf("AliasNumber(10) = %d, outside [1, 10]", n)
		}
	}
}

func TestAliasNumberRejectsInvalidRange(t *testing.T) {
	if _, err := AliasNumber(0); err == nil {
		t.Error("expected error for zero upper bound")
	}
}
