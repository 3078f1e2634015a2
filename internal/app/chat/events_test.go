package chat

import "testing"

func TestDecodeInbound(t *testing.T) {
	raw := []byte(`{"type":"private","target":"bob","message":"hi"}`)

	ev, err := DecodeInbound(raw)
	if err != nil {
		t.Fatalf("DecodeInbound: %v", err)
	}
	if ev.Type != EventPrivate || ev.Target != "bob" || ev.Message != "hi" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestDecodeInboundInvalidJSON(t *testing.T) {
	if _, err := DecodeInbound([]byte(`{"type":`)); err == nil {
		t.Error("expected decode error for truncated JSON")
	}
}

func TestDecodeInboundUnknownTypeCarriedThrough(t *testing.T) {
	ev, err := DecodeInbound([]byte(`{"type":"presence_ping","extra":true}`))
	if err != nil {
		t.Fatalf("DecodeInbound: %v", err)
	}
	if ev.Type != "presence_ping" {
		t.Errorf("type = %q, want carried through unchanged", ev.Type)
	}
}
