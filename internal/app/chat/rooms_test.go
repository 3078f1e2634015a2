package chat

import "testing"

func TestPrivateRoomKeyIsOrderIndependent(t *testing.T) {
	if got := PrivateRoomKey("bob", "alice"); got != "alice_bob" {
		t.Errorf(`PrivateRoomKey("bob", "alice") = %q, want "alice_bob"`, got)
	}
	if got := PrivateRoomKey("alice", "bob"); got != "alice_bob" {
		t.Errorf(`PrivateRoomKey("alice", "bob") = %q, want "alice_bob"`, got)
	}
}

func TestDirectoryStartsWithGlobal(t *testing.T) {
	d := newDirectory()
	if !d.exists(GlobalRoom) {
		t.Fatal("directory must start with the global room")
	}
}

func TestPruneDeletesEmptiedGroupsButNotGlobal(t *testing.T) {
	d := newDirectory()
	c := &Client{}

	if cerr := d.createGroup("team", c); cerr != nil {
		t.Fatalf("createGroup: %v", cerr)
	}
	d.addMember(GlobalRoom, c)

	d.prune(c)

	if d.exists("team") {
		t.Error("emptied group survived prune")
	}
	if !d.exists(GlobalRoom) {
		t.Error("global room deleted by prune")
	}
}

func TestJoinGroupIsIdempotent(t *testing.T) {
	d := newDirectory()
	a := &Client{}
	b := &Client{}

	if cerr := d.createGroup("team", a); cerr != nil {
		t.Fatalf("createGroup: %v", cerr)
	}
	if cerr := d.joinGroup("team", b); cerr != nil {
		t.Fatalf("joinGroup: %v", cerr)
	}
	if cerr := d.joinGroup("team", b); cerr != nil {
		t.Fatalf("repeated joinGroup: %v", cerr)
	}

	if got := len(d.members("team")); got != 2 {
		t.Errorf("member count = %d, want 2", got)
	}
}

func TestJoinGroupRejectsPrivateRooms(t *testing.T) {
	d := newDirectory()
	a := &Client{}
	b := &Client{}
	d.getOrCreatePrivate("alice", "bob", []*Client{a, b})

	if cerr := d.joinGroup("alice_bob", &Client{}); cerr == nil {
		t.Error("joining a private room by name should report not-found")
	}
	if cerr := d.deleteGroup("alice_bob"); cerr == nil {
		t.Error("deleting a private room by name should report not-found")
	}
}
