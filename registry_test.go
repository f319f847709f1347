package main

import (
	"strings"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return newRegistry(testCatalog(t))
}

func TestRoomIDShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := newRoomID()
		if len(id) != roomIDLength {
			t.Fatalf("len(%q) = %d, want %d", id, len(id), roomIDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(roomIDAlphabet, r) {
				t.Fatalf("id %q contains %q outside the alphabet", id, r)
			}
		}
	}
}

func TestCreateGeneratesDistinctIDs(t *testing.T) {
	reg := testRegistry(t)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		room := reg.Create()
		if seen[room.id] {
			t.Fatalf("duplicate room ID %q among live rooms", room.id)
		}
		seen[room.id] = true
	}

	if reg.count() != 200 {
		t.Errorf("count = %d, want 200", reg.count())
	}
}

func TestGetAndRemove(t *testing.T) {
	reg := testRegistry(t)
	room := reg.Create()

	got, ok := reg.Get(room.id)
	if !ok || got != room {
		t.Fatalf("Get(%q) = (%v, %v), want the created room", room.id, got, ok)
	}

	if _, ok := reg.Get("nosuchid"); ok {
		t.Error("Get of an unknown ID reported found")
	}

	if !reg.removeIfEmpty(room.id) {
		t.Error("playerless room not removed")
	}
	if _, ok := reg.Get(room.id); ok {
		t.Error("room still resolvable after removal")
	}

	// Removing twice is harmless.
	if reg.removeIfEmpty(room.id) {
		t.Error("second removal reported success")
	}
}

func TestRemoveIfEmptyKeepsOccupiedRooms(t *testing.T) {
	cfg := testConfig()
	reg := testRegistry(t)
	room := reg.Create()

	alice := testClient("alice")
	room.join(cfg, alice, "Alice")

	if reg.removeIfEmpty(room.id) {
		t.Fatal("removal succeeded on a room with a player")
	}
	if _, ok := reg.Get(room.id); !ok {
		t.Error("occupied room no longer resolvable")
	}
}

func TestCreatedRoomStartsWithCatalogSnapshot(t *testing.T) {
	reg := testRegistry(t)
	room := reg.Create()

	if len(room.locations) != 5 {
		t.Errorf("locations = %v, want the full catalog enabled", room.locations)
	}

	// The room's snapshot must not alias the shared catalog.
	room.categories["Mekanlar"][0] = "mutated"
	if reg.catalog.Categories()["Mekanlar"][0] == "mutated" {
		t.Error("room snapshot aliases the process-wide catalog")
	}
}
