package main

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
	"time"
)

const (
	roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	roomIDLength   = 7
)

// Registry owns the mapping from room ID to live room. Rooms exist from
// creation until the moment their player list empties; there is no idle
// reaper, since a mid-game room with everyone briefly disconnected must stay
// reconnectable.
type Registry struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	catalog *Catalog

	// newRand supplies the per-room randomness source; swapped out in tests
	// for a seeded one so secret and impostor draws are deterministic.
	newRand func() *mrand.Rand
}

func newRegistry(catalog *Catalog) *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		catalog: catalog,
		newRand: func() *mrand.Rand {
			return mrand.New(mrand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Create allocates a room under a fresh ID. Generation retries until the ID
// is unused; uniqueness among live rooms is a hard invariant, so a collision
// regenerates rather than failing.
func (reg *Registry) Create() *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var id string
	for {
		id = newRoomID()
		if _, exists := reg.rooms[id]; !exists {
			break
		}
	}

	room := newRoom(id, reg.catalog, reg.newRand())
	reg.rooms[id] = room
	return room
}

// Get looks up a live room. Absence is terminal for the request that asked,
// never something to retry.
func (reg *Registry) Get(id string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[id]
	return room, ok
}

// removeIfEmpty drops a room, but only after re-checking under both locks
// that its player list is still empty. A disconnect can decide "empty" and
// then lose the race to a join resolving the same room; revalidating here
// keeps a just-refilled room alive. Lock order is registry then room; no
// path takes them the other way around.
func (reg *Registry) removeIfEmpty(id string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[id]
	if !ok {
		return false
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.players) != 0 {
		return false
	}

	delete(reg.rooms, id)
	return true
}

func (reg *Registry) count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.rooms)
}

// newRoomID draws a short crypto-random identifier from a fixed lowercase
// alphanumeric alphabet.
func newRoomID() string {
	out := make([]byte, roomIDLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomIDAlphabet))))
		if err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out[i] = roomIDAlphabet[n.Int64()]
	}
	return string(out)
}
