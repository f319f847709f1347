package main

import (
	"math/rand"
	"strings"
	"sync"
)

const (
	roleSpy      = "Casus"
	roleCivilian = "Sivil"

	// What the impostor sees instead of the secret. The full location list
	// still goes to everyone, impostor included; deducing the secret from it
	// is the point of the game.
	redactedLocation = "???"
)

// Player is one member of a room. ID is the transport-assigned connection
// identity and is rebound whenever the same display name reconnects; Name is
// the stable identity. Connected is only ever false while a game is active.
type Player struct {
	ID        string
	Name      string
	Connected bool
}

// Game is the active round: the secret drawn from the room's enabled
// locations, and the one player who doesn't get to see it.
type Game struct {
	Location string
	SpyID    string
}

// Room is an isolated session. All state behind mu; every intent for the
// room takes the lock for its full read-modify-write, so intents for one
// room never interleave while different rooms proceed independently.
type Room struct {
	id         string
	hostID     string
	players    []Player
	categories map[string][]string
	locations  []string
	custom     []string
	game       *Game

	clients map[*Client]bool
	rng     *rand.Rand

	mu sync.Mutex
}

// newRoom seeds a room with the full catalog enabled, mirroring a fresh
// lobby where the host hasn't narrowed the pool yet.
func newRoom(id string, catalog *Catalog, rng *rand.Rand) *Room {
	return &Room{
		id:         id,
		categories: catalog.Categories(),
		locations:  catalog.AllValues(),
		custom:     []string{},
		clients:    make(map[*Client]bool),
		rng:        rng,
	}
}

// join handles both branches of room entry: a fresh player, or a reconnect
// recognized by display name. A reconnect mid-game gets a role-scoped resend
// so a reloaded client can rebuild its state without disturbing anyone else.
func (r *Room) join(cfg *Config, c *Client, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := -1
	for i := range r.players {
		if r.players[i].Name == name {
			existing = i
			break
		}
	}

	if existing >= 0 {
		oldID := r.players[existing].ID
		r.players[existing].ID = c.id
		r.players[existing].Connected = true

		// Any client still registered under the old identity is a dead
		// connection; drop it before it can receive role information.
		for stale := range r.clients {
			if stale.id == oldID {
				delete(r.clients, stale)
				close(stale.send)
			}
		}
		r.clients[c] = true

		if r.hostID == oldID {
			r.hostID = c.id
		}
		if r.game != nil && r.game.SpyID == oldID {
			r.game.SpyID = c.id
		}

		logf(cfg, "ROOMS: Player %q reconnected to %s", name, r.id)

		r.sendLocked(c, JoinSuccessMessage{Type: "join_success", RoomID: r.id})
		if r.game != nil {
			r.sendLocked(c, r.roleMessageLocked(c.id, true))
		}
	} else {
		r.players = append(r.players, Player{ID: c.id, Name: name, Connected: true})
		r.clients[c] = true

		// The creator joins immediately after room creation, so the first
		// join is what establishes host authority.
		if len(r.players) == 1 {
			r.hostID = c.id
		}

		logf(cfg, "ROOMS: Player %q joined %s", name, r.id)

		r.sendLocked(c, JoinSuccessMessage{Type: "join_success", RoomID: r.id})
	}

	r.broadcastStateLocked()
}

// updateLocations wholesale-replaces the enabled set, and the custom set too
// when one is supplied. Host only; anyone else is a silent no-op. The
// replacement is authoritative: a custom entry omitted from locations stays
// defined but disabled, unlike addCustomLocation, which always enables what
// it adds.
func (r *Room) updateLocations(cfg *Config, c *Client, locations []string, custom []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.id != r.hostID {
		return
	}

	if custom != nil {
		r.custom = dedupeTrimmed(custom)
	}

	universe := make(map[string]bool)
	for _, values := range r.categories {
		for _, v := range values {
			universe[v] = true
		}
	}
	for _, v := range r.custom {
		universe[v] = true
	}

	enabled := make([]string, 0, len(locations))
	seen := make(map[string]bool, len(locations))
	for _, v := range locations {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] || !universe[v] {
			continue
		}
		seen[v] = true
		enabled = append(enabled, v)
	}
	r.locations = enabled

	logf(cfg, "ROOMS: Host updated locations in %s (%d enabled)", r.id, len(r.locations))

	r.broadcastStateLocked()
}

// addCustomLocation appends a host-supplied candidate. The value must be
// unique across the whole selectable universe, not just the custom list.
func (r *Room) addCustomLocation(cfg *Config, c *Client, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.id != r.hostID {
		return
	}

	value = strings.TrimSpace(value)
	if value == "" || r.inUniverseLocked(value) {
		return
	}

	r.custom = append(r.custom, value)
	r.locations = append(r.locations, value)

	logf(cfg, "ROOMS: Host added custom location %q to %s", value, r.id)

	r.broadcastStateLocked()
}

// removeCustomLocation deletes the value from both the custom list and the
// enabled set.
func (r *Room) removeCustomLocation(cfg *Config, c *Client, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.id != r.hostID {
		return
	}

	value = strings.TrimSpace(value)
	r.custom = removeValue(r.custom, value)
	r.locations = removeValue(r.locations, value)

	logf(cfg, "ROOMS: Host removed custom location %q from %s", value, r.id)

	r.broadcastStateLocked()
}

// startGame draws the secret and the impostor and unicasts each player their
// role. Disconnected players still count toward the minimum and can be drawn
// as the impostor; they get their role on reconnect.
func (r *Room) startGame(cfg *Config, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.id != r.hostID {
		return
	}

	if len(r.players) < cfg.minPlayers {
		r.sendLocked(c, ErrorMessage{
			Type:    "error_message",
			Message: "Yeterli oyuncu yok!",
		})
		return
	}
	if len(r.locations) == 0 {
		r.sendLocked(c, ErrorMessage{
			Type:    "error_message",
			Message: "Aktif mekan yok!",
		})
		return
	}

	location := r.locations[r.rng.Intn(len(r.locations))]
	spy := r.players[r.rng.Intn(len(r.players))]

	r.game = &Game{
		Location: location,
		SpyID:    spy.ID,
	}
	gamesStarted.Inc()

	logf(cfg, "ROOMS: Game started in %s, location %q, spy %q", r.id, location, spy.Name)

	for client := range r.clients {
		r.sendLocked(client, r.roleMessageLocked(client.id, false))
	}
}

// stopGame ends the round and returns everyone to the lobby.
func (r *Room) stopGame(cfg *Config, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.id != r.hostID {
		return
	}

	r.game = nil

	// Players who dropped mid-round had their removal deferred; the round
	// ending is where it completes. The stopper is connected, so the room
	// can't empty here and the host can't be among the purged.
	kept := r.players[:0]
	for _, p := range r.players {
		if !p.Connected {
			logf(cfg, "ROOMS: Dropping player %q from %s at round end", p.Name, r.id)
			continue
		}
		kept = append(kept, p)
	}
	r.players = kept

	logf(cfg, "ROOMS: Game ended in %s", r.id)

	r.broadcastLocked(GameEndedMessage{Type: "game_ended"})
	r.broadcastStateLocked()
}

// leave processes a disconnect. Mid-game the player is only marked offline,
// with no broadcast, so the round isn't visibly disrupted by a transient
// drop and the seat stays reconnectable by name. Outside a game the player
// is removed outright. Returns true when the room emptied; registry removal
// is the caller's job and re-checks emptiness under its own locks, since a
// join may land between this returning and the registry acting. Idempotent
// against identities already gone.
func (r *Room) leave(cfg *Config, c *Client) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[c]; ok {
		delete(r.clients, c)
		close(c.send)
	}

	idx := -1
	for i := range r.players {
		if r.players[i].ID == c.id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	if r.game != nil {
		r.players[idx].Connected = false
		logf(cfg, "ROOMS: Player %q dropped mid-game in %s", r.players[idx].Name, r.id)
		return false
	}

	wasHost := r.players[idx].ID == r.hostID
	name := r.players[idx].Name
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	logf(cfg, "ROOMS: Player %q left %s", name, r.id)

	if len(r.players) == 0 {
		return true
	}

	// First remaining player in list order, so host succession is
	// deterministic.
	if wasHost {
		r.hostID = r.players[0].ID
	}

	r.broadcastStateLocked()
	return false
}

// roleMessageLocked builds the role-scoped start message for one identity.
func (r *Room) roleMessageLocked(id string, reconnect bool) GameStartedMessage {
	msg := GameStartedMessage{
		Type:          "game_started",
		Role:          roleCivilian,
		Location:      r.game.Location,
		LocationsList: append([]string(nil), r.locations...),
	}
	if id == r.game.SpyID {
		msg.Role = roleSpy
		msg.Location = redactedLocation
	}
	if reconnect {
		msg.IsReconnect = true
		msg.HostID = r.hostID
	}
	return msg
}

func (r *Room) inUniverseLocked(value string) bool {
	for _, values := range r.categories {
		for _, v := range values {
			if v == value {
				return true
			}
		}
	}
	for _, v := range r.custom {
		if v == value {
			return true
		}
	}
	return false
}

// broadcastStateLocked sends the full room snapshot to every member.
func (r *Room) broadcastStateLocked() {
	players := make([]PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, PlayerInfo{
			ID:        p.ID,
			Name:      p.Name,
			Connected: p.Connected,
		})
	}

	r.broadcastLocked(RoomUpdateMessage{
		Type:            "room_update",
		Players:         players,
		HostID:          r.hostID,
		Locations:       append([]string(nil), r.locations...),
		Categories:      r.categories,
		CustomLocations: append([]string(nil), r.custom...),
	})
}

func (r *Room) broadcastLocked(msg any) {
	for client := range r.clients {
		select {
		case client.send <- msg:
		default:
			delete(r.clients, client)
			close(client.send)
		}
	}
}

// sendLocked delivers to a single client, dropping it if its buffer is full.
func (r *Room) sendLocked(c *Client, msg any) {
	if !r.clients[c] {
		return
	}
	select {
	case c.send <- msg:
	default:
		delete(r.clients, c)
		close(c.send)
	}
}

func dedupeTrimmed(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func removeValue(values []string, value string) []string {
	out := values[:0]
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
