package main

// Messages coming from clients
type ClientMessage struct {
	Type            string   `json:"type"`                      // "create_room", "join_room", "update_locations", "add_custom_location", "remove_custom_location", "start_game", "stop_game"
	Name            string   `json:"name,omitempty"`            // create_room / join_room
	RoomID          string   `json:"roomId,omitempty"`          // all room-scoped intents
	Locations       []string `json:"locations,omitempty"`       // update_locations
	CustomLocations []string `json:"customLocations,omitempty"` // update_locations (optional)
	Location        string   `json:"location,omitempty"`        // add_custom_location / remove_custom_location
}

// InitInfoMessage is sent once on connect with the catalog snapshot.
type InitInfoMessage struct {
	Type       string              `json:"type"` // "init_info"
	Categories map[string][]string `json:"categories"`
}

// ErrorMessage is only ever sent to the connection that caused it.
type ErrorMessage struct {
	Type    string `json:"type"` // "error_message"
	Message string `json:"message"`
}

type JoinSuccessMessage struct {
	Type   string `json:"type"` // "join_success"
	RoomID string `json:"roomId"`
}

// PlayerInfo is the externally visible view of a player.
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

// RoomUpdateMessage is the full room snapshot, broadcast to all members.
type RoomUpdateMessage struct {
	Type            string              `json:"type"` // "room_update"
	Players         []PlayerInfo        `json:"players"`
	HostID          string              `json:"hostId"`
	Locations       []string            `json:"locations"`
	Categories      map[string][]string `json:"categories"`
	CustomLocations []string            `json:"customLocations"`
}

// GameStartedMessage is unicast per player and role-scoped: the impostor
// gets the redacted location, everyone else the real one. It must never be
// broadcast.
type GameStartedMessage struct {
	Type          string   `json:"type"` // "game_started"
	Role          string   `json:"role"`
	Location      string   `json:"location"`
	LocationsList []string `json:"locationsList"`
	IsReconnect   bool     `json:"isReconnect,omitempty"`
	HostID        string   `json:"hostId,omitempty"`
}

type GameEndedMessage struct {
	Type string `json:"type"` // "game_ended"
}
