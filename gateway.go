package main

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one live connection. id is the transport-assigned connection
// identity, unique per connection and never reused across reconnects. room
// is the per-connection room binding; it is only touched from the read loop.
type Client struct {
	conn *websocket.Conn
	send chan any
	id   string
	room *Room
}

// serveWS upgrades the connection, assigns it an identity, sends the catalog
// snapshot, and hands control to the read loop.
func serveWS(cfg *Config, reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "WS: Upgrade error from %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, 8),
			id:   uuid.NewString(),
		}

		wsConnections.Inc()
		defer wsConnections.Dec()

		client.send <- InitInfoMessage{
			Type:       "init_info",
			Categories: reg.catalog.Categories(),
		}

		go client.writePump()
		client.readPump(cfg, reg)
	}
}

func (c *Client) readPump(cfg *Config, reg *Registry) {
	defer func() {
		// Connection teardown is an ordinary leave intent, serialized with
		// everything else touching the room. The removal revalidates
		// emptiness under the registry lock, since a join can slip in
		// between leave deciding "empty" and the registry acting on it.
		if c.room != nil {
			if c.room.leave(cfg, c) && reg.removeIfEmpty(c.room.id) {
				logf(cfg, "ROOMS: Removed empty room %s", c.room.id)
			}
		} else {
			close(c.send)
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.dispatch(cfg, reg, msg)
	}
}

// dispatch routes one inbound intent to its handler.
func (c *Client) dispatch(cfg *Config, reg *Registry, msg ClientMessage) {
	switch msg.Type {
	case "create_room":
		c.handleCreateRoom(cfg, reg, msg)

	case "join_room":
		c.handleJoinRoom(cfg, reg, msg)

	case "update_locations":
		if room := c.boundRoom(); room != nil {
			room.updateLocations(cfg, c, msg.Locations, msg.CustomLocations)
		}

	case "add_custom_location":
		if room := c.boundRoom(); room != nil {
			room.addCustomLocation(cfg, c, msg.Location)
		}

	case "remove_custom_location":
		if room := c.boundRoom(); room != nil {
			room.removeCustomLocation(cfg, c, msg.Location)
		}

	case "start_game":
		if room := c.boundRoom(); room != nil {
			room.startGame(cfg, c)
		}

	case "stop_game":
		if room := c.boundRoom(); room != nil {
			room.stopGame(cfg, c)
		}

	default:
		// ignore unknown types
	}
}

func (c *Client) handleCreateRoom(cfg *Config, reg *Registry, msg ClientMessage) {
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		c.sendError("İsim gerekli!")
		return
	}
	if c.room != nil {
		return
	}

	room := reg.Create()
	roomsCreated.Inc()
	logf(cfg, "ROOMS: Created room %s", room.id)

	c.room = room
	room.join(cfg, c, name)
}

func (c *Client) handleJoinRoom(cfg *Config, reg *Registry, msg ClientMessage) {
	name := strings.TrimSpace(msg.Name)
	roomID := strings.ToLower(strings.TrimSpace(msg.RoomID))
	if name == "" || roomID == "" {
		c.sendError("İsim ve oda ID gerekli!")
		return
	}
	if c.room != nil {
		return
	}

	room, ok := reg.Get(roomID)
	if !ok {
		c.sendError("Oda bulunamadı!")
		return
	}

	c.room = room
	room.join(cfg, c, name)
}

// boundRoom resolves the connection's remembered room, surfacing not-found
// to this connection only.
func (c *Client) boundRoom() *Room {
	if c.room == nil {
		c.sendError("Oda bulunamadı!")
		return nil
	}
	return c.room
}

// sendError unicasts an error to this connection. Errors are never
// broadcast to a room.
func (c *Client) sendError(text string) {
	select {
	case c.send <- ErrorMessage{Type: "error_message", Message: text}:
	default:
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// qrHandler renders a PNG QR code pointing at the join link for a live
// room, so a host can put the code on a shared screen.
func qrHandler(reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		roomID := ps.ByName("roomid")
		if _, ok := reg.Get(roomID); !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + "/?room=" + roomID

		const qrSize = 320
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}
