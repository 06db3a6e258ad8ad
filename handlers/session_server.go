package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/christopherhurt/AmbiguousGame/logging"
	"github.com/christopherhurt/AmbiguousGame/messages"
	"github.com/christopherhurt/AmbiguousGame/metrics"
	"github.com/christopherhurt/AmbiguousGame/network"
	"github.com/christopherhurt/AmbiguousGame/services"
)

type eventKind int

const (
	eventConnect eventKind = iota
	eventMessage
	eventDisconnect
)

type event struct {
	kind   eventKind
	client *ClientHandler
	frame  []byte
}

// Options tunes the session server
type Options struct {
	SendBuffer int
	ReadLimit  int64
	QueueSize  int
}

// SessionServer owns the world and the player registry. Every connect,
// message and disconnect is funnelled through one queue and handled to
// completion by Run, so state is only ever touched from that goroutine.
type SessionServer struct {
	world    *services.WorldService
	players  *services.PlayerService
	clients  *ClientManager
	metrics  *metrics.Collector
	upgrader websocket.Upgrader
	opts     Options

	events chan event
	done   chan struct{}
}

// NewSessionServer wires the services into a server. m may be nil.
func NewSessionServer(world *services.WorldService, players *services.PlayerService, m *metrics.Collector, opts Options) *SessionServer {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1024
	}
	s := &SessionServer{
		world:   world,
		players: players,
		metrics: m,
		opts:    opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Clients are served from anywhere; there is no auth to protect
				return true
			},
		},
		events: make(chan event, opts.QueueSize),
		done:   make(chan struct{}),
	}
	s.clients = NewClientManager(func(*ClientHandler, error) {
		if s.metrics != nil {
			s.metrics.DroppedSends.Inc()
		}
	})
	return s
}

// Run processes events until ctx is cancelled, then closes every connection
func (s *SessionServer) Run(ctx context.Context) error {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			s.clients.CloseAll()
			logging.Info("Session loop stopped")
			return nil
		case ev := <-s.events:
			s.dispatch(ev)
		}
	}
}

// ServeWS upgrades the request and runs the connection until it closes
func (s *SessionServer) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("Failed to upgrade connection: %v", err)
		return
	}

	conn := network.NewConnection(ws, s.opts.SendBuffer)
	client := newClientHandler(s, conn, r.RemoteAddr)
	if !s.enqueue(event{kind: eventConnect, client: client}) {
		ws.Close()
		return
	}

	go conn.WritePump()
	conn.ReadPump(client, s.opts.ReadLimit)

	s.enqueue(event{kind: eventDisconnect, client: client})
}

// enqueue hands an event to the loop; it fails once the loop has stopped
func (s *SessionServer) enqueue(ev event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

func (s *SessionServer) dispatch(ev event) {
	switch ev.kind {
	case eventConnect:
		s.handleConnect(ev.client)
	case eventMessage:
		if ev.client.removed {
			return
		}
		s.handleMessage(ev.client, ev.frame)
	case eventDisconnect:
		s.handleDisconnect(ev.client)
	}
}

func (s *SessionServer) handleConnect(client *ClientHandler) {
	p := s.players.Connect()
	client.id, client.name = p.ID, p.Name
	s.clients.AddClient(client)
	if s.metrics != nil {
		s.metrics.ConnectedClients.Inc()
	}
	logging.Info("Player %d (%s) connected from %s session=%s", client.id, client.name, client.remote, client.session)

	s.clients.Send(client, messages.New(messages.MessageTypeMap, s.world.Map()))
	s.clients.Send(client, messages.New(messages.MessageTypePlayers, messages.PlayersSnapshot(s.players.Snapshot())))

	spawn, err := s.world.FindSpawn()
	if err != nil {
		logging.Error("No spawn for player %d: %v", client.id, err)
		s.clients.Send(client, messages.New(messages.MessageTypeInfo, "No free tile to spawn on, please try again later."))
		s.drop(client)
		return
	}

	s.clients.Send(client, messages.New(messages.MessageTypeSelf, messages.SelfMessage{
		ID:   client.id,
		Name: client.name,
		Pos:  spawn,
	}))
	s.clients.BroadcastToOthers(client.id, messages.New(messages.MessageTypeInfo, fmt.Sprintf("%s joined!", client.name)))
}

func (s *SessionServer) handleMessage(client *ClientHandler, frame []byte) {
	msg, err := messages.Decode(frame)
	if err != nil {
		s.reject(client, "decode", err)
		return
	}
	if s.metrics != nil {
		s.metrics.MessagesReceived.WithLabelValues(string(msg.Type())).Inc()
	}

	switch m := msg.(type) {
	case messages.RegisterPlayer:
		p, err := s.players.Register(client.id, m.Player)
		if err != nil {
			s.reject(client, "register", err)
			return
		}
		logging.Info("Player %d (%s) registered", client.id, client.name)
		s.clients.BroadcastToOthers(client.id, messages.New(messages.MessageTypeNewPlayer, messages.NewPlayerMessage{
			ID:     client.id,
			Player: p.Clone(),
		}))

	case messages.Move:
		p, err := s.players.Move(client.id, m.X, m.Y, m.Dir, m.Moving)
		if err != nil {
			s.reject(client, "move", err)
			return
		}
		s.clients.BroadcastToOthers(client.id, messages.New(messages.MessageTypePlayerMoved, messages.PlayerMovedMessage{
			ID:     client.id,
			X:      p.X,
			Y:      p.Y,
			Dir:    p.Dir,
			Moving: p.Moving,
		}))

	case messages.TileEdit:
		if err := s.world.SetTile(m.Layer, m.Col, m.Row, m.Tile); err != nil {
			s.reject(client, "tile_bounds", err)
			return
		}
		if s.metrics != nil {
			s.metrics.TileEdits.Inc()
		}
		logging.Debug("Player %d set tile %d/%d/%d to %d", client.id, m.Layer, m.Col, m.Row, m.Tile)
		s.clients.BroadcastToOthers(client.id, messages.New(messages.MessageTypeTileUpdate, m.Raw))

	case messages.Chat:
		s.clients.BroadcastToOthers(client.id, messages.New(messages.MessageTypeChat, messages.ChatMessage{
			ID:   client.id,
			Text: m.Text,
		}))
	}
}

func (s *SessionServer) handleDisconnect(client *ClientHandler) {
	if client.removed {
		return
	}
	s.drop(client)
	logging.Info("Player %d (%s) disconnected session=%s", client.id, client.name, client.session)

	s.clients.BroadcastToAll(messages.New(messages.MessageTypeDelete, client.id))
	s.clients.BroadcastToAll(messages.New(messages.MessageTypeInfo, fmt.Sprintf("%s disconnected.", client.name)))
}

// drop removes a client from the registry and closes its connection
func (s *SessionServer) drop(client *ClientHandler) {
	client.removed = true
	s.players.Remove(client.id)
	s.clients.RemoveClient(client.id)
	client.conn.Close()
	if s.metrics != nil {
		s.metrics.ConnectedClients.Dec()
	}
}

// reject drops one message and tells its sender why
func (s *SessionServer) reject(client *ClientHandler, reason string, err error) {
	logging.Warn("Dropped message from player %d (%s): %v", client.id, reason, err)
	if s.metrics != nil {
		s.metrics.ProtocolErrors.WithLabelValues(reason).Inc()
	}

	notice := "Message rejected."
	switch {
	case errors.Is(err, messages.ErrUnknownType):
		notice = "Unknown message type."
	case errors.Is(err, messages.ErrMalformed):
		notice = "Malformed message."
	case errors.Is(err, services.ErrOutOfBounds):
		notice = "Tile edit outside the map was ignored."
	case errors.Is(err, services.ErrNotRegistered):
		notice = "Register a player before moving."
	}
	s.clients.Send(client, messages.New(messages.MessageTypeInfo, notice))
}

// Clients returns the number of connected clients; call it from the loop or
// after Run has returned
func (s *SessionServer) Clients() int {
	return s.clients.Count()
}
