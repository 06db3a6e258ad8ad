package handlers

import (
	"github.com/google/uuid"

	"github.com/christopherhurt/AmbiguousGame/network"
)

// sender is the outbound half of a connection
type sender interface {
	SendMessage(msg interface{}) error
	Close()
}

// ClientHandler is the session server's view of one connection. Its fields
// are written only by the session loop; HandleMessage runs on the read pump
// and merely forwards frames.
type ClientHandler struct {
	conn    sender
	server  *SessionServer
	session string
	remote  string

	id      int
	name    string
	removed bool
}

func newClientHandler(server *SessionServer, conn sender, remote string) *ClientHandler {
	return &ClientHandler{
		conn:    conn,
		server:  server,
		session: uuid.NewString(),
		remote:  remote,
		id:      -1,
	}
}

// HandleMessage queues a raw frame for the session loop
func (h *ClientHandler) HandleMessage(_ *network.Connection, message []byte) {
	h.server.enqueue(event{kind: eventMessage, client: h, frame: message})
}
