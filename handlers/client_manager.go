package handlers

import (
	"sort"

	"github.com/christopherhurt/AmbiguousGame/logging"
)

// ClientManager tracks connected clients by player id. Only the session loop
// touches it.
type ClientManager struct {
	clients map[int]*ClientHandler
	onDrop  func(client *ClientHandler, err error)
}

// NewClientManager creates a new client manager
func NewClientManager(onDrop func(*ClientHandler, error)) *ClientManager {
	return &ClientManager{
		clients: make(map[int]*ClientHandler),
		onDrop:  onDrop,
	}
}

// AddClient adds a client to the manager
func (cm *ClientManager) AddClient(client *ClientHandler) {
	cm.clients[client.id] = client
}

// RemoveClient removes a client from the manager
func (cm *ClientManager) RemoveClient(id int) {
	delete(cm.clients, id)
}

// Count returns the number of connected clients
func (cm *ClientManager) Count() int {
	return len(cm.clients)
}

// Send delivers msg to one client, best effort
func (cm *ClientManager) Send(client *ClientHandler, msg interface{}) {
	if err := client.conn.SendMessage(msg); err != nil {
		logging.Debug("Dropped message to player %d: %v", client.id, err)
		if cm.onDrop != nil {
			cm.onDrop(client, err)
		}
	}
}

// BroadcastToAll sends a message to all connected clients
func (cm *ClientManager) BroadcastToAll(msg interface{}) {
	for _, id := range cm.ids() {
		cm.Send(cm.clients[id], msg)
	}
}

// BroadcastToOthers sends a message to all connected clients except the specified one
func (cm *ClientManager) BroadcastToOthers(excludeID int, msg interface{}) {
	for _, id := range cm.ids() {
		if id == excludeID {
			continue
		}
		cm.Send(cm.clients[id], msg)
	}
}

// CloseAll closes every client connection
func (cm *ClientManager) CloseAll() {
	for id, client := range cm.clients {
		client.conn.Close()
		delete(cm.clients, id)
	}
}

func (cm *ClientManager) ids() []int {
	ids := make([]int, 0, len(cm.clients))
	for id := range cm.clients {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
