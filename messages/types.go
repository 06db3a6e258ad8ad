package messages

import "github.com/christopherhurt/AmbiguousGame/models"

// MessageType defines the type of message being sent
type MessageType string

const (
	// Server to client
	MessageTypeMap     MessageType = "map"
	MessageTypePlayers MessageType = "players"
	MessageTypeSelf    MessageType = "self"
	MessageTypeDelete  MessageType = "deletePlayer"
	MessageTypeInfo    MessageType = "info"

	// Both directions
	MessageTypeNewPlayer   MessageType = "newPlayer"
	MessageTypePlayerMoved MessageType = "playerMoved"
	MessageTypeTileUpdate  MessageType = "tileUpdate"
	MessageTypeChat        MessageType = "chatMessage"
)

// Envelope is the wire frame for every message
type Envelope struct {
	Type MessageType `json:"type"`
	Data interface{} `json:"data"`
}

// New builds an envelope
func New(t MessageType, data interface{}) Envelope {
	return Envelope{Type: t, Data: data}
}

// SelfMessage tells a new connection who it is and where to spawn
type SelfMessage struct {
	ID   int          `json:"id"`
	Name string       `json:"name"`
	Pos  models.Coord `json:"pos"`
}

// NewPlayerMessage announces a registered player to the others
type NewPlayerMessage struct {
	ID     int            `json:"id"`
	Player *models.Player `json:"player"`
}

// PlayerMovedMessage carries a player's latest movement state
type PlayerMovedMessage struct {
	ID     int              `json:"id"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	Dir    models.Direction `json:"dir"`
	Moving bool             `json:"moving"`
}

// TileUpdateMessage overwrites one tile of one layer
type TileUpdateMessage struct {
	Layer int `json:"layer"`
	Col   int `json:"col"`
	Row   int `json:"row"`
	Type  int `json:"type"`
}

// ChatMessage relays chat text with its sender
type ChatMessage struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// PlayersSnapshot maps player id to player
type PlayersSnapshot map[int]*models.Player
