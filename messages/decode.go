package messages

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/christopherhurt/AmbiguousGame/models"
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// Inbound is one of the client-originated messages: RegisterPlayer, Move,
// TileEdit or Chat
type Inbound interface {
	Type() MessageType
}

type RegisterPlayer struct {
	Player models.Player
}

// Move carries movement state; any id sent by the client is discarded
type Move struct {
	X      float64
	Y      float64
	Dir    models.Direction
	Moving bool
}

// TileEdit is a validated tile update. Raw is the payload as the client sent
// it, which is what gets relayed.
type TileEdit struct {
	Layer int
	Col   int
	Row   int
	Tile  int
	Raw   json.RawMessage
}

type Chat struct {
	Text string
}

func (RegisterPlayer) Type() MessageType { return MessageTypeNewPlayer }
func (Move) Type() MessageType           { return MessageTypePlayerMoved }
func (TileEdit) Type() MessageType       { return MessageTypeTileUpdate }
func (Chat) Type() MessageType           { return MessageTypeChat }

type rawEnvelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Decode parses a client frame into its variant
func Decode(frame []byte) (Inbound, error) {
	var env rawEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if env.Type == "" {
			return nil, fmt.Errorf("%w: missing type", ErrMalformed)
		}
		if !known(env.Type) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
		}
		return nil, fmt.Errorf("%w: %s without data", ErrMalformed, env.Type)
	}

	switch env.Type {
	case MessageTypeNewPlayer:
		var p models.Player
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		return RegisterPlayer{Player: p}, nil

	case MessageTypePlayerMoved:
		var m struct {
			X      *float64          `json:"x"`
			Y      *float64          `json:"y"`
			Dir    *models.Direction `json:"dir"`
			Moving bool              `json:"moving"`
		}
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		if m.X == nil || m.Y == nil || m.Dir == nil {
			return nil, fmt.Errorf("%w: %s needs x, y and dir", ErrMalformed, env.Type)
		}
		if !m.Dir.Valid() {
			return nil, fmt.Errorf("%w: direction %d", ErrMalformed, *m.Dir)
		}
		return Move{X: *m.X, Y: *m.Y, Dir: *m.Dir, Moving: m.Moving}, nil

	case MessageTypeTileUpdate:
		var t struct {
			Layer *int `json:"layer"`
			Col   *int `json:"col"`
			Row   *int `json:"row"`
			Type  *int `json:"type"`
		}
		if err := json.Unmarshal(env.Data, &t); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		if t.Layer == nil || t.Col == nil || t.Row == nil || t.Type == nil {
			return nil, fmt.Errorf("%w: %s needs layer, col, row and type", ErrMalformed, env.Type)
		}
		if *t.Type < 0 {
			return nil, fmt.Errorf("%w: negative tile id %d", ErrMalformed, *t.Type)
		}
		return TileEdit{Layer: *t.Layer, Col: *t.Col, Row: *t.Row, Tile: *t.Type, Raw: env.Data}, nil

	case MessageTypeChat:
		var text string
		if err := json.Unmarshal(env.Data, &text); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		return Chat{Text: text}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

func known(t MessageType) bool {
	switch t {
	case MessageTypeNewPlayer, MessageTypePlayerMoved, MessageTypeTileUpdate, MessageTypeChat:
		return true
	}
	return false
}
