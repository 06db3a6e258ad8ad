package network

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	frames chan string
}

func (h *recordingHandler) HandleMessage(conn *Connection, message []byte) {
	h.frames <- string(message)
}

// echoServer upgrades one connection and hands it to fn
func echoServer(t *testing.T, fn func(*websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		fn(ws)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSendAndReadPreserveOrder(t *testing.T) {
	handler := &recordingHandler{frames: make(chan string, 8)}
	url := echoServer(t, func(ws *websocket.Conn) {
		conn := NewConnection(ws, 8)
		go conn.WritePump()
		for _, msg := range []string{"a", "b", "c"} {
			assert.NoError(t, conn.SendMessage(map[string]string{"v": msg}))
		}
		conn.ReadPump(handler, 1024)
		conn.Close()
	})

	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	for _, want := range []string{"a", "b", "c"} {
		var got map[string]string
		require.NoError(t, client.ReadJSON(&got))
		assert.Equal(t, want, got["v"])
	}

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte("one")))
	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte("two")))
	assert.Equal(t, "one", <-handler.frames)
	assert.Equal(t, "two", <-handler.frames)
}

func TestSendMessageDropsWhenFullOrClosed(t *testing.T) {
	conn := NewConnection(nil, 1)
	require.NoError(t, conn.SendMessage("first"))
	assert.ErrorIs(t, conn.SendMessage("second"), ErrSendBufferFull)

	conn.Close()
	conn.Close()
	assert.ErrorIs(t, conn.SendMessage("third"), ErrConnectionClosed)
}
