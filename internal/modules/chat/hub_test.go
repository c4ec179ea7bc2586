package chat

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

// dialHubConn spins up a throwaway websocket server that registers the
// server-side connection with the hub and returns the client side.
func dialHubConn(t *testing.T, h *Hub, userID int64) *websocket.Conn {
	t.Helper()

	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Register(userID, ws)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	// Register runs in the server handler after the handshake; wait for it
	for i := 0; i < 200 && !h.Online(userID); i++ {
		time.Sleep(5 * time.Millisecond)
	}
	if !h.Online(userID) {
		t.Fatal("connection never registered")
	}
	return client
}

func TestHub_PushDelivers(t *testing.T) {
	h := NewHub()
	defer h.Close()

	client := dialHubConn(t, h, 42)

	ok := h.Push(42, map[string]string{"type": "greeting", "body": "hello"})
	assert.True(t, ok)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]string
	assert.NoError(t, client.ReadJSON(&got))
	assert.Equal(t, "hello", got["body"])
}

func TestHub_PushOfflineUser(t *testing.T) {
	h := NewHub()
	defer h.Close()

	assert.False(t, h.Push(99, map[string]string{"type": "noop"}))
	assert.False(t, h.Online(99))
}

// Pushes race in from many goroutines at once. Without the per-connection
// write lock gorilla panics on the concurrent data writes; with it every
// event arrives intact.
func TestHub_ConcurrentPushesSerialized(t *testing.T) {
	h := NewHub()
	defer h.Close()

	client := dialHubConn(t, h, 42)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.Push(42, map[string]string{"type": "message", "body": fmt.Sprintf("msg-%d", i)})
		}(i)
	}
	wg.Wait()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		var got map[string]string
		assert.NoError(t, client.ReadJSON(&got))
		seen[got["body"]] = true
	}
	assert.Len(t, seen, n)
}

// Pings run as control frames in their own goroutine; they must interleave
// safely with data pushes on the same connection.
func TestHub_PushesAndPingsInterleave(t *testing.T) {
	h := NewHub()
	defer h.Close()

	client := dialHubConn(t, h, 42)

	h.mu.RLock()
	server := h.conns[42].ws
	h.mu.RUnlock()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			h.Push(42, map[string]string{"type": "message"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			server.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
		}
	}()
	wg.Wait()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < n; i++ {
		var got map[string]string
		assert.NoError(t, client.ReadJSON(&got))
	}
}

func TestHub_ReconnectReplacesConnection(t *testing.T) {
	h := NewHub()
	defer h.Close()

	first := dialHubConn(t, h, 42)

	h.mu.RLock()
	firstServer := h.conns[42].ws
	h.mu.RUnlock()

	second := dialHubConn(t, h, 42)

	// the user was already online, so wait for the slot to actually swap
	for i := 0; i < 200; i++ {
		h.mu.RLock()
		swapped := h.conns[42].ws != firstServer
		h.mu.RUnlock()
		if swapped {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	// the stale connection must not evict the live one
	h.Unregister(42, firstServer)
	assert.True(t, h.Online(42))

	assert.True(t, h.Push(42, map[string]string{"type": "message", "body": "after-reconnect"}))

	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]string
	assert.NoError(t, second.ReadJSON(&got))
	assert.Equal(t, "after-reconnect", got["body"])

	// the first client's connection was closed on replacement
	first.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := first.ReadMessage()
	assert.Error(t, err)
}
