package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient создает клиента без реального соединения: в этих тестах
// pump-горутины не запускаются, сообщения читаются прямо из канала send.
func newTestClient(hub *Hub, userID uint, username string) *Client {
	return NewClient(hub, nil, userID, username)
}

func receiveMessage(t *testing.T, client *Client) []byte {
	t.Helper()
	select {
	case message := <-client.send:
		return message
	case <-time.After(time.Second):
		t.Fatalf("клиент %d не получил сообщение за отведенное время", client.UserID)
		return nil
	}
}

func TestHub_RegisterAndJoinArena(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 1, "racer")

	hub.handleRegister(client)
	assert.Equal(t, 1, hub.ClientCount())
	assert.Equal(t, 0, hub.ArenaCount())

	hub.handleJoinArena(client)
	assert.Equal(t, 1, hub.ArenaCount())

	// Повторный join идемпотентен
	hub.handleJoinArena(client)
	assert.Equal(t, 1, hub.ArenaCount())
}

func TestHub_JoinArenaIgnoresUnknownClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 1, "racer")

	// Клиент не зарегистрирован - join должен быть проигнорирован
	hub.handleJoinArena(client)
	assert.Equal(t, 0, hub.ArenaCount())
}

// Все подписчики arena получают один и тот же снимок; клиенты вне
// группы не получают ничего.
func TestHub_BroadcastDeliversIdenticalSnapshotToSubscribers(t *testing.T) {
	hub := NewHub()
	first := newTestClient(hub, 1, "racer")
	second := newTestClient(hub, 2, "drifter")
	spectator := newTestClient(hub, 3, "lurker")

	hub.handleRegister(first)
	hub.handleRegister(second)
	hub.handleRegister(spectator)
	hub.handleJoinArena(first)
	hub.handleJoinArena(second)

	payload := []byte(`{"type":"leaderboard:update","data":[]}`)
	hub.handleBroadcast(payload)

	assert.Equal(t, payload, receiveMessage(t, first))
	assert.Equal(t, payload, receiveMessage(t, second))
	assert.Empty(t, spectator.send)
}

func TestHub_BroadcastSkipsFullBuffer(t *testing.T) {
	hub := NewHub()
	stuck := &Client{UserID: 1, ConnectionID: "test-conn", send: make(chan []byte, 1)}
	healthy := newTestClient(hub, 2, "drifter")

	hub.handleRegister(stuck)
	hub.handleRegister(healthy)
	hub.handleJoinArena(stuck)
	hub.handleJoinArena(healthy)

	// Забиваем буфер медленного клиента
	require.True(t, stuck.enqueue([]byte("old")))

	hub.handleBroadcast([]byte("snapshot"))

	// Медленный клиент пропустил рассылку, остальные получили
	assert.Equal(t, []byte("snapshot"), receiveMessage(t, healthy))
	assert.Equal(t, []byte("old"), receiveMessage(t, stuck))
	assert.Empty(t, stuck.send)
}

func TestHub_UnregisterRemovesFromArena(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 1, "racer")

	hub.handleRegister(client)
	hub.handleJoinArena(client)
	hub.handleUnregister(client)

	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, 0, hub.ArenaCount())

	// Канал send закрыт - enqueue больше не принимает сообщения
	assert.False(t, client.enqueue([]byte("late")))

	// Повторный unregister безопасен
	hub.handleUnregister(client)
}

func TestHub_RunLoopEndToEnd(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := newTestClient(hub, 1, "racer")
	second := newTestClient(hub, 2, "drifter")

	hub.Register(first)
	hub.Register(second)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	hub.JoinArena(first)
	hub.JoinArena(second)
	require.Eventually(t, func() bool { return hub.ArenaCount() == 2 }, time.Second, 10*time.Millisecond)

	payload := []byte(`{"type":"leaderboard:update","data":[]}`)
	require.True(t, hub.BroadcastToArena(payload))

	assert.Equal(t, payload, receiveMessage(t, first))
	assert.Equal(t, payload, receiveMessage(t, second))

	hub.Unregister(first)
	hub.Unregister(second)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	hub.Close()
}
