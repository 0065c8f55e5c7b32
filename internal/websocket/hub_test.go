package websocket

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id        string
	sessionID string
	messages  [][]byte
	mu        sync.Mutex
	closed    bool
}

func newMockClient(id, sessionID string) *mockClient {
	return &mockClient{
		id:        id,
		sessionID: sessionID,
		messages:  make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) SessionID() string {
	return m.sessionID
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([][]byte, len(m.messages))
	copy(result, m.messages)
	return result
}

func TestHub_RegisterAndCount(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("c1", "session-1")
	client2 := newMockClient("c2", "session-1")
	client3 := newMockClient("c3", "session-2")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	assert.Equal(t, 2, hub.ClientCount("session-1"))
	assert.Equal(t, 1, hub.ClientCount("session-2"))
	assert.Equal(t, 3, hub.TotalClientCount())
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()

	client := newMockClient("c1", "session-1")
	hub.Register(client)
	require.Equal(t, 1, hub.ClientCount("session-1"))

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount("session-1"))
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_BroadcastReachesOnlyOwnSession(t *testing.T) {
	hub := NewHub()

	mine := newMockClient("c1", "session-1")
	sibling := newMockClient("c2", "session-1")
	other := newMockClient("c3", "session-2")

	hub.Register(mine)
	hub.Register(sibling)
	hub.Register(other)

	hub.Broadcast("session-1", CartUpdated(map[string]int{"items": 1}))

	// Sends are async
	assert.Eventually(t, func() bool {
		return len(mine.GetMessages()) == 1 && len(sibling.GetMessages()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Empty(t, other.GetMessages())
}

func TestHub_BroadcastToEmptySession(t *testing.T) {
	hub := NewHub()

	// Should not panic
	hub.Broadcast("nobody-home", CartCleared(nil))
}

func TestHub_PublishImplementsEventPublisher(t *testing.T) {
	hub := NewHub()
	client := newMockClient("c1", "session-1")
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish("session-1", FavoritesUpdated(nil))

	assert.Eventually(t, func() bool {
		return len(client.GetMessages()) == 1
	}, time.Second, 10*time.Millisecond)
}
