package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesSubscribers(t *testing.T) {
	h := NewHub()
	a := make(Client, 1)
	b := make(Client, 1)
	h.Subscribe(TopicCatalog, a)
	h.Subscribe(TopicCatalog, b)

	require.NoError(t, h.Broadcast(TopicCatalog, Event{Type: EventGameCardDeleted, Payload: map[string]uint{"id": 4}}))

	for _, c := range []Client{a, b} {
		var got Event
		require.NoError(t, json.Unmarshal(<-c, &got))
		assert.Equal(t, EventGameCardDeleted, got.Type)
	}
}

func TestBroadcastSkipsFullClients(t *testing.T) {
	h := NewHub()
	slow := make(Client) // unbuffered, nobody reading
	h.Subscribe(TopicCatalog, slow)

	assert.NoError(t, h.Broadcast(TopicCatalog, Event{Type: EventGameCardCreated}))
}

func TestUnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	c := make(Client, 1)
	h.Subscribe(TopicCatalog, c)
	assert.Equal(t, 1, h.Subscribers(TopicCatalog))

	h.Unsubscribe(TopicCatalog, c)

	_, open := <-c
	assert.False(t, open)
	assert.Zero(t, h.Subscribers(TopicCatalog))

	// Second unsubscribe must not close twice.
	h.Unsubscribe(TopicCatalog, c)
}

func TestBroadcastWithoutSubscribers(t *testing.T) {
	assert.NoError(t, NewHub().Broadcast("nobody", Event{Type: "x"}))
}
