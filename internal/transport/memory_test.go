package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/splinter/internal/session"
)

func testTopic(t *testing.T, name string) session.Topic {
	t.Helper()
	topic, err := session.DeriveTopic(name)
	require.NoError(t, err)
	return topic
}

func awaitConn(t *testing.T, d Discovery) Conn {
	t.Helper()
	select {
	case c := <-d.Connections():
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection")
		return nil
	}
}

func TestMemorySwarmPairsJoiners(t *testing.T) {
	swarm := NewMemorySwarm()
	topic := testTopic(t, "pairing")

	a, err := swarm.Join(context.Background(), topic, JoinOptions{Server: true})
	require.NoError(t, err)
	b, err := swarm.Join(context.Background(), topic, JoinOptions{Client: true})
	require.NoError(t, err)

	connAtA := awaitConn(t, a)
	connAtB := awaitConn(t, b)

	require.NoError(t, connAtB.WriteMessage([]byte("hello")))
	msg, err := connAtA.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), msg)

	require.NoError(t, connAtA.WriteMessage([]byte("aloha")))
	msg, err = connAtB.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("aloha"), msg)
}

func TestMemorySwarmTopicIsolation(t *testing.T) {
	swarm := NewMemorySwarm()

	a, err := swarm.Join(context.Background(), testTopic(t, "one"), JoinOptions{})
	require.NoError(t, err)
	_, err = swarm.Join(context.Background(), testTopic(t, "two"), JoinOptions{})
	require.NoError(t, err)

	select {
	case <-a.Connections():
		t.Fatal("peers on different topics must not be connected")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemorySwarmFanOut(t *testing.T) {
	swarm := NewMemorySwarm()
	topic := testTopic(t, "fanout")

	dealer, err := swarm.Join(context.Background(), topic, JoinOptions{Server: true})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := swarm.Join(context.Background(), topic, JoinOptions{Client: true})
		require.NoError(t, err)
	}

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		c := awaitConn(t, dealer)
		ids[c.RemoteID()] = true
	}
	assert.Len(t, ids, 3, "each joiner must produce a distinct connection")
}

func TestMemoryConnClose(t *testing.T) {
	swarm := NewMemorySwarm()
	topic := testTopic(t, "closing")

	a, err := swarm.Join(context.Background(), topic, JoinOptions{})
	require.NoError(t, err)
	b, err := swarm.Join(context.Background(), topic, JoinOptions{})
	require.NoError(t, err)

	connAtA := awaitConn(t, a)
	connAtB := awaitConn(t, b)

	// Messages written before close are still readable.
	require.NoError(t, connAtA.WriteMessage([]byte("parting")))
	require.NoError(t, connAtA.Close())

	msg, err := connAtB.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("parting"), msg)

	_, err = connAtB.ReadMessage()
	assert.ErrorIs(t, err, ErrConnClosed)
	assert.ErrorIs(t, connAtB.WriteMessage([]byte("x")), ErrConnClosed)
}

func TestMemoryDiscoveryClose(t *testing.T) {
	swarm := NewMemorySwarm()
	topic := testTopic(t, "leave")

	a, err := swarm.Join(context.Background(), topic, JoinOptions{})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// A new joiner must not be wired to the departed member.
	b, err := swarm.Join(context.Background(), topic, JoinOptions{})
	require.NoError(t, err)
	select {
	case <-b.Connections():
		t.Fatal("closed discovery must not receive new peers")
	case <-time.After(50 * time.Millisecond):
	}
}
