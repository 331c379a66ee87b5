package protocol

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/splinter/internal/session"
	"github.com/mrz1836/splinter/internal/shamir"
	"github.com/mrz1836/splinter/internal/transport"
)

func runRole(ctx context.Context, t *testing.T, swarm transport.Swarm, topic session.Topic, role Role, opts transport.JoinOptions) <-chan []byte {
	t.Helper()
	out := make(chan []byte, 1)
	go func() {
		rt := NewRuntime(swarm, opts, nil)
		result, err := rt.Run(ctx, topic, role)
		if err != nil && ctx.Err() == nil {
			t.Errorf("runtime: %v", err)
		}
		out <- result
	}()
	return out
}

func TestRuntimeDistributionAndRecovery(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	swarm := transport.NewMemorySwarm()
	topic, err := session.DeriveTopic("runtime-e2e")
	require.NoError(t, err)

	secret := []byte("end to end secret")
	shares, err := shamir.Split(secret, 3, 2)
	require.NoError(t, err)

	// Initial distribution: three receivers wait for the dealer.
	server := transport.JoinOptions{Server: true}
	client := transport.JoinOptions{Client: true}

	receivers := make([]*Receiver, 3)
	outs := make([]<-chan []byte, 3)
	for i := range receivers {
		receivers[i] = NewReceiver("runtime-e2e", nil)
		outs[i] = runRole(ctx, t, swarm, topic, receivers[i], server)
	}

	dealer := NewDealer("runtime-e2e", shares, 2, nil)
	dealerOut := runRole(ctx, t, swarm, topic, dealer, client)

	received := make([]shamir.Share, 0, 3)
	for i, out := range outs {
		select {
		case raw := <-out:
			s, decodeErr := shamir.Decode(string(raw))
			require.NoError(t, decodeErr)
			received = append(received, s)
		case <-ctx.Done():
			t.Fatalf("receiver %d never got a share", i)
		}
	}
	select {
	case <-dealerOut:
	case <-ctx.Done():
		t.Fatal("dealer never finished")
	}

	seen := make(map[byte]bool)
	for _, s := range received {
		assert.False(t, seen[s.Index], "share %d delivered twice", s.Index)
		seen[s.Index] = true
	}

	// Recovery: each holder re-deals its single share to a collector on a
	// fresh swarm session.
	recoverTopic, err := session.DeriveTopic("runtime-recover")
	require.NoError(t, err)

	collector := NewCollector("runtime-recover", 2, nil, nil)
	collectorOut := runRole(ctx, t, swarm, recoverTopic, collector, server)

	for _, s := range received[:2] {
		holder := NewDealer("runtime-recover", []shamir.Share{s}, 2, nil)
		runRole(ctx, t, swarm, recoverTopic, holder, client)
	}

	select {
	case got := <-collectorOut:
		assert.Equal(t, secret, got)
	case <-ctx.Done():
		t.Fatal("collector never reconstructed")
	}
}

func TestRuntimeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	swarm := transport.NewMemorySwarm()
	topic, err := session.DeriveTopic("runtime-cancel")
	require.NoError(t, err)

	rt := NewRuntime(swarm, transport.JoinOptions{Server: true}, nil)
	_, err = rt.Run(ctx, topic, NewCollector("runtime-cancel", 2, nil, nil))
	assert.ErrorIs(t, err, context.Canceled)
}
