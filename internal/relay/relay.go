// Package relay implements the websocket rendezvous server peers use to
// find each other. The relay knows nothing about the distribution
// protocol: it groups websocket clients by opaque topic string and
// forwards data frames between members of the same topic.
package relay

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/mrz1836/splinter/internal/config"
	"github.com/mrz1836/splinter/internal/metrics"
	"github.com/mrz1836/splinter/internal/transport"
)

const (
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	maxFrameSize      = 1 << 20
)

// member is one websocket client joined to a topic.
type member struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (m *member) writeFrame(f transport.Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if err := m.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return m.conn.WriteMessage(websocket.TextMessage, data)
}

// Relay is the rendezvous server.
type Relay struct {
	limiter  *rate.Limiter
	upgrader websocket.Upgrader
	log      *config.Logger

	mu     sync.Mutex
	topics map[string]map[string]*member
}

// New creates a relay. Joins are throttled to ratePerSecond with the
// given burst to keep a flood of clients from exhausting the server.
func New(ratePerSecond float64, burst int, logger *config.Logger) *Relay {
	if logger == nil {
		logger = config.NullLogger()
	}
	return &Relay{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		log:    logger,
		topics: make(map[string]map[string]*member),
	}
}

// Handler returns the relay's HTTP handler, serving joins on /join.
func (r *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/join", r.serveJoin)
	return mux
}

// ListenAndServe runs the relay on addr until the context is cancelled.
func (r *Relay) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	r.log.Info("relay listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (r *Relay) serveJoin(w http.ResponseWriter, req *http.Request) {
	if !r.limiter.Allow() {
		metrics.Global.RecordJoinThrottled()
		http.Error(w, "too many joins", http.StatusTooManyRequests)
		return
	}

	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.log.Error("websocket upgrade: %v", err)
		return
	}
	conn.SetReadLimit(maxFrameSize)

	var join transport.Frame
	if err := conn.ReadJSON(&join); err != nil || join.Type != transport.FrameJoin || join.Topic == "" {
		r.log.Debug("client sent no join frame, dropping")
		_ = conn.Close()
		return
	}

	m, err := r.admit(join.Topic, conn)
	metrics.Global.RecordJoin(err)
	if err != nil {
		r.log.Error("admitting member: %v", err)
		_ = conn.Close()
		return
	}
	r.log.Info("member %s joined topic %s", m.id, join.Topic)

	r.pump(join.Topic, m)
}

// admit registers a new member on the topic and announces the pairing
// both ways to every existing member.
func (r *Relay) admit(topic string, conn *websocket.Conn) (*member, error) {
	id, err := memberID()
	if err != nil {
		return nil, err
	}
	m := &member{id: id, conn: conn}

	r.mu.Lock()
	members := r.topics[topic]
	if members == nil {
		members = make(map[string]*member)
		r.topics[topic] = members
	}
	peers := make([]*member, 0, len(members))
	for _, p := range members {
		peers = append(peers, p)
	}
	members[id] = m
	r.mu.Unlock()

	for _, p := range peers {
		if err := p.writeFrame(transport.Frame{Type: transport.FramePeer, Topic: topic, Peer: m.id}); err != nil {
			r.log.Debug("announcing %s to %s: %v", m.id, p.id, err)
		}
		if err := m.writeFrame(transport.Frame{Type: transport.FramePeer, Topic: topic, Peer: p.id}); err != nil {
			r.log.Debug("announcing %s to %s: %v", p.id, m.id, err)
		}
	}
	return m, nil
}

// pump reads frames from one member until its connection drops, then
// removes it and tells the remaining members it left.
func (r *Relay) pump(topic string, m *member) {
	defer r.evict(topic, m)

	for {
		var f transport.Frame
		if err := m.conn.ReadJSON(&f); err != nil {
			return
		}
		if f.Type != transport.FrameData || f.Peer == "" {
			continue
		}

		r.mu.Lock()
		target := r.topics[topic][f.Peer]
		r.mu.Unlock()
		if target == nil {
			r.log.Debug("member %s addressed unknown peer %s", m.id, f.Peer)
			continue
		}

		// Rewrite the peer field so the receiver knows who sent it.
		out := transport.Frame{Type: transport.FrameData, Topic: topic, Peer: m.id, Data: f.Data}
		start := time.Now()
		if err := target.writeFrame(out); err != nil {
			r.log.Debug("forwarding to %s: %v", target.id, err)
			continue
		}
		metrics.Global.RecordForward(len(f.Data), time.Since(start))
	}
}

func (r *Relay) evict(topic string, m *member) {
	r.mu.Lock()
	members := r.topics[topic]
	delete(members, m.id)
	if len(members) == 0 {
		delete(r.topics, topic)
	}
	remaining := make([]*member, 0, len(members))
	for _, p := range members {
		remaining = append(remaining, p)
	}
	r.mu.Unlock()

	_ = m.conn.Close()
	metrics.Global.RecordEviction()
	r.log.Info("member %s left topic %s", m.id, topic)

	for _, p := range remaining {
		if err := p.writeFrame(transport.Frame{Type: transport.FrameLeave, Topic: topic, Peer: m.id}); err != nil {
			r.log.Debug("announcing leave of %s to %s: %v", m.id, p.id, err)
		}
	}
}

func memberID() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generating member id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
