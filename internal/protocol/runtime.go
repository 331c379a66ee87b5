package protocol

import (
	"context"

	"github.com/mrz1836/splinter/internal/config"
	"github.com/mrz1836/splinter/internal/session"
	"github.com/mrz1836/splinter/internal/transport"
)

// Role is one side of the distribution protocol. The runtime drives it
// from a single goroutine, so implementations need no locking.
type Role interface {
	// OnConnect produces the message to send to a newly connected peer,
	// or nil for none.
	OnConnect() *Envelope

	// OnMessage handles one inbound message and optionally produces a
	// reply. A non-nil error is reported but does not stop the run.
	OnMessage(env Envelope) (*Envelope, error)

	// Done reports whether the role has reached its terminal state.
	Done() bool

	// Result returns the role's output once Done, or nil.
	Result() []byte
}

const eventBuffer = 64

type eventKind int

const (
	eventConnect eventKind = iota
	eventMessage
	eventDisconnect
)

type event struct {
	kind eventKind
	conn transport.Conn
	env  Envelope
}

// Runtime joins a swarm topic and runs a Role over it. Connection
// acceptance and per-connection reads happen on their own goroutines,
// but all protocol state transitions are serialized through one event
// loop.
type Runtime struct {
	swarm transport.Swarm
	opts  transport.JoinOptions
	log   *config.Logger
}

// NewRuntime creates a runtime over the given swarm.
func NewRuntime(swarm transport.Swarm, opts transport.JoinOptions, logger *config.Logger) *Runtime {
	if logger == nil {
		logger = config.NullLogger()
	}
	return &Runtime{swarm: swarm, opts: opts, log: logger}
}

// Run joins the topic and drives the role until it is done or the
// context is cancelled. The role's result, if any, is returned.
func (r *Runtime) Run(ctx context.Context, topic session.Topic, role Role) ([]byte, error) {
	disc, err := r.swarm.Join(ctx, topic, r.opts)
	if err != nil {
		return nil, err
	}
	defer disc.Close() //nolint:errcheck // leaving the topic on the way out

	events := make(chan event, eventBuffer)
	done := make(chan struct{})
	defer close(done)

	go r.accept(disc, events, done)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev := <-events:
			r.dispatch(role, ev)
			if role.Done() {
				return role.Result(), nil
			}
		}
	}
}

func (r *Runtime) dispatch(role Role, ev event) {
	switch ev.kind {
	case eventConnect:
		r.log.Debug("peer %s connected", ev.conn.RemoteID())
		if out := role.OnConnect(); out != nil {
			r.send(ev.conn, *out)
		}
	case eventMessage:
		reply, err := role.OnMessage(ev.env)
		if err != nil {
			r.log.Error("message from %s: %v", ev.conn.RemoteID(), err)
		}
		if reply != nil {
			r.send(ev.conn, *reply)
		}
	case eventDisconnect:
		r.log.Debug("peer %s disconnected", ev.conn.RemoteID())
	}
}

// send delivers one envelope on a best-effort basis. Transport failures
// are logged and otherwise ignored; the protocol makes no delivery
// guarantee beyond at-most-once.
func (r *Runtime) send(conn transport.Conn, env Envelope) {
	data, err := env.Marshal()
	if err != nil {
		r.log.Error("encoding message for %s: %v", conn.RemoteID(), err)
		return
	}
	if err := conn.WriteMessage(data); err != nil {
		r.log.Error("sending to %s: %v", conn.RemoteID(), err)
	}
}

func (r *Runtime) accept(disc transport.Discovery, events chan<- event, done <-chan struct{}) {
	for conn := range disc.Connections() {
		select {
		case events <- event{kind: eventConnect, conn: conn}:
		case <-done:
			return
		}
		go r.read(conn, events, done)
	}
}

func (r *Runtime) read(conn transport.Conn, events chan<- event, done <-chan struct{}) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			select {
			case events <- event{kind: eventDisconnect, conn: conn}:
			case <-done:
			}
			return
		}
		env, err := ParseEnvelope(data)
		if err != nil || env.V != Version {
			// Not speaking our protocol; drop silently.
			continue
		}
		select {
		case events <- event{kind: eventMessage, conn: conn, env: env}:
		case <-done:
			return
		}
	}
}
