// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
// For production observability, consider integrating with Prometheus or similar.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds relay metrics using atomic counters for thread safety.
type Metrics struct {
	// Join metrics
	joinsTotal     atomic.Int64
	joinsThrottled atomic.Int64
	joinsRejected  atomic.Int64

	// Frame forwarding metrics
	framesForwarded atomic.Int64
	bytesForwarded  atomic.Int64
	forwardNanos    atomic.Int64

	// Membership metrics
	evictionsTotal atomic.Int64
	membersCurrent atomic.Int64
}

// Global is the global metrics instance.
// Use this for recording metrics throughout the application.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordJoin records a join attempt and its outcome.
func (m *Metrics) RecordJoin(err error) {
	m.joinsTotal.Add(1)
	if err != nil {
		m.joinsRejected.Add(1)
		return
	}
	m.membersCurrent.Add(1)
}

// RecordJoinThrottled records a join refused by the rate limiter.
func (m *Metrics) RecordJoinThrottled() {
	m.joinsTotal.Add(1)
	m.joinsThrottled.Add(1)
}

// RecordForward records a data frame forwarded to one member.
func (m *Metrics) RecordForward(bytes int, duration time.Duration) {
	m.framesForwarded.Add(1)
	m.bytesForwarded.Add(int64(bytes))
	m.forwardNanos.Add(duration.Nanoseconds())
}

// RecordEviction records a member removed from a topic.
func (m *Metrics) RecordEviction() {
	m.evictionsTotal.Add(1)
	m.membersCurrent.Add(-1)
}

// Snapshot returns a point-in-time copy of all metrics.
type Snapshot struct {
	JoinsTotal      int64
	JoinsThrottled  int64
	JoinsRejected   int64
	FramesForwarded int64
	BytesForwarded  int64
	ForwardNanos    int64
	EvictionsTotal  int64
	MembersCurrent  int64
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		JoinsTotal:      m.joinsTotal.Load(),
		JoinsThrottled:  m.joinsThrottled.Load(),
		JoinsRejected:   m.joinsRejected.Load(),
		FramesForwarded: m.framesForwarded.Load(),
		BytesForwarded:  m.bytesForwarded.Load(),
		ForwardNanos:    m.forwardNanos.Load(),
		EvictionsTotal:  m.evictionsTotal.Load(),
		MembersCurrent:  m.membersCurrent.Load(),
	}
}

// JoinsTotal returns the total number of join attempts seen.
func (m *Metrics) JoinsTotal() int64 {
	return m.joinsTotal.Load()
}

// MembersCurrent returns the number of members currently connected.
func (m *Metrics) MembersCurrent() int64 {
	return m.membersCurrent.Load()
}

// ForwardLatencyAvgMs returns the average frame forward latency in milliseconds.
// Returns 0 if no frames have been forwarded.
func (m *Metrics) ForwardLatencyAvgMs() float64 {
	frames := m.framesForwarded.Load()
	if frames == 0 {
		return 0
	}
	nanos := m.forwardNanos.Load()
	return float64(nanos) / float64(frames) / 1e6
}

// ThrottleRate returns the share of join attempts refused by the rate
// limiter as a percentage (0-100). Returns 0 if no joins have occurred.
func (m *Metrics) ThrottleRate() float64 {
	total := m.joinsTotal.Load()
	if total == 0 {
		return 0
	}
	throttled := m.joinsThrottled.Load()
	return float64(throttled) / float64(total) * 100
}

// Reset resets all metrics to zero.
// Useful for testing.
func (m *Metrics) Reset() {
	m.joinsTotal.Store(0)
	m.joinsThrottled.Store(0)
	m.joinsRejected.Store(0)
	m.framesForwarded.Store(0)
	m.bytesForwarded.Store(0)
	m.forwardNanos.Store(0)
	m.evictionsTotal.Store(0)
	m.membersCurrent.Store(0)
}
