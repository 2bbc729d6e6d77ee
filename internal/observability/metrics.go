package observability

import (
	"fmt"
	"sync"
	"time"
)

// Metrics keeps in-process counters for the HTTP surface. There is no
// exporter; the counters back the request log and tests.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
	latency  map[string]time.Duration
}

// NewMetrics returns an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
		latency:  make(map[string]time.Duration),
	}
}

// RecordRequest counts a completed request and accumulates its latency
// under the method, route and status it resolved to.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := fmt.Sprintf("%s %s %d", method, path, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
	m.latency[key] += duration
}

// RecordError counts a request that resolved to a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := fmt.Sprintf("%s %s %s", method, path, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key]++
}

// RequestCount reports how many requests resolved to the given status on
// one route.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[fmt.Sprintf("%s %s %d", method, path, status)]
}

// ErrorCount reports how many requests resolved to the given error code on
// one route.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[fmt.Sprintf("%s %s %s", method, path, code)]
}
