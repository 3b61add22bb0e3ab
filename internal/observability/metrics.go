package observability

import (
	"strconv"
	"sync"
	"time"
)

// RequestStat aggregates latency for one path/method/status key.
type RequestStat struct {
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requests     map[string]RequestStat
	errorCount   map[string]int64
	authFailures map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests:     make(map[string]RequestStat),
		errorCount:   make(map[string]int64),
		authFailures: make(map[string]int64),
	}
}

// RecordRequest folds the request's latency into the per-route stats.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stat := m.requests[key]
	stat.Count++
	stat.Total += duration
	if stat.Count == 1 || duration < stat.Min {
		stat.Min = duration
	}
	if duration > stat.Max {
		stat.Max = duration
	}
	m.requests[key] = stat
}

// RequestStats returns a copy of the per-route latency stats.
func (m *Metrics) RequestStats() map[string]RequestStat {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]RequestStat, len(m.requests))
	for k, v := range m.requests {
		out[k] = v
	}
	return out
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAuthFailure counts rejected credentials by error code.
func (m *Metrics) RecordAuthFailure(code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authFailures[code]++
}

// AuthFailures returns a copy of the auth failure counters.
func (m *Metrics) AuthFailures() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.authFailures))
	for k, v := range m.authFailures {
		out[k] = v
	}
	return out
}
