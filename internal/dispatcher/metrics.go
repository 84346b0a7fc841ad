package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/mrdivyansh/lexical/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	channels map[string]*ChannelMetrics

	totalDispatches uint64
	totalHandled    uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// ChannelMetrics holds metrics for one command channel.
type ChannelMetrics struct {
	Channel       string
	DispatchCount uint64
	HandledCount  uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.Status
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		channels: make(map[string]*ChannelMetrics),
	}
}

// RecordDispatch records one run of a channel's handler chain.
func (m *Metrics) RecordDispatch(channel string, duration time.Duration, status handler.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	cm := m.channels[channel]
	if cm == nil {
		cm = &ChannelMetrics{Channel: channel}
		m.channels[channel] = cm
	}
	cm.DispatchCount++
	cm.TotalDuration += duration
	cm.LastStatus = status
	cm.LastDispatch = time.Now()
	if duration > cm.MaxDuration {
		cm.MaxDuration = duration
	}

	switch status {
	case handler.StatusHandled:
		m.totalHandled++
		cm.HandledCount++
	case handler.StatusError:
		m.totalErrors++
		cm.ErrorCount++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// ChannelStats returns a copy of the metrics for a channel, or nil.
func (m *Metrics) ChannelStats(channel string) *ChannelMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.channels[channel]
	if cm == nil {
		return nil
	}
	c := *cm
	return &c
}

// TopChannels returns the n most dispatched channels.
func (m *Metrics) TopChannels(n int) []ChannelMetrics {
	m.mu.RLock()
	all := make([]ChannelMetrics, 0, len(m.channels))
	for _, cm := range m.channels {
		all = append(all, *cm)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].DispatchCount != all[j].DispatchCount {
			return all[i].DispatchCount > all[j].DispatchCount
		}
		return all[i].Channel < all[j].Channel
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.channels = make(map[string]*ChannelMetrics)
	m.totalDispatches = 0
	m.totalHandled = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalHandled    uint64
	TotalErrors     uint64
	TotalPanics     uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	ChannelCount    int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalHandled:    m.totalHandled,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		TotalDuration:   m.totalDuration,
		ChannelCount:    len(m.channels),
		Timestamp:       time.Now(),
	}
	if m.totalDispatches > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}
	return snapshot
}

// AverageDuration returns the average duration of the channel's chain.
func (cm ChannelMetrics) AverageDuration() time.Duration {
	if cm.DispatchCount == 0 {
		return 0
	}
	return cm.TotalDuration / time.Duration(cm.DispatchCount)
}
