package transmit

import (
	"sync"
	"time"
)

// Status is the single lock-guarded object holding process-wide state
// shared by the worker, monitor, and any producer observing the radio.
// All accessors take a short-lived lock.
type Status struct {
	mu               sync.Mutex
	radioConnected   bool
	uptimeStart      time.Time
	lastTransmission time.Time
	errorCount       int
}

// NewStatus returns a Status with uptime starting now.
func NewStatus() *Status {
	return &Status{uptimeStart: time.Now()}
}

// Reset clears all counters and restarts the uptime clock.
func (s *Status) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.radioConnected = false
	s.lastTransmission = time.Time{}
	s.errorCount = 0
	s.uptimeStart = time.Now()
}

// SetRadioConnected records the radio's current connectivity.
func (s *Status) SetRadioConnected(connected bool) {
	s.mu.Lock()
	s.radioConnected = connected
	s.mu.Unlock()
}

// RadioConnected reports the last-recorded connectivity.
func (s *Status) RadioConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.radioConnected
}

// RecordTransmission stamps the last-successful-transmission time as now.
func (s *Status) RecordTransmission() {
	s.mu.Lock()
	s.lastTransmission = time.Now()
	s.mu.Unlock()
}

// IncrementErrorCount bumps the process-wide error counter by one.
func (s *Status) IncrementErrorCount() {
	s.mu.Lock()
	s.errorCount++
	s.mu.Unlock()
}

// Uptime returns the duration since the status registry was created or
// last Reset.
func (s *Status) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.uptimeStart)
}

// Snapshot is a point-in-time copy of Status, safe to read without a
// lock once returned.
type Snapshot struct {
	RadioConnected   bool
	LastTransmission time.Time
	ErrorCount       int
	UptimeSeconds    float64
	QueueSize        int
}

// Snapshot reports the current status plus the given queue size in one
// consistent read.
func (s *Status) Snapshot(queueSize int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		RadioConnected:   s.radioConnected,
		LastTransmission: s.lastTransmission,
		ErrorCount:       s.errorCount,
		UptimeSeconds:    time.Since(s.uptimeStart).Seconds(),
		QueueSize:        queueSize,
	}
}
