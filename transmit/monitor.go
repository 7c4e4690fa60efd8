package transmit

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// MonitorConfig supplies the parameters the monitor re-applies via
// Configure immediately after a successful reconnect.
type MonitorConfig struct {
	Interval time.Duration
	Radio    RadioConfig
}

// Monitor periodically probes the radio and toggles the queue's
// pause/resume state on disconnect/reconnect. It is the only caller of
// Radio.Connect/Disconnect/IsConnected outside the worker.
type Monitor struct {
	Radio  Radio
	Queue  *Queue
	Events EventSink
	Status *Status
	Config MonitorConfig
	Logger *log.Logger

	lastConnected bool
}

// NewMonitor wires a Monitor. Events may be nil; defaults to a no-op sink.
// Config.Interval defaults to 5 seconds if zero.
func NewMonitor(radio Radio, queue *Queue, events EventSink, status *Status, cfg MonitorConfig) *Monitor {
	if events == nil {
		events = NoopEventSink{}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	return &Monitor{
		Radio:  radio,
		Queue:  queue,
		Events: events,
		Status: status,
		Config: cfg,
		Logger: log.New(os.Stderr),
	}
}

// Run ticks at Config.Interval until ctx is cancelled. Every tick is
// swallowed: a failing monitor must never bring the worker down.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.Config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

func (m *Monitor) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.Logger.Error("device monitor tick panicked", "recovered", r)
		}
	}()

	connected := m.isConnected(ctx)

	if !connected {
		if m.lastConnected {
			m.Logger.Warn("radio disconnected; pausing queue")
			if m.Status != nil {
				m.Status.SetRadioConnected(false)
			}
			m.Queue.Pause()
			m.publishStatus(ctx, false)
		}
		// attemptReconnect may bring the radio back up within this same
		// tick; its result, not the stale isConnected read above, is
		// what lastConnected must reflect.
		connected = m.attemptReconnect(ctx)
	} else if !m.lastConnected {
		m.Logger.Info("radio connection restored")
		if m.Status != nil {
			m.Status.SetRadioConnected(true)
		}
		m.Queue.Resume()
		m.publishStatus(ctx, true)
	}

	m.lastConnected = connected
}

func (m *Monitor) isConnected(ctx context.Context) bool {
	defer func() { recover() }()
	return m.Radio.IsConnected(ctx)
}

// attemptReconnect tries to bring the radio back up and reports whether
// it succeeded. The caller, not attemptReconnect, is responsible for
// updating lastConnected: it alone knows the full tick's outcome.
func (m *Monitor) attemptReconnect(ctx context.Context) bool {
	ok, err := m.Radio.Connect(ctx)
	if err != nil || !ok {
		return false
	}
	if err := m.Radio.Configure(ctx, m.Config.Radio); err != nil {
		m.Logger.Warn("reconnected but failed to configure radio", "error", err)
	}
	if m.Status != nil {
		m.Status.SetRadioConnected(true)
	}
	m.Queue.Resume()
	m.publishStatus(ctx, true)
	return true
}

func (m *Monitor) publishStatus(ctx context.Context, connected bool) {
	m.Events.Publish(ctx, Event{
		Name:      "status_update",
		Timestamp: time.Now(),
		Extra:     map[string]any{"radio_connected": connected},
	})
}
