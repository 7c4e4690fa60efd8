package transmit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRadio struct {
	mu          sync.Mutex
	connected   bool
	transmitErr error
	transmits   int
	disconnects int
}

func (r *fakeRadio) Connect(context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected = true
	return true, nil
}
func (r *fakeRadio) Disconnect(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected = false
	r.disconnects++
	return nil
}
func (r *fakeRadio) IsConnected(context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}
func (r *fakeRadio) Configure(context.Context, RadioConfig) error { return nil }
func (r *fakeRadio) Transmit(context.Context, []complex64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transmits++
	return r.transmitErr
}

type fakeSink struct {
	mu     sync.Mutex
	events []Event
}

func (f *fakeSink) Publish(_ context.Context, e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeSink) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Name
	}
	return out
}

func newTestWorker(radio Radio, status *Status, sink *fakeSink) *Worker {
	return NewWorker(NewQueue(), radio, nil, sink, status, WorkerConfig{
		SampleRateMHz: 2,
		DeviationHz:   4500,
	})
}

func TestWorkerSuccessPath(t *testing.T) {
	radio := &fakeRadio{connected: true}
	status := NewStatus()
	sink := &fakeSink{}
	w := newTestWorker(radio, status, sink)

	r, err := NewRequest("m1", []string{"1234567"}, "TEST", Alphanumeric, 439.9875, Baud1200)
	require.NoError(t, err)

	w.process(context.Background(), r)

	assert.Contains(t, sink.names(), "transmission_complete")
	assert.NotContains(t, sink.names(), "transmission_failed")
	assert.Equal(t, 1, radio.transmits)
}

func TestWorkerTransmissionErrorPausesQueueAndDisconnects(t *testing.T) {
	radio := &fakeRadio{connected: true, transmitErr: &TransmissionError{Reason: "RF write failed"}}
	status := NewStatus()
	sink := &fakeSink{}
	q := NewQueue()
	w := NewWorker(q, radio, nil, sink, status, WorkerConfig{SampleRateMHz: 2, DeviationHz: 4500})

	r, err := NewRequest("m1", []string{"1234567"}, "TEST", Alphanumeric, 439.9875, Baud1200)
	require.NoError(t, err)

	w.process(context.Background(), r)

	assert.Contains(t, sink.names(), "transmission_failed")
	assert.True(t, q.Paused())
	assert.False(t, status.RadioConnected())
	assert.Equal(t, 1, radio.disconnects)
}

func TestWorkerEventOrderIsMonotonicPrefix(t *testing.T) {
	radio := &fakeRadio{connected: true}
	status := NewStatus()
	sink := &fakeSink{}
	w := newTestWorker(radio, status, sink)

	r, err := NewRequest("m1", []string{"1234567"}, "TEST", Alphanumeric, 439.9875, Baud1200)
	require.NoError(t, err)
	w.process(context.Background(), r)

	want := []string{"encoding_started", "transmitting", "transmission_complete"}
	assert.Equal(t, want, sink.names())
}

func TestWorkerRunRespectsCancellation(t *testing.T) {
	radio := &fakeRadio{connected: true}
	status := NewStatus()
	sink := &fakeSink{}
	q := NewQueue()
	w := NewWorker(q, radio, nil, sink, status, WorkerConfig{SampleRateMHz: 2, DeviationHz: 4500})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
