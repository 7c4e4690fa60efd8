package transmit

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"

	"github.com/szeremeta1/pisag"
)

// State is a request's position in the Queued -> Encoding -> Transmitting
// -> {Success, Failed} lifecycle. Transitions never move backward.
type State string

const (
	Queued       State = "queued"
	Encoding     State = "encoding"
	Transmitting State = "transmitting"
	Success      State = "success"
	Failed       State = "failed"
)

// WorkerConfig carries the radio parameters the worker passes to
// Configure and the encoder on every request.
type WorkerConfig struct {
	SampleRateMHz float64
	IFGainDB      float64
	TXPowerDBM    float64
	DeviationHz   float64
	TimestampFmt  string
}

// Worker runs the single background task that dequeues, encodes, and
// transmits requests. Exactly one Worker runs per process; it is the
// sole writer of worker-owned state transitions.
type Worker struct {
	Queue    *Queue
	Radio    Radio
	Store    Store
	Events   EventSink
	Status   *Status
	Recorder BurstRecorder
	Config   WorkerConfig
	Logger   *log.Logger

	timestamper *strftime.Strftime
}

// NewWorker wires a Worker from its collaborators. Store, events, and
// status may be nil: a nil Store skips persistence, a nil EventSink is
// replaced by NoopEventSink, and a nil Status is not updated. The Logger
// writes to stderr.
func NewWorker(queue *Queue, radio Radio, store Store, events EventSink, status *Status, cfg WorkerConfig) *Worker {
	if events == nil {
		events = NoopEventSink{}
	}
	logger := log.New(os.Stderr)
	format := cfg.TimestampFmt
	if format == "" {
		format = "%Y-%m-%d %H:%M:%S"
	}
	ts, err := strftime.New(format)
	if err != nil {
		ts, _ = strftime.New("%Y-%m-%d %H:%M:%S")
	}
	return &Worker{
		Queue:       queue,
		Radio:       radio,
		Store:       store,
		Events:      events,
		Status:      status,
		Recorder:    NoopBurstRecorder{},
		Config:      cfg,
		Logger:      logger,
		timestamper: ts,
	}
}

// Run blocks, dequeuing and processing one request at a time until ctx is
// cancelled. Each dequeue waits up to one second before re-checking ctx.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		dctx, cancel := context.WithTimeout(ctx, time.Second)
		req, ok := w.Queue.Dequeue(dctx)
		cancel()
		if !ok {
			continue
		}
		w.process(ctx, req)
	}
}

func (w *Worker) process(ctx context.Context, req Request) {
	banner := w.timestamper.FormatString(time.Now())
	w.Logger.Info("starting transmission", "message_id", req.MessageID, "recipients", len(req.Recipients), "at", banner)

	w.transition(ctx, req.MessageID, Encoding, "")
	w.event(ctx, Event{Name: "encoding_started", MessageID: req.MessageID, Timestamp: time.Now(), Stage: "encoding"})

	start := time.Now()
	address := make([]uint32, len(req.Recipients))
	message, encErr := w.encodeMessage(req)
	if encErr != nil {
		w.fail(ctx, req, &EncodingError{Reason: encErr.Error()})
		return
	}
	for i, ric := range req.Recipients {
		n, _ := strconv.ParseUint(ric, 10, 32)
		address[i] = pocsag.EncodeAddress(uint32(n))
	}

	for i, ric := range req.Recipients {
		w.transition(ctx, req.MessageID, Transmitting, "")
		w.event(ctx, Event{Name: "transmitting", MessageID: req.MessageID, Timestamp: time.Now(), Stage: "transmitting"})

		if tr, ok := w.Radio.(TransmittingRadio); ok {
			n, _ := strconv.ParseUint(ric, 10, 32)
			err := tr.EncodeAndTransmit(ctx, BurstRequest{
				RIC:         strconv.FormatUint(n, 10),
				Text:        req.MessageText,
				MessageType: req.MessageType,
				BaudRate:    int(req.BaudRate),
				FreqMHz:     req.FrequencyMHz,
				GainDB:      w.Config.IFGainDB,
				PowerDBM:    w.Config.TXPowerDBM,
			})
			if err != nil {
				w.failForRecipient(ctx, req, err)
				return
			}
			if w.Status != nil {
				w.Status.SetRadioConnected(true)
			}
			continue
		}

		batches := pocsag.AssembleBatches(mustRIC(ric), address[i], message)
		bits := pocsag.WordsToBits(pocsag.Transmission(batches))
		samples := pocsag.Modulate(bits, pocsag.ModulatorConfig{
			BaudRate:     float64(req.BaudRate),
			SampleRateHz: w.Config.SampleRateMHz * 1e6,
			DeviationHz:  w.Config.DeviationHz,
		})

		if err := w.Radio.Configure(ctx, RadioConfig{
			FrequencyMHz:  req.FrequencyMHz,
			SampleRateMHz: w.Config.SampleRateMHz,
			IFGainDB:      w.Config.IFGainDB,
			TXPowerDBM:    w.Config.TXPowerDBM,
		}); err != nil {
			w.fail(ctx, req, &ConfigurationError{Reason: err.Error()})
			return
		}
		if err := w.Radio.Transmit(ctx, samples); err != nil {
			w.failForRecipient(ctx, req, &TransmissionError{Reason: err.Error()})
			return
		}
		w.Recorder.Record(req.MessageID, samples)
	}

	duration := time.Since(start)
	w.transition(ctx, req.MessageID, Success, "")
	w.event(ctx, Event{Name: "transmission_complete", MessageID: req.MessageID, Timestamp: time.Now(), Stage: "complete", Duration: duration})
	if w.Status != nil {
		w.Status.RecordTransmission()
	}
	w.Logger.Info("transmission complete", "message_id", req.MessageID, "duration_s", duration.Seconds())
}

func (w *Worker) encodeMessage(req Request) ([]uint32, error) {
	switch req.MessageType {
	case Alphanumeric:
		return pocsag.EncodeAlphanumeric(req.MessageText), nil
	case Numeric:
		return pocsag.EncodeNumeric(req.MessageText), nil
	default:
		return nil, fmt.Errorf("unsupported message type %q", req.MessageType)
	}
}

// failForRecipient handles a TransmissionError mid-recipient-loop: marks
// the radio down, disconnects, pauses the queue, and emits status.
func (w *Worker) failForRecipient(ctx context.Context, req Request, err error) {
	if _, isTransmit := err.(*TransmissionError); isTransmit {
		if w.Status != nil {
			w.Status.SetRadioConnected(false)
		}
		_ = w.Radio.Disconnect(ctx)
		w.Queue.Pause()
		w.event(ctx, Event{Name: "status_update", Timestamp: time.Now(), Extra: map[string]any{"radio_connected": false}})
	}
	w.fail(ctx, req, err)
}

func (w *Worker) fail(ctx context.Context, req Request, err error) {
	w.Logger.Error("transmission failed", "message_id", req.MessageID, "error", err)
	w.transition(ctx, req.MessageID, Failed, err.Error())
	w.event(ctx, Event{Name: "transmission_failed", MessageID: req.MessageID, Timestamp: time.Now(), Error: err.Error()})
	if w.Status != nil {
		w.Status.IncrementErrorCount()
	}
}

func (w *Worker) transition(ctx context.Context, messageID string, state State, errMsg string) {
	stageByState := map[State]string{
		Encoding:     "encoding",
		Transmitting: "transmitting",
		Success:      "complete",
		Failed:       "error",
	}
	stage := stageByState[state]

	if w.Store == nil {
		return
	}
	sess, err := w.Store.Begin(ctx)
	if err != nil {
		w.Logger.Warn("store unavailable", "error", &ErrStoreUnavailable{Reason: err.Error()})
		return
	}
	var opErr error
	defer func() { _ = sess.Close(opErr) }()

	statusStr := string(state)
	if opErr = sess.UpdateMessageStatus(ctx, messageID, statusStr, errMsg); opErr != nil {
		return
	}
	opErr = sess.AppendLog(ctx, TransmissionLog{MessageID: messageID, Stage: stage, Timestamp: time.Now()})
}

func (w *Worker) event(ctx context.Context, e Event) {
	w.Events.Publish(ctx, e)
}

func mustRIC(s string) uint32 {
	n, _ := strconv.ParseUint(s, 10, 32)
	return uint32(n)
}
