package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/szeremeta1/pisag"
	"github.com/szeremeta1/pisag/diagnostics"
	"github.com/szeremeta1/pisag/drivers"
	"github.com/szeremeta1/pisag/transmit"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "Path to YAML config file.")
	ric := pflag.StringP("ric", "r", "", "Recipient RIC (1-7 digits).")
	text := pflag.StringP("text", "t", "", "Message text to send.")
	numeric := pflag.Bool("numeric", false, "Encode as numeric instead of alphanumeric.")
	waterfallDir := pflag.String("waterfall-dir", "", "Write a spectrogram PNG of each transmitted burst to this directory (bench diagnostics only).")
	showVersion := pflag.Bool("version", false, "Print version and exit.")
	help := pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pocsagtx - enqueue one POCSAG transmission request\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s --ric RIC --text MESSAGE [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}
	if *showVersion {
		fmt.Println(pocsag.FullVersionInfo())
		return
	}
	if *ric == "" || *text == "" {
		fmt.Fprintln(os.Stderr, "both --ric and --text are required")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	radio, err := drivers.Build(drivers.Config{
		Kind: drivers.Kind(cfg.Driver.Kind),
		Subprocess: drivers.SubprocessConfig{
			ScriptPath: cfg.Driver.Subprocess.ScriptPath,
			Python:     cfg.Driver.Subprocess.Python,
			DryRun:     cfg.Driver.Subprocess.DryRun,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "building driver: %v\n", err)
		os.Exit(1)
	}

	status := transmit.NewStatus()
	queue := transmit.NewQueue()
	done := make(chan struct{}, 1)
	sink := &completionSink{done: done}
	worker := transmit.NewWorker(queue, radio, nil, sink, status, transmit.WorkerConfig{
		SampleRateMHz: cfg.System.SampleRateMHz,
		IFGainDB:      cfg.System.IFGainDB,
		TXPowerDBM:    cfg.System.TXPowerDBM,
		DeviationHz:   cfg.System.DeviationHz,
	})
	if *waterfallDir != "" {
		worker.Recorder = diagnostics.NewWaterfallRecorder(*waterfallDir, cfg.System.SampleRateMHz*1e6)
	}
	monitor := transmit.NewMonitor(radio, queue, transmit.NoopEventSink{}, status, transmit.MonitorConfig{
		Interval: time.Duration(cfg.System.MonitorSec * float64(time.Second)),
		Radio: transmit.RadioConfig{
			FrequencyMHz:  cfg.System.FrequencyMHz,
			SampleRateMHz: cfg.System.SampleRateMHz,
			IFGainDB:      cfg.System.IFGainDB,
			TXPowerDBM:    cfg.System.TXPowerDBM,
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go worker.Run(ctx)
	go monitor.Run(ctx)

	msgType := transmit.Alphanumeric
	if *numeric {
		msgType = transmit.Numeric
	}
	req, err := transmit.NewRequest(fmt.Sprintf("cli-%d", time.Now().UnixNano()), []string{*ric}, *text, msgType, cfg.System.FrequencyMHz, transmit.BaudRate(cfg.Pocsag.BaudRate))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid request: %v\n", err)
		os.Exit(1)
	}
	for _, w := range req.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	queue.Enqueue(req)

	select {
	case <-done:
	case <-ctx.Done():
	}
	queue.Close()
}

// completionSink signals done once a transmission finishes, successfully
// or not, so the CLI can exit without waiting for a signal.
type completionSink struct {
	done chan struct{}
}

func (c *completionSink) Publish(_ context.Context, e transmit.Event) {
	if e.Name == "transmission_complete" || e.Name == "transmission_failed" {
		select {
		case c.done <- struct{}{}:
		default:
		}
	}
}
