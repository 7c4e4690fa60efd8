package drivers

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/szeremeta1/pisag/transmit"
)

// Noop is a placeholder Radio for bench testing and for degraded-mode
// operation when no real front end is configured. Connect/IsConnected
// always succeed; Transmit is a logged no-op.
type Noop struct {
	logger *log.Logger
}

// NewNoop returns a Noop driver logging to stderr.
func NewNoop() *Noop {
	return &Noop{logger: log.New(os.Stderr)}
}

func (n *Noop) Connect(context.Context) (bool, error) {
	n.logger.Info("noop radio connect invoked")
	return true, nil
}

func (n *Noop) Disconnect(context.Context) error {
	n.logger.Info("noop radio disconnect invoked")
	return nil
}

func (n *Noop) IsConnected(context.Context) bool { return true }

func (n *Noop) Configure(_ context.Context, cfg transmit.RadioConfig) error {
	n.logger.Debug("noop radio configure", "frequency_mhz", cfg.FrequencyMHz, "sample_rate_mhz", cfg.SampleRateMHz, "gain_db", cfg.IFGainDB, "power_dbm", cfg.TXPowerDBM)
	return nil
}

func (n *Noop) Transmit(_ context.Context, samples []complex64) error {
	n.logger.Debug("noop radio transmit", "sample_count", len(samples))
	return nil
}
