package drivers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/szeremeta1/pisag/transmit"
)

// SubprocessConfig configures the Subprocess driver's external encoder
// invocation.
type SubprocessConfig struct {
	ScriptPath string
	Python     string
	SubRIC     int
	AFGainDB   float64
	SymbolRate int
	SampleRate int
	// DryRun short-circuits transmission and reports Success without
	// invoking the subprocess. Bench-testing only; set explicitly here,
	// never via an environment variable side channel.
	DryRun bool
}

// Subprocess implements TransmittingRadio by shelling out to an external
// encoder process, delegating the entire RF path externally. Connect and
// Configure are no-ops: the subprocess owns its own radio connection.
type Subprocess struct {
	Config SubprocessConfig
	logger *log.Logger
	runner func(ctx context.Context, name string, args ...string) error
}

// NewSubprocess returns a Subprocess driver using cfg.
func NewSubprocess(cfg SubprocessConfig) *Subprocess {
	s := &Subprocess{Config: cfg, logger: log.New(os.Stderr)}
	s.runner = s.run
	return s
}

func (s *Subprocess) Connect(context.Context) (bool, error)    { return true, nil }
func (s *Subprocess) Disconnect(context.Context) error          { return nil }
func (s *Subprocess) IsConnected(context.Context) bool          { return true }
func (s *Subprocess) Configure(context.Context, transmit.RadioConfig) error { return nil }

// Transmit is unused: Subprocess only implements TransmittingRadio's
// combined path. A direct call is a configuration error.
func (s *Subprocess) Transmit(context.Context, []complex64) error {
	return &transmit.ConfigurationError{Reason: "subprocess driver requires EncodeAndTransmit, not Transmit"}
}

// EncodeAndTransmit shells out to the external encoder, passing the
// burst's parameters as flags, matching the original gr-pocsag command
// line. When DryRun is set, it logs and returns without running anything.
func (s *Subprocess) EncodeAndTransmit(ctx context.Context, req transmit.BurstRequest) error {
	args := []string{
		s.Config.ScriptPath,
		"--RIC", req.RIC,
		"--SubRIC", strconv.Itoa(s.Config.SubRIC),
		"--Text", req.Text,
		"--Frequency", strconv.FormatFloat(req.FreqMHz, 'f', -1, 64),
		"--Bitrate", strconv.Itoa(req.BaudRate),
		"--TXGain", strconv.FormatFloat(req.GainDB, 'f', -1, 64),
	}

	s.logger.Info("invoking external encoder", "ric", req.RIC, "dry_run", s.Config.DryRun, "frequency_mhz", req.FreqMHz, "baud_rate", req.BaudRate)

	if s.Config.DryRun {
		s.logger.Info("dry run enabled; skipping subprocess execution")
		return nil
	}

	python := s.Config.Python
	if python == "" {
		python = "python3"
	}
	if err := s.runner(ctx, python, args...); err != nil {
		return &transmit.TransmissionError{Reason: fmt.Sprintf("external encoder failed: %v", err)}
	}
	return nil
}

func (s *Subprocess) run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("PISAG_SAMPLE_RATE=%d", s.Config.SampleRate),
		fmt.Sprintf("PISAG_AF_GAIN=%g", s.Config.AFGainDB),
		fmt.Sprintf("PISAG_SYMRATE=%d", s.Config.SymbolRate),
	)
	return cmd.Run()
}
