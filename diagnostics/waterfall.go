// Package diagnostics wires the burst-diagnostics component (K) into the
// transmission worker: an optional spectrogram of each transmitted
// burst's IQ samples, for bench debugging. Never on the request
// lifecycle's critical path.
package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/szeremeta1/pisag"
	"github.com/szeremeta1/pisag/transmit"
)

// WaterfallRecorder renders each successfully transmitted burst to a PNG
// spectrogram under Dir, named by message ID. Errors are logged, never
// propagated: a failing recorder must never fail a transmission that has
// already succeeded.
type WaterfallRecorder struct {
	Dir    string
	Config pocsag.WaterfallConfig
	Logger *log.Logger
}

var _ transmit.BurstRecorder = (*WaterfallRecorder)(nil)

// NewWaterfallRecorder returns a recorder writing PNGs under dir, using
// pocsag.DefaultWaterfallConfig(sampleRateHz).
func NewWaterfallRecorder(dir string, sampleRateHz float64) *WaterfallRecorder {
	return &WaterfallRecorder{
		Dir:    dir,
		Config: pocsag.DefaultWaterfallConfig(sampleRateHz),
		Logger: log.New(os.Stderr),
	}
}

// Record renders samples to "<Dir>/<messageID>.png". A bare message ID is
// assumed; callers embedding path separators in message_id get whatever
// os.Create does with them.
func (w *WaterfallRecorder) Record(messageID string, samples []complex64) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		w.Logger.Warn("waterfall recorder: mkdir failed", "dir", w.Dir, "error", err)
		return
	}
	path := filepath.Join(w.Dir, fmt.Sprintf("%s.png", messageID))
	f, err := os.Create(path)
	if err != nil {
		w.Logger.Warn("waterfall recorder: create failed", "path", path, "error", err)
		return
	}
	defer f.Close()

	if err := pocsag.WriteWaterfallPNG(f, samples, w.Config); err != nil {
		w.Logger.Warn("waterfall recorder: render failed", "message_id", messageID, "error", err)
	}
}
