package drivers

import (
	"fmt"

	"github.com/szeremeta1/pisag/transmit"
)

// Kind selects a driver variant from the registry. A closed set,
// populated at process start: no dotted-path dynamic loading.
type Kind string

const (
	KindNoop       Kind = "noop"
	KindSubprocess Kind = "subprocess"
)

// Config is the configuration-key-selected driver choice plus the
// parameters its variant needs.
type Config struct {
	Kind       Kind
	Subprocess SubprocessConfig
}

// Build resolves cfg.Kind to a concrete Radio implementation.
func Build(cfg Config) (transmit.Radio, error) {
	switch cfg.Kind {
	case KindNoop, "":
		return NewNoop(), nil
	case KindSubprocess:
		return NewSubprocess(cfg.Subprocess), nil
	default:
		return nil, fmt.Errorf("unknown driver kind %q", cfg.Kind)
	}
}
