package transmit

import "fmt"

// Error taxonomy for the transmission pipeline. Each kind is a distinct
// type so callers can dispatch on it with errors.As.

// ValidationError reports a malformed Request, caught at enqueue time.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return fmt.Sprintf("validation error: %s", e.Reason) }

// EncodingError reports a failure building codewords or IQ samples from
// an already-validated Request.
type EncodingError struct{ Reason string }

func (e *EncodingError) Error() string { return fmt.Sprintf("encoding error: %s", e.Reason) }

// ConfigurationError reports the radio driver refusing configure().
type ConfigurationError struct{ Reason string }

func (e *ConfigurationError) Error() string { return fmt.Sprintf("configuration error: %s", e.Reason) }

// TransmissionError reports an RF write failure. The worker treats this
// as the radio going down: disconnect, pause, let the monitor recover.
type TransmissionError struct{ Reason string }

func (e *TransmissionError) Error() string { return fmt.Sprintf("transmission error: %s", e.Reason) }

// ErrStoreUnavailable reports the external persistence layer being down.
// The worker logs and continues; in-memory state still advances.
type ErrStoreUnavailable struct{ Reason string }

func (e *ErrStoreUnavailable) Error() string { return fmt.Sprintf("store unavailable: %s", e.Reason) }
