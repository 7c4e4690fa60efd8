package transmit

import (
	"fmt"
	"regexp"
)

// MessageType selects the POCSAG message encoding.
type MessageType string

const (
	Alphanumeric MessageType = "alphanumeric"
	Numeric      MessageType = "numeric"
)

// BaudRate is one of the three POCSAG-standard transmission speeds.
type BaudRate int

const (
	Baud512  BaudRate = 512
	Baud1200 BaudRate = 1200
	Baud2400 BaudRate = 2400
)

var ricPattern = regexp.MustCompile(`^\d{1,7}$`)

const maxRIC = 1<<21 - 1

// Request is a validated, immutable transmission request. Construct one
// with NewRequest; a zero-value Request has not been validated.
type Request struct {
	MessageID    string
	Recipients   []string
	MessageText  string
	MessageType  MessageType
	FrequencyMHz float64
	BaudRate     BaudRate
}

// NewRequest validates the given fields and returns an immutable Request,
// or a *ValidationError describing the first problem found.
func NewRequest(messageID string, recipients []string, text string, msgType MessageType, freqMHz float64, baud BaudRate) (Request, error) {
	req := Request{
		MessageID:    messageID,
		Recipients:   append([]string(nil), recipients...),
		MessageText:  text,
		MessageType:  msgType,
		FrequencyMHz: freqMHz,
		BaudRate:     baud,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate reports the first validation failure found, or nil.
func (r Request) Validate() error {
	if len(r.Recipients) == 0 {
		return &ValidationError{Reason: "recipient list must not be empty"}
	}
	for _, ric := range r.Recipients {
		if !ricPattern.MatchString(ric) {
			return &ValidationError{Reason: fmt.Sprintf("RIC %q must be 1-7 digits", ric)}
		}
	}
	for _, ric := range r.Recipients {
		var n int
		fmt.Sscanf(ric, "%d", &n)
		if n > maxRIC {
			return &ValidationError{Reason: fmt.Sprintf("RIC %q exceeds %d", ric, maxRIC)}
		}
	}

	switch r.MessageType {
	case Alphanumeric, Numeric:
	default:
		return &ValidationError{Reason: fmt.Sprintf("unknown message_type %q", r.MessageType)}
	}

	switch r.BaudRate {
	case Baud512, Baud1200, Baud2400:
	default:
		return &ValidationError{Reason: fmt.Sprintf("baud_rate %d not in {512, 1200, 2400}", r.BaudRate)}
	}

	if err := r.validateCharset(); err != nil {
		return err
	}

	return nil
}

// Warnings reports non-fatal advisories about the request — currently
// just the over-length alphanumeric message some pagers truncate.
func (r Request) Warnings() []string {
	var warnings []string
	if r.MessageType == Alphanumeric && len(r.MessageText) > 80 {
		warnings = append(warnings, fmt.Sprintf("alphanumeric message is %d characters; some pagers truncate beyond 80", len(r.MessageText)))
	}
	return warnings
}

func (r Request) validateCharset() error {
	if r.MessageType == Alphanumeric {
		for _, ch := range r.MessageText {
			if ch < 0x20 || ch > 0x7E {
				return &ValidationError{Reason: "alphanumeric messages must use printable ASCII (0x20-0x7E)"}
			}
		}
		return nil
	}

	const allowed = "0123456789U-[] "
	for _, ch := range r.MessageText {
		if !containsRune(allowed, ch) {
			return &ValidationError{Reason: "numeric messages may contain digits, space, U, -, [, ]"}
		}
	}
	return nil
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
