package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInFlight is returned when a submit arrives while another is sending.
var ErrInFlight = errors.New("contact: submission already in flight")

// User-facing error texts. Diagnostic detail never ends up in these.
const (
	MsgMissingFields = "Please provide your email and a message."
	MsgRejected      = "Server rejected the message. Falling back to opening your email client."
	MsgUnreachable   = "Could not reach contact API. Opening your email client as a fallback."
	MsgUndelivered   = "Your message could not be delivered. Use the link below to send it from your email client."
)

// ValidationError means a required field was empty. No request was made.
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = f.String()
	}
	return "contact: missing required field(s): " + strings.Join(names, ", ")
}

// RejectionError means the backend answered with a non-2xx status.
type RejectionError struct {
	StatusCode int
	Body       string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("contact: api rejected submission with status %d", e.StatusCode)
}

// TransportError means the request could not be built or completed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "contact: api unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsFallback reports whether err is one of the outcomes that degrades to the
// mail client.
func IsFallback(err error) bool {
	var rej *RejectionError
	var tr *TransportError
	return errors.As(err, &rej) || errors.As(err, &tr)
}
