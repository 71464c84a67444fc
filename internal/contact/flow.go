package contact

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

// MailFallback opens a pre-filled draft to Owner through Opener.
type MailFallback struct {
	Owner  string
	Opener MailOpener
}

// Open builds the draft for f and hands it off.
func (m MailFallback) Open(f Form) {
	m.Opener.Open(BuildMailto(m.Owner, f))
}

// Flow runs submissions of a State against a Client, degrading to a
// MailFallback when the backend rejects or cannot be reached.
type Flow struct {
	state    *State
	client   Client
	fallback MailFallback
	log      logrus.FieldLogger
}

// NewFlow wires a flow. A nil log discards diagnostics.
func NewFlow(state *State, client Client, fallback MailFallback, log logrus.FieldLogger) *Flow {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Flow{
		state:    state,
		client:   client,
		fallback: fallback,
		log:      log.WithField("component", "contact"),
	}
}

// State returns the state the flow drives.
func (f *Flow) State() *State { return f.state }

// Submit runs one full attempt: Start then Send.
//
// The returned error is informational. nil means the backend accepted the
// message; a *ValidationError means nothing was sent; a *RejectionError or
// *TransportError means the mail client fallback ran. ErrInFlight means the
// call was ignored.
func (f *Flow) Submit(ctx context.Context) error {
	form, err := f.Start()
	if err != nil {
		return err
	}
	return f.Send(ctx, form)
}

// Start moves the state to StatusSending and validates the current form.
// It returns the snapshot to pass to Send. On a validation failure the state
// ends in StatusError and no request must be made.
func (f *Flow) Start() (Form, error) {
	form, err := f.state.begin()
	if err != nil {
		return Form{}, err
	}

	if err := form.Validate(); err != nil {
		f.state.fail(MsgMissingFields)
		return Form{}, err
	}
	return form, nil
}

// Send performs the single network attempt for a form returned by Start.
func (f *Flow) Send(ctx context.Context, form Form) error {
	err := f.client.Send(ctx, form)
	if err == nil {
		f.state.sent()
		f.log.Info("contact message sent")
		return nil
	}

	var rej *RejectionError
	if errors.As(err, &rej) {
		f.log.WithFields(logrus.Fields{
			"status_code": rej.StatusCode,
			"body":        rej.Body,
		}).Warn("contact api returned non-OK")
		f.state.fail(MsgRejected)
	} else {
		var tr *TransportError
		if !errors.As(err, &tr) {
			err = &TransportError{Err: err}
		}
		f.log.WithError(err).Error("contact api error")
		f.state.fail(MsgUnreachable)
	}

	f.fallback.Open(form)
	f.state.handedOff()
	return err
}
