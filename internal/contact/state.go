package contact

import "sync"

// Snapshot is a copy of everything the form component renders.
type Snapshot struct {
	Form   Form
	Status Status
	Error  string
}

// State holds the form fields, the submission status and the error text.
// Field edits come from the UI, status changes from the Flow; both may run on
// different goroutines so access is serialized.
type State struct {
	mu       sync.Mutex
	form     Form
	status   Status
	errText  string
	observer func(Status)
}

// NewState returns a State in StatusIdle seeded with initial field values.
func NewState(initial Form) *State {
	return &State{form: initial}
}

// OnTransition registers fn to be called after every status change, in order.
// fn must not call back into the State.
func (s *State) OnTransition(fn func(Status)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

// SetField updates one field and leaves the others and the status alone.
func (s *State) SetField(f Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch f {
	case FieldName:
		s.form.Name = value
	case FieldEmail:
		s.form.Email = value
	case FieldMessage:
		s.form.Message = value
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Form: s.form, Status: s.status, Error: s.errText}
}

// Status returns the current status.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// begin moves to StatusSending and clears the error text. It fails with
// ErrInFlight if a submission is already sending.
func (s *State) begin() (Form, error) {
	s.mu.Lock()
	if s.status == StatusSending {
		s.mu.Unlock()
		return Form{}, ErrInFlight
	}
	s.status = StatusSending
	s.errText = ""
	form, obs := s.form, s.observer
	s.mu.Unlock()

	notify(obs, StatusSending)
	return form, nil
}

func (s *State) fail(errText string) {
	s.transition(StatusError, func() { s.errText = errText })
}

func (s *State) sent() {
	s.transition(StatusSent, func() { s.form.Message = "" })
}

func (s *State) handedOff() {
	s.transition(StatusSentViaMailClient, nil)
}

func (s *State) transition(to Status, mutate func()) {
	s.mu.Lock()
	if mutate != nil {
		mutate()
	}
	s.status = to
	obs := s.observer
	s.mu.Unlock()

	notify(obs, to)
}

func notify(obs func(Status), st Status) {
	if obs != nil {
		obs(st)
	}
}
