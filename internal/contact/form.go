package contact

import "fmt"

// Form is the snapshot of the contact form posted to the backend.
type Form struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

// Validate reports a *ValidationError when email or message is empty.
// Values are not trimmed and the email format is not checked.
func (f Form) Validate() error {
	var missing []Field
	if f.Email == "" {
		missing = append(missing, FieldEmail)
	}
	if f.Message == "" {
		missing = append(missing, FieldMessage)
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Field identifies one of the three form inputs.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldMessage
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldMessage:
		return "message"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Status tracks where the current submission attempt stands.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSent
	StatusSentViaMailClient
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSent:
		return "sent"
	case StatusSentViaMailClient:
		return "sent-via-mail-client"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Message returns the fixed text shown to the visitor for the status.
// errText is the flow's error string; owner is the fallback address quoted
// when there is none.
func (s Status) Message(errText, owner string) string {
	switch s {
	case StatusSending:
		return "Sending..."
	case StatusSent:
		return "Message sent. I will respond shortly."
	case StatusSentViaMailClient:
		return "Opened your email client. Please send the email to complete contact."
	case StatusError:
		if errText == "" {
			errText = "Try again later or email: " + owner
		}
		return "There was an error. " + errText
	default:
		return ""
	}
}
