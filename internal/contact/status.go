package contact

// StatusKind tags the active SubmissionStatus variant
type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusSending StatusKind = "sending"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// ErrorReason classifies an Error status
type ErrorReason string

const (
	ReasonConfiguration ErrorReason = "configuration"
	ReasonRelay         ErrorReason = "relay"
	ReasonUnknown       ErrorReason = "unknown"
)

// User-facing messages
const (
	SuccessMessage       = "Thank you for your message! I'll get back to you soon."
	ConfigurationMessage = "EmailJS configuration is missing. Please check your environment variables."
	FallbackErrorMessage = "Failed to send message. Please try again later or contact me directly via email."
)

// Submit button labels
const (
	SubmitLabel  = "Send Message"
	SendingLabel = "Sending..."
)

// Status is the SubmissionStatus of a form. Message is set for Success and
// Error only; Reason is set for Error only.
type Status struct {
	Kind    StatusKind  `json:"type"`
	Message string      `json:"message,omitempty"`
	Reason  ErrorReason `json:"reason,omitempty"`
}

func idleStatus() Status {
	return Status{Kind: StatusIdle}
}

func successStatus() Status {
	return Status{Kind: StatusSuccess, Message: SuccessMessage}
}

func errorStatus(reason ErrorReason, message string) Status {
	return Status{Kind: StatusError, Message: message, Reason: reason}
}

// Banner is the dismissible status banner above the submit button
type Banner struct {
	Type    StatusKind `json:"type"`
	Message string     `json:"message"`
}

// View is what the form renders for a status
type View struct {
	SubmitLabel    string  `json:"submit_label"`
	SubmitDisabled bool    `json:"submit_disabled"`
	Banner         *Banner `json:"banner,omitempty"`
}

// View derives the submit button and banner state
func (s Status) View() View {
	v := View{SubmitLabel: SubmitLabel}
	switch s.Kind {
	case StatusSending:
		v.SubmitLabel = SendingLabel
		v.SubmitDisabled = true
	case StatusSuccess, StatusError:
		v.Banner = &Banner{Type: s.Kind, Message: s.Message}
	}
	return v
}

// Snapshot is a consistent read of a form instance
type Snapshot struct {
	Form   FormState `json:"form"`
	Status Status    `json:"status"`
	View   View      `json:"view"`
}
