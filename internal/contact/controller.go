package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/relay"
)

// DefaultResetAfter is how long a Success status stays visible
const DefaultResetAfter = 5 * time.Second

// Options configure a Controller
type Options struct {
	Credentials   relay.Credentials
	RecipientName string
	ResetAfter    time.Duration
	Clock         Clock
	Logger        *logging.Logger
}

// Controller drives one contact form instance
type Controller struct {
	sender      relay.Sender
	credentials relay.Credentials
	recipient   string
	resetAfter  time.Duration
	clock       Clock
	logger      *logging.Logger

	mu        sync.Mutex
	form      FormState
	status    Status
	reset     Timer
	resetGen  uint64
	closed    bool
	observers map[int]func(Status)
	nextObsID int
}

// NewController creates an Idle controller with an empty form
func NewController(sender relay.Sender, opts Options) *Controller {
	if opts.ResetAfter <= 0 {
		opts.ResetAfter = DefaultResetAfter
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobalLogger()
	}

	return &Controller{
		sender:      sender,
		credentials: opts.Credentials,
		recipient:   opts.RecipientName,
		resetAfter:  opts.ResetAfter,
		clock:       opts.Clock,
		logger:      opts.Logger,
		status:      idleStatus(),
		observers:   make(map[int]func(Status)),
	}
}

// UpdateField assigns value to one field. It never validates.
func (c *Controller) UpdateField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	return c.form.set(field, value)
}

// SetForm replaces all three fields at once
func (c *Controller) SetForm(form FormState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.form = form
	return nil
}

// Form returns the current field values
func (c *Controller) Form() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Status returns the current SubmissionStatus
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Snapshot returns form, status and view from a single read
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Form: c.form, Status: c.status, View: c.status.View()}
}

// Subscribe registers fn for every status transition and returns a function
// that removes it. fn runs outside the controller lock.
func (c *Controller) Subscribe(fn func(Status)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Submit sends the current form to the relay and returns the resulting
// status, Success or Error. A form that fails validation returns a
// *ValidationError and leaves the status alone, as does a submit while
// another one is Sending (ErrSubmissionInProgress).
//
// The relay call is detached from ctx cancellation: once sent, a submission
// runs to completion even if the caller goes away.
func (c *Controller) Submit(ctx context.Context) (Status, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Status{}, ErrClosed
	}
	if c.status.Kind == StatusSending {
		status := c.status
		c.mu.Unlock()
		return status, ErrSubmissionInProgress
	}
	if err := c.form.Validate(); err != nil {
		status := c.status
		c.mu.Unlock()
		return status, err
	}

	form := c.form
	c.cancelResetLocked()
	notify := c.transitionLocked(Status{Kind: StatusSending})
	c.mu.Unlock()
	notify()

	status := c.deliver(context.WithoutCancel(ctx), form)

	c.mu.Lock()
	if c.closed {
		// torn down mid-flight: the result has nowhere to go
		c.mu.Unlock()
		return status, nil
	}
	if status.Kind == StatusSuccess {
		c.form = FormState{}
		c.scheduleResetLocked()
	}
	notify = c.transitionLocked(status)
	c.mu.Unlock()
	notify()

	return status, nil
}

// Close tears the form down. The pending reset is cancelled and any later
// state change, including a submission still in flight, is dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancelResetLocked()
	c.observers = make(map[int]func(Status))
}

// Closed reports whether Close has been called
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) deliver(ctx context.Context, form FormState) Status {
	if !c.credentials.Complete() {
		c.logger.Error("EmailJS Error: %v", ErrConfigurationMissing)
		return errorStatus(ReasonConfiguration, ConfigurationMessage)
	}

	resp, err := c.sender.Send(ctx, relay.Payload{
		Credentials: c.credentials,
		Variables: relay.TemplateParams{
			FromName:  form.Name,
			FromEmail: form.Email,
			Message:   form.Message,
			ToName:    c.recipient,
		},
	})
	if err == nil && resp.OK() {
		c.logger.Info("Contact message from %s delivered", form.Email)
		return successStatus()
	}
	if err == nil {
		status := 0
		text := ""
		if resp != nil {
			status, text = resp.Status, resp.Text
		}
		err = &relay.Error{Status: status, Message: text}
	}

	c.logger.Error("EmailJS Error: %v", err)
	return statusForError(err)
}

// statusForError maps a send failure onto the error taxonomy. The error's
// own message is shown when it has one, the fallback text otherwise.
func statusForError(err error) Status {
	if errors.Is(err, ErrConfigurationMissing) {
		return errorStatus(ReasonConfiguration, ConfigurationMessage)
	}
	var relayErr *relay.Error
	if errors.As(err, &relayErr) {
		if relayErr.Message != "" {
			return errorStatus(ReasonRelay, relayErr.Message)
		}
		return errorStatus(ReasonRelay, FallbackErrorMessage)
	}
	if msg := err.Error(); msg != "" {
		return errorStatus(ReasonUnknown, msg)
	}
	return errorStatus(ReasonUnknown, FallbackErrorMessage)
}

// scheduleResetLocked arms the Success→Idle timer. The generation check
// makes a timer that already fired before Stop a no-op.
func (c *Controller) scheduleResetLocked() {
	c.resetGen++
	gen := c.resetGen
	c.reset = c.clock.AfterFunc(c.resetAfter, func() {
		c.mu.Lock()
		if c.closed || gen != c.resetGen || c.status.Kind != StatusSuccess {
			c.mu.Unlock()
			return
		}
		c.reset = nil
		notify := c.transitionLocked(idleStatus())
		c.mu.Unlock()
		notify()
	})
}

func (c *Controller) cancelResetLocked() {
	c.resetGen++
	if c.reset != nil {
		c.reset.Stop()
		c.reset = nil
	}
}

// transitionLocked sets the status and returns a func that notifies
// observers; call it after releasing the lock.
func (c *Controller) transitionLocked(status Status) func() {
	c.status = status
	if len(c.observers) == 0 {
		return func() {}
	}
	fns := make([]func(Status), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(status)
		}
	}
}
