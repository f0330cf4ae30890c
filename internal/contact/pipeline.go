// Package contact validates contact-form submissions and delivers them to a
// configured endpoint with a single attempt per submit.
//
// A Pipeline is shared and stateless; each form session gets its own Form,
// which owns the field values, validation errors and in-flight flag.
package contact

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/portfolio/backend/internal/model"
)

// ErrDeliveryFailed matches every DeliveryError via errors.Is.
var ErrDeliveryFailed = errors.New("contact: delivery failed")

// ErrSubmissionInProgress is reported when Submit is called while a previous
// submit on the same Form has not finished.
var ErrSubmissionInProgress = errors.New("contact: submission already in progress")

// DeliveryError wraps the cause of a failed delivery attempt.
type DeliveryError struct {
	Cause error
}

func (e *DeliveryError) Error() string {
	return "contact: delivery failed: " + e.Cause.Error()
}

func (e *DeliveryError) Unwrap() error { return e.Cause }

func (e *DeliveryError) Is(target error) bool { return target == ErrDeliveryFailed }

// State is the position of a Form in its submit cycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateSubmitting
	StateDelivered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateSubmitting:
		return "submitting"
	case StateDelivered:
		return "delivered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the terminal state reached by one Submit call.
type Outcome int

const (
	// OutcomeRejected means the call was refused because another submit was in flight.
	OutcomeRejected Outcome = iota
	OutcomeInvalid
	OutcomeDelivered
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeDelivered:
		return "delivered"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NotificationKind distinguishes success from failure toasts.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient, dismissible message shown apart from the form.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}

var (
	deliveredNotification = Notification{
		Kind:        NotificationSuccess,
		Title:       "Message sent successfully!",
		Description: "I'll get back to you within 24 hours.",
	}
	failedNotification = Notification{
		Kind:        NotificationError,
		Title:       "Failed to send message",
		Description: "Please try again later.",
	}
)

// Notifier receives the outcome notification of a submit.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Result describes what one Submit call did.
type Result struct {
	Outcome Outcome
	// Errors is set when Outcome is OutcomeInvalid.
	Errors ValidationErrors
	// Notification is the notification emitted, if any.
	Notification *Notification
	// Err carries the internal cause for OutcomeFailed and OutcomeRejected.
	// It is for logging; end users only see Notification.
	Err error
}

// Config tunes a Pipeline.
type Config struct {
	MinMessageLength int
	Timeout          time.Duration
}

// Pipeline validates and delivers submissions.
type Pipeline struct {
	validator Validator
	sender    Sender
	timeout   time.Duration
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline that delivers through sender.
func NewPipeline(sender Sender, cfg Config) *Pipeline {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{
		validator: NewValidator(cfg.MinMessageLength),
		sender:    sender,
		timeout:   timeout,
		logger:    slog.Default().With("component", "contact"),
	}
}

// Validator returns the validator used by the pipeline.
func (p *Pipeline) Validator() Validator { return p.validator }

// NewForm starts a form session. notifier may be nil.
func (p *Pipeline) NewForm(notifier Notifier) *Form {
	return &Form{pipeline: p, notifier: notifier}
}

// Form is one form session. Its methods are safe for concurrent use, but only
// one Submit runs at a time.
type Form struct {
	pipeline *Pipeline
	notifier Notifier

	mu     sync.Mutex
	values model.ContactSubmission
	errors ValidationErrors
	state  State
	last   State
}

// SetValues replaces the field values.
func (f *Form) SetValues(s model.ContactSubmission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = s
}

// SetField updates one field by name. Unknown names are ignored.
func (f *Form) SetField(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldMessage:
		f.values.Message = value
	}
}

// Values returns the current field values.
func (f *Form) Values() model.ContactSubmission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the field errors from the last validation.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Fields()
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastState returns the terminal state reached by the most recent Submit:
// StateInvalid, StateDelivered or StateFailed. It is StateIdle before the first submit.
func (f *Form) LastState() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// IsSubmitting reports whether a delivery attempt is in flight. Callers use it
// to disable the submit trigger.
func (f *Form) IsSubmitting() bool {
	return f.State() == StateSubmitting
}

// Submit validates the current values and, when valid, makes one delivery
// attempt with the trimmed values. On success the values are cleared; on failure they are kept so the
// user can retry. The form is back in StateIdle when Submit returns, unless the
// call was rejected because another submit is still running.
func (f *Form) Submit(ctx context.Context) Result {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return Result{Outcome: OutcomeRejected, Err: ErrSubmissionInProgress}
	}
	f.state = StateValidating
	values := f.values
	errs := f.pipeline.validator.Validate(values)
	f.errors = errs
	if len(errs) > 0 {
		f.last = StateInvalid
		f.state = StateIdle
		f.mu.Unlock()
		return Result{Outcome: OutcomeInvalid, Errors: errs}
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	err := f.pipeline.deliver(ctx, Normalize(values))

	f.mu.Lock()
	var res Result
	if err != nil {
		f.last = StateFailed
		n := failedNotification
		res = Result{Outcome: OutcomeFailed, Notification: &n, Err: err}
	} else {
		f.last = StateDelivered
		f.values = model.ContactSubmission{}
		n := deliveredNotification
		res = Result{Outcome: OutcomeDelivered, Notification: &n}
	}
	f.state = StateIdle
	f.mu.Unlock()

	if f.notifier != nil {
		f.notifier.Notify(*res.Notification)
	}
	return res
}

func (p *Pipeline) deliver(ctx context.Context, s model.ContactSubmission) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	err := p.sender.Send(ctx, s)
	if err != nil {
		p.logger.WarnContext(ctx, "contact delivery failed",
			"error", err,
			"cause", failureCause(err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return &DeliveryError{Cause: err}
	}
	p.logger.InfoContext(ctx, "contact delivered", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// failureCause classifies a delivery error for operators.
func failureCause(err error) string {
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrEndpointNotConfigured):
		return "not_configured"
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
