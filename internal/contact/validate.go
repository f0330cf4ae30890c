package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/portfolio/backend/internal/model"
)

// DefaultMinMessageLength is the minimum message length, in characters,
// applied when no other value is configured.
const DefaultMinMessageLength = 10

// Field names reported in ValidationError.Field.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// emailPattern is a shape check (one @, a dot in the domain), not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError reports one invalid form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors holds every field that failed validation, in form order.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "invalid contact submission: " + strings.Join(parts, "; ")
}

// Fields maps each failing field to its message.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}

// Has reports whether field failed validation.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Validator checks a submission before anything is sent.
type Validator struct {
	MinMessageLength int
}

// NewValidator returns a Validator; minMessageLength <= 0 selects DefaultMinMessageLength.
func NewValidator(minMessageLength int) Validator {
	if minMessageLength <= 0 {
		minMessageLength = DefaultMinMessageLength
	}
	return Validator{MinMessageLength: minMessageLength}
}

// Normalize returns s with surrounding whitespace trimmed from every field.
// It is the form of a submission that Validate checks and the pipeline sends.
func Normalize(s model.ContactSubmission) model.ContactSubmission {
	return model.ContactSubmission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate returns nil when s is valid. Fields are checked independently, so
// several may fail at once. Whitespace-only values count as empty.
func (v Validator) Validate(s model.ContactSubmission) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, &ValidationError{Field: FieldName, Message: "Name is required"})
	}

	email := strings.TrimSpace(s.Email)
	switch {
	case email == "":
		errs = append(errs, &ValidationError{Field: FieldEmail, Message: "Email is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, &ValidationError{Field: FieldEmail, Message: "Please enter a valid email address"})
	}

	msg := strings.TrimSpace(s.Message)
	switch {
	case msg == "":
		errs = append(errs, &ValidationError{Field: FieldMessage, Message: "Message is required"})
	case utf8.RuneCountInString(msg) < v.min():
		errs = append(errs, &ValidationError{
			Field:   FieldMessage,
			Message: fmt.Sprintf("Message must be at least %d characters", v.min()),
		})
	}

	return errs
}

func (v Validator) min() int {
	if v.MinMessageLength <= 0 {
		return DefaultMinMessageLength
	}
	return v.MinMessageLength
}
