package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio/backend/internal/model"
)

func validSubmission() model.ContactSubmission {
	return model.ContactSubmission{
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "Hello, I'd like to talk about a project.",
	}
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator(0)
	assert.Nil(t, v.Validate(validSubmission()))
	assert.Equal(t, DefaultMinMessageLength, v.MinMessageLength)
}

func TestValidator_Name(t *testing.T) {
	v := NewValidator(0)
	for _, name := range []string{"", "   "} {
		s := validSubmission()
		s.Name = name
		errs := v.Validate(s)
		require.Len(t, errs, 1)
		assert.Equal(t, FieldName, errs[0].Field)
	}
}

func TestValidator_Email(t *testing.T) {
	v := NewValidator(0)

	invalid := []string{"", "alice", "alice@", "alice@example", "@example.com", "a@b@c.com", "al ice@example.com", "alice@example."}
	for _, email := range invalid {
		s := validSubmission()
		s.Email = email
		errs := v.Validate(s)
		assert.True(t, errs.Has(FieldEmail), "expected %q to be rejected", email)
	}

	valid := []string{"a@b.co", "first.last+tag@sub.example.org", "x@y.z"}
	for _, email := range valid {
		s := validSubmission()
		s.Email = email
		assert.Nil(t, v.Validate(s), "expected %q to be accepted", email)
	}
}

func TestValidator_MessageLength(t *testing.T) {
	v := NewValidator(10)

	s := validSubmission()
	s.Message = "too short"
	errs := v.Validate(s)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldMessage, errs[0].Field)
	assert.Contains(t, errs[0].Message, "at least 10")

	s.Message = "just right"
	assert.Nil(t, v.Validate(s))

	// Length is counted in characters, not bytes.
	s.Message = strings.Repeat("é", 10)
	assert.Nil(t, v.Validate(s))

	s.Message = "   "
	errs = v.Validate(s)
	require.Len(t, errs, 1)
	assert.Equal(t, "Message is required", errs[0].Message)
}

func TestValidator_ConfiguredMinimum(t *testing.T) {
	v := NewValidator(5)
	s := validSubmission()
	s.Message = "Hello"
	assert.Nil(t, v.Validate(s))
}

func TestValidator_ReportsEveryField(t *testing.T) {
	errs := NewValidator(0).Validate(model.ContactSubmission{Email: "nope"})

	require.Len(t, errs, 3)
	fields := errs.Fields()
	assert.Contains(t, fields, FieldName)
	assert.Contains(t, fields, FieldEmail)
	assert.Contains(t, fields, FieldMessage)
	assert.Contains(t, errs.Error(), "email: Please enter a valid email address")
}

func TestNormalize(t *testing.T) {
	got := Normalize(model.ContactSubmission{Name: " Jane\t", Email: "\njane@example.com ", Message: "  hello there friend  "})
	assert.Equal(t, model.ContactSubmission{Name: "Jane", Email: "jane@example.com", Message: "hello there friend"}, got)
	assert.Nil(t, NewValidator(0).Validate(got))
}
