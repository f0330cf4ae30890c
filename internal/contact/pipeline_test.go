package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio/backend/internal/model"
)

// recordingNotifier collects notifications.
type recordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recordingNotifier) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// countingSender counts Send calls and returns err.
type countingSender struct {
	calls atomic.Int32
	err   error
}

func (s *countingSender) Send(ctx context.Context, _ model.ContactSubmission) error {
	s.calls.Add(1)
	return s.err
}

func TestSubmit_ShortMessageMakesNoNetworkCall(t *testing.T) {
	sender := &countingSender{}
	notes := &recordingNotifier{}
	form := NewPipeline(sender, Config{MinMessageLength: 10}).NewForm(notes)

	s := validSubmission()
	s.Message = "hi there"
	form.SetValues(s)

	res := form.Submit(context.Background())

	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.True(t, res.Errors.Has(FieldMessage))
	assert.Equal(t, int32(0), sender.calls.Load())
	assert.Empty(t, notes.all())
	assert.Contains(t, form.Errors(), FieldMessage)
	assert.Equal(t, s, form.Values())
	assert.Equal(t, StateIdle, form.State())
	assert.Equal(t, StateInvalid, form.LastState())
}

func TestSubmit_DeliveredClearsFields(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notes := &recordingNotifier{}
	form := NewPipeline(NewHTTPSender(server.URL, time.Second), Config{}).NewForm(notes)
	form.SetValues(validSubmission())

	res := form.Submit(context.Background())

	require.Equal(t, OutcomeDelivered, res.Outcome)
	assert.NoError(t, res.Err)
	assert.Equal(t, int32(1), hits.Load())
	require.Len(t, notes.all(), 1)
	assert.Equal(t, NotificationSuccess, notes.all()[0].Kind)
	assert.Equal(t, model.ContactSubmission{}, form.Values())
	assert.Empty(t, form.Errors())
	assert.Equal(t, StateDelivered, form.LastState())
	assert.False(t, form.IsSubmitting())
}

func TestSubmit_SendsTrimmedValues(t *testing.T) {
	var sent []model.ContactSubmission
	sender := SenderFunc(func(ctx context.Context, s model.ContactSubmission) error {
		sent = append(sent, s)
		return errors.New("connection refused")
	})
	form := NewPipeline(sender, Config{}).NewForm(nil)

	raw := model.ContactSubmission{
		Name:    "  Jane  ",
		Email:   " jane@example.com ",
		Message: "   hello there friend  \n\n",
	}
	form.SetValues(raw)

	res := form.Submit(context.Background())

	require.Equal(t, OutcomeFailed, res.Outcome)
	require.Len(t, sent, 1)
	assert.Equal(t, model.ContactSubmission{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: "hello there friend",
	}, sent[0])
	assert.Equal(t, raw, form.Values(), "the form keeps what the user typed")
}

func TestSubmit_UnreachableEndpointKeepsFields(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	notes := &recordingNotifier{}
	form := NewPipeline(NewHTTPSender(url, time.Second), Config{}).NewForm(notes)
	form.SetValues(validSubmission())

	res := form.Submit(context.Background())

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrDeliveryFailed)
	require.Len(t, notes.all(), 1)
	assert.Equal(t, NotificationError, notes.all()[0].Kind)
	assert.Equal(t, "Failed to send message", notes.all()[0].Title)
	assert.Equal(t, validSubmission(), form.Values())
	assert.Equal(t, StateFailed, form.LastState())
	assert.Equal(t, StateIdle, form.State())
}

func TestSubmit_FailureCauses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	tests := []struct {
		name   string
		sender Sender
		check  func(t *testing.T, err error)
	}{
		{
			name:   "error status",
			sender: NewHTTPSender(server.URL, time.Second),
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
				assert.Equal(t, "http_status", failureCause(err))
			},
		},
		{
			name:   "missing endpoint",
			sender: NewHTTPSender("", 0),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEndpointNotConfigured)
				assert.Equal(t, "not_configured", failureCause(err))
			},
		},
		{
			name:   "transport",
			sender: SenderFunc(func(context.Context, model.ContactSubmission) error { return errors.New("dial tcp: refused") }),
			check: func(t *testing.T, err error) {
				assert.Equal(t, "transport", failureCause(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &recordingNotifier{}
			form := NewPipeline(tt.sender, Config{}).NewForm(notes)
			form.SetValues(validSubmission())

			res := form.Submit(context.Background())

			require.Equal(t, OutcomeFailed, res.Outcome)
			assert.ErrorIs(t, res.Err, ErrDeliveryFailed)
			tt.check(t, res.Err)
			assert.Len(t, notes.all(), 1)
			assert.Equal(t, validSubmission(), form.Values())
		})
	}
}

func TestSubmit_TimeoutIsFailure(t *testing.T) {
	sender := SenderFunc(func(ctx context.Context, _ model.ContactSubmission) error {
		<-ctx.Done()
		return ctx.Err()
	})
	form := NewPipeline(sender, Config{Timeout: 20 * time.Millisecond}).NewForm(nil)
	form.SetValues(validSubmission())

	res := form.Submit(context.Background())

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.Equal(t, "timeout", failureCause(res.Err))
}

func TestSubmit_RejectsConcurrentSubmit(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	sender := SenderFunc(func(ctx context.Context, _ model.ContactSubmission) error {
		calls.Add(1)
		<-release
		return nil
	})

	form := NewPipeline(sender, Config{}).NewForm(nil)
	form.SetValues(validSubmission())

	done := make(chan Result, 1)
	go func() { done <- form.Submit(context.Background()) }()

	require.Eventually(t, form.IsSubmitting, time.Second, time.Millisecond)

	second := form.Submit(context.Background())
	assert.Equal(t, OutcomeRejected, second.Outcome)
	assert.ErrorIs(t, second.Err, ErrSubmissionInProgress)

	close(release)
	first := <-done
	assert.Equal(t, OutcomeDelivered, first.Outcome)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, form.IsSubmitting())
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	sender := &countingSender{err: errors.New("boom")}
	notes := &recordingNotifier{}
	form := NewPipeline(sender, Config{}).NewForm(notes)
	form.SetValues(validSubmission())

	assert.Equal(t, OutcomeFailed, form.Submit(context.Background()).Outcome)

	sender.err = nil
	assert.Equal(t, OutcomeDelivered, form.Submit(context.Background()).Outcome)
	assert.Equal(t, int32(2), sender.calls.Load())
	assert.Len(t, notes.all(), 2)
}

func TestForm_SetField(t *testing.T) {
	form := NewPipeline(&countingSender{}, Config{}).NewForm(nil)
	form.SetField(FieldName, "Bob")
	form.SetField(FieldEmail, "bob@example.com")
	form.SetField(FieldMessage, "A longer message body")
	form.SetField("subject", "ignored")

	assert.Equal(t, model.ContactSubmission{
		Name:    "Bob",
		Email:   "bob@example.com",
		Message: "A longer message body",
	}, form.Values())
}

func TestStateAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "delivered", OutcomeDelivered.String())
	assert.Equal(t, "unknown", State(42).String())
}
