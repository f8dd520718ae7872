package service

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSender struct {
	calls    atomic.Int32
	response *relay.Response
	err      error
}

func (s *countingSender) Send(ctx context.Context, payload relay.Payload) (*relay.Response, error) {
	s.calls.Add(1)
	return s.response, s.err
}

func newTestService(sender relay.Sender, creds relay.Credentials) *ContactService {
	return NewContactService(sender, contact.Options{
		Credentials:   creds,
		RecipientName: "Subhan Khan",
		ResetAfter:    time.Hour,
		Logger:        logging.NewWriterLogger(io.Discard, logging.LevelError),
	})
}

var creds = relay.Credentials{ServiceID: "s", TemplateID: "t", PublicKey: "p"}

func TestOpenSubmitClose(t *testing.T) {
	sender := &countingSender{response: &relay.Response{Status: 200}}
	svc := newTestService(sender, creds)
	defer svc.Shutdown()

	id, ctrl := svc.OpenForm()
	assert.Equal(t, 1, svc.Len())
	require.NoError(t, ctrl.SetForm(contact.FormState{Name: "Jane", Email: "jane@x.com", Message: "Hi"}))

	status, err := svc.SubmitForm(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, contact.StatusSuccess, status.Kind)
	assert.EqualValues(t, 1, sender.calls.Load())

	got, err := svc.Form(id)
	require.NoError(t, err)
	assert.Same(t, ctrl, got)

	require.NoError(t, svc.CloseForm(id))
	assert.True(t, ctrl.Closed())
	assert.Zero(t, svc.Len())

	_, err = svc.Form(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.CloseForm(id), ErrNotFound)
	_, err = svc.SubmitForm(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitOnce(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sender := &countingSender{response: &relay.Response{Status: 200}}
		svc := newTestService(sender, creds)

		status, err := svc.SubmitOnce(context.Background(), contact.FormState{Name: "Jane", Email: "jane@x.com", Message: "Hi"})
		require.NoError(t, err)
		assert.Equal(t, contact.SuccessMessage, status.Message)
		assert.Zero(t, svc.Len(), "one-shot forms are not registered")
	})

	t.Run("missing credentials", func(t *testing.T) {
		sender := &countingSender{response: &relay.Response{Status: 200}}
		svc := newTestService(sender, relay.Credentials{})
		assert.False(t, svc.Configured())

		status, err := svc.SubmitOnce(context.Background(), contact.FormState{Name: "Jane", Email: "jane@x.com", Message: "Hi"})
		require.NoError(t, err)
		assert.Equal(t, contact.ConfigurationMessage, status.Message)
		assert.Zero(t, sender.calls.Load())
	})

	t.Run("validation blocked", func(t *testing.T) {
		sender := &countingSender{response: &relay.Response{Status: 200}}
		svc := newTestService(sender, creds)

		_, err := svc.SubmitOnce(context.Background(), contact.FormState{Name: "Jane"})
		assert.True(t, errors.Is(err, contact.ErrInvalidForm))
		assert.Zero(t, sender.calls.Load())
	})
}

func TestSweep(t *testing.T) {
	svc := newTestService(&countingSender{response: &relay.Response{Status: 200}}, creds)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	oldID, oldCtrl := svc.OpenForm()
	now = now.Add(20 * time.Minute)
	freshID, _ := svc.OpenForm()
	now = now.Add(15 * time.Minute)

	closed := svc.Sweep(30 * time.Minute)
	assert.Equal(t, 1, closed)
	assert.True(t, oldCtrl.Closed())

	_, err := svc.Form(oldID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Form(freshID)
	assert.NoError(t, err)
}

func TestShutdownClosesEverything(t *testing.T) {
	svc := newTestService(&countingSender{}, creds)
	_, a := svc.OpenForm()
	_, b := svc.OpenForm()

	svc.Shutdown()

	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.Zero(t, svc.Len())
}
