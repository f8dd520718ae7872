package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/metrics"
	"github.com/osa911/folio/internal/relay"
)

// ContactService owns the live contact form instances. Every browser tab
// gets its own controller, addressed by a random id.
type ContactService struct {
	sender relay.Sender
	opts   contact.Options
	logger *logging.Logger
	now    func() time.Time

	mu    sync.RWMutex
	forms map[uuid.UUID]*formEntry
}

type formEntry struct {
	ctrl     *contact.Controller
	lastSeen time.Time
}

// NewContactService creates a contact service. opts is applied to every
// controller it creates.
func NewContactService(sender relay.Sender, opts contact.Options) *ContactService {
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobalLogger()
	}
	return &ContactService{
		sender: sender,
		opts:   opts,
		logger: opts.Logger,
		now:    time.Now,
		forms:  make(map[uuid.UUID]*formEntry),
	}
}

// Configured reports whether all relay credentials are present
func (s *ContactService) Configured() bool {
	return s.opts.Credentials.Complete()
}

func (s *ContactService) newController() *contact.Controller {
	ctrl := contact.NewController(s.sender, s.opts)
	ctrl.Subscribe(metrics.ObserveStatus)
	return ctrl
}

// OpenForm creates a fresh Idle form instance
func (s *ContactService) OpenForm() (uuid.UUID, *contact.Controller) {
	id := uuid.New()
	ctrl := s.newController()

	s.mu.Lock()
	s.forms[id] = &formEntry{ctrl: ctrl, lastSeen: s.now()}
	n := len(s.forms)
	s.mu.Unlock()

	metrics.FormsOpen.Set(float64(n))
	s.logger.Debug("Opened contact form %s", id)
	return id, ctrl
}

// Form returns the controller for id and marks it as recently used
func (s *ContactService) Form(id uuid.UUID) (*contact.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.forms[id]
	if !ok {
		return nil, fmt.Errorf("contact form %s: %w", id, ErrNotFound)
	}
	entry.lastSeen = s.now()
	return entry.ctrl, nil
}

// CloseForm tears down the form instance
func (s *ContactService) CloseForm(id uuid.UUID) error {
	s.mu.Lock()
	entry, ok := s.forms[id]
	if ok {
		delete(s.forms, id)
	}
	n := len(s.forms)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("contact form %s: %w", id, ErrNotFound)
	}
	entry.ctrl.Close()
	metrics.FormsOpen.Set(float64(n))
	s.logger.Debug("Closed contact form %s", id)
	return nil
}

// SubmitOnce runs a complete submission on a throwaway form instance
func (s *ContactService) SubmitOnce(ctx context.Context, form contact.FormState) (contact.Status, error) {
	ctrl := s.newController()
	defer ctrl.Close()

	if err := ctrl.SetForm(form); err != nil {
		return contact.Status{}, err
	}
	return s.submit(ctx, ctrl)
}

// SubmitForm submits the form instance id
func (s *ContactService) SubmitForm(ctx context.Context, id uuid.UUID) (contact.Status, error) {
	ctrl, err := s.Form(id)
	if err != nil {
		return contact.Status{}, err
	}
	return s.submit(ctx, ctrl)
}

func (s *ContactService) submit(ctx context.Context, ctrl *contact.Controller) (contact.Status, error) {
	status, err := ctrl.Submit(ctx)
	if errors.Is(err, contact.ErrInvalidForm) {
		metrics.ValidationBlockedTotal.Inc()
	}
	return status, err
}

// Sweep closes forms idle for longer than ttl and returns how many it closed.
// A form that is still Sending is kept regardless of age.
func (s *ContactService) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	var expired []*contact.Controller
	s.mu.Lock()
	for id, entry := range s.forms {
		if entry.lastSeen.After(cutoff) {
			continue
		}
		if entry.ctrl.Status().Kind == contact.StatusSending {
			continue
		}
		expired = append(expired, entry.ctrl)
		delete(s.forms, id)
	}
	n := len(s.forms)
	s.mu.Unlock()

	for _, ctrl := range expired {
		ctrl.Close()
	}
	metrics.FormsOpen.Set(float64(n))
	metrics.FormsExpired.Add(float64(len(expired)))
	return len(expired)
}

// Len returns the number of live form instances
func (s *ContactService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forms)
}

// Shutdown closes every form instance
func (s *ContactService) Shutdown() {
	s.mu.Lock()
	forms := s.forms
	s.forms = make(map[uuid.UUID]*formEntry)
	s.mu.Unlock()

	for _, entry := range forms {
		entry.ctrl.Close()
	}
	metrics.FormsOpen.Set(0)
}
