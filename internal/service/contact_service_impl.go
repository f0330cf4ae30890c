package service

import (
	"context"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

const (
	defaultContactListLimit = 20
	maxContactListLimit     = 100
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
	now  func() time.Time
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo, now: time.Now}
}

// Submit stores a new contact message. It trims the fields, sets the status to
// "unread" and populates CreatedAt/UpdatedAt before persisting.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	now := s.now().UTC()
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	msg.Status = model.ContactStatusUnread
	msg.CreatedAt = now
	msg.UpdatedAt = now
	return s.repo.Save(ctx, msg)
}

// List clamps the pagination options and forwards them to the repository.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultContactListLimit
	}
	if opts.Limit > maxContactListLimit {
		opts.Limit = maxContactListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	msgs, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []*model.ContactMessage{}
	}
	return msgs, nil
}

// UpdateStatus changes the status of a contact message.
func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id string, status string) error {
	if status != model.ContactStatusRead && status != model.ContactStatusUnread {
		return ErrInvalidContactStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
