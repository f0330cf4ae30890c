package service

import (
	"context"
	"errors"

	"github.com/portfolio/backend/internal/model"
)

// ErrInvalidContactStatus is returned when a status other than "read" or
// "unread" is requested.
var ErrInvalidContactStatus = errors.New("invalid contact status")

// ContactService defines the business logic for the contact inbox.
type ContactService interface {
	// Submit stores a new contact message. The msg.ID and timestamps will be
	// populated by the implementation.
	Submit(ctx context.Context, msg *model.ContactMessage) error

	// List returns contact messages according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)

	// UpdateStatus marks a message read or unread.
	UpdateStatus(ctx context.Context, id string, status string) error
}
