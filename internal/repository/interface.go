package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository defines the persistence interface for inbox messages.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	// UpdateStatus returns ErrNotFound when no message has the given id.
	UpdateStatus(ctx context.Context, id, status string) error
}

// ContactStore is a ContactRepository that owns a connection.
type ContactStore interface {
	ContactRepository
	DB
	Close()
}
