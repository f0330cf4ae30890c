package model

import "time"

// ContactSubmission is the payload of one contact-form submit. It is never stored as-is.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// IsZero reports whether every field is empty.
func (s ContactSubmission) IsZero() bool {
	return s.Name == "" && s.Email == "" && s.Message == ""
}

// ContactMessage represents a message received by the inbox.
type ContactMessage struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // "unread" | "read"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ContactStatusUnread = "unread"
	ContactStatusRead   = "read"
)

// ContactListOptions carries filter and pagination parameters for listing contact messages.
type ContactListOptions struct {
	// Status filters by message status: "", "all", "unread", "read".
	// Empty string and "all" return all messages.
	Status string
	Limit  int
	Offset int
}
