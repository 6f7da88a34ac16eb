// Package notification holds the in-app notification model and the audience
// queries the dispatch worker needs. Delivery is fire-and-forget: failures are
// logged by the worker and never escalate into the mutation that produced the
// event.
package notification

import (
	"context"
	"time"
)

const (
	TypeIssue   = "issue"
	TypePoll    = "poll"
	TypeSystem  = "system"
	TypeAccount = "account"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Link      *string   `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Recipient pairs a target user with their email preference so the worker can
// decide whether to queue an email alongside the in-app row.
type Recipient struct {
	UserID     string
	Email      string
	Name       string
	WantsEmail bool
}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error

	StudentsByHostel(ctx context.Context, hostelID string, excludeUserID string) ([]Recipient, error)
	AllStudents(ctx context.Context, excludeUserID string) ([]Recipient, error)
	Admins(ctx context.Context) ([]Recipient, error)
	WardensByHostel(ctx context.Context, hostelID string) ([]Recipient, error)
	User(ctx context.Context, userID string) (*Recipient, error)
}
