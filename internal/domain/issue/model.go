package issue

import (
	"context"
	"time"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

var Categories = []string{"electrical", "plumbing", "furniture", "cleaning", "security", "other"}

var Priorities = []string{"low", "medium", "high"}

type Issue struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	StudentID   string     `json:"student_id"`
	HostelID    string     `json:"hostel_id"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, i *Issue) error
	GetByID(ctx context.Context, id string) (*Issue, error)
	ListByStudent(ctx context.Context, studentID string) ([]Issue, error)
	ListByHostel(ctx context.Context, hostelID string) ([]Issue, error)
	ListAll(ctx context.Context) ([]Issue, error)
	UpdateStatus(ctx context.Context, id, status string, assignedTo *string, resolvedAt *time.Time) error
}
