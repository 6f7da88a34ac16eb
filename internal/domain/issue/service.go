package issue

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIssueNotFound   = errors.New("issue not found")
	ErrInvalidCategory = errors.New("invalid issue category")
	ErrInvalidPriority = errors.New("invalid issue priority")
	ErrInvalidStatus   = errors.New("invalid issue status")
	ErrHostelRequired  = errors.New("reporter must belong to a hostel")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
}

func (s *Service) Create(ctx context.Context, studentID string, hostelID *string, in CreateInput) (*Issue, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, errors.New("title and description required")
	}
	if !contains(Categories, in.Category) {
		return nil, ErrInvalidCategory
	}
	if !contains(Priorities, in.Priority) {
		return nil, ErrInvalidPriority
	}
	if hostelID == nil {
		return nil, ErrHostelRequired
	}

	i := &Issue{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      StatusOpen,
		StudentID:   studentID,
		HostelID:    *hostelID,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Issue, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForViewer scopes issues the way dashboards do: students see their own,
// wardens their hostel's, admins everything.
func (s *Service) ListForViewer(ctx context.Context, viewerID, role string, hostelID *string) ([]Issue, error) {
	switch role {
	case "admin":
		return s.repo.ListAll(ctx)
	case "warden":
		if hostelID == nil {
			return []Issue{}, nil
		}
		return s.repo.ListByHostel(ctx, *hostelID)
	default:
		return s.repo.ListByStudent(ctx, viewerID)
	}
}

// UpdateStatus moves an issue through its lifecycle. resolved_at is stamped
// when the status becomes resolved and cleared otherwise.
func (s *Service) UpdateStatus(ctx context.Context, id, status string, assignedTo *string) (*Issue, error) {
	if status != StatusOpen && status != StatusInProgress && status != StatusResolved && status != StatusClosed {
		return nil, ErrInvalidStatus
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	var resolvedAt *time.Time
	if status == StatusResolved {
		t := s.now()
		resolvedAt = &t
	}

	if err := s.repo.UpdateStatus(ctx, id, status, assignedTo, resolvedAt); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
