package hostel

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrHostelNotFound = errors.New("hostel not found")
	ErrNameRequired   = errors.New("hostel name required")
	ErrNameTaken      = errors.New("hostel name already taken")
	ErrBadCapacity    = errors.New("hostel capacity must be positive")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, h *Hostel) (*Hostel, error) {
	if h.Name == "" {
		return nil, ErrNameRequired
	}
	if h.Capacity <= 0 {
		return nil, ErrBadCapacity
	}
	h.ID = uuid.NewString()
	if h.Facilities == nil {
		h.Facilities = []string{}
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Hostel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Hostel, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, h *Hostel) error {
	if h.Name == "" {
		return ErrNameRequired
	}
	if h.Capacity <= 0 {
		return ErrBadCapacity
	}
	return s.repo.Update(ctx, h)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
