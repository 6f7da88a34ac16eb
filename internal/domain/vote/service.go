package vote

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyVoted  = errors.New("user already voted in this poll")
	ErrPollClosed    = errors.New("poll is closed")
	ErrPollNotFound  = errors.New("poll not found")
	ErrInvalidOption = errors.New("option index out of range")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Cast records one vote for the caller. Status and end date are re-read here
// regardless of what any earlier read showed, so a cast can never race past a
// read-time-only expiry check. Uniqueness is not pre-checked in the
// application: the insert itself fails with ErrAlreadyVoted on the ledger's
// (poll_id, user_id) constraint, which holds under concurrent attempts.
func (s *Service) Cast(ctx context.Context, pollID, userID string, optionIndex int) (*Vote, error) {
	meta, err := s.repo.PollMeta(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if meta.Status != "active" || s.now().After(meta.EndsAt) {
		return nil, ErrPollClosed
	}
	if optionIndex < 0 || optionIndex >= meta.OptionCount {
		return nil, ErrInvalidOption
	}

	v := &Vote{
		ID:          uuid.NewString(),
		PollID:      pollID,
		UserID:      userID,
		OptionIndex: optionIndex,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}
