package vote

import (
	"context"
	"time"

	"hostel-system/internal/domain/poll"
)

// Vote is one immutable ledger row. There is no update or delete on this
// interface; the ledger only ever grows until its poll is removed.
type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	UserID      string    `json:"user_id"`
	OptionIndex int       `json:"option_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// PollMeta is the fresh per-cast snapshot of the target poll. Read immediately
// before the insert, never cached.
type PollMeta struct {
	Status      string
	EndsAt      time.Time
	OptionCount int
}

type Repository interface {
	// Create appends a ledger row. The storage layer's UNIQUE(poll_id, user_id)
	// constraint closes the duplicate-vote race; implementations map that
	// violation to ErrAlreadyVoted.
	Create(ctx context.Context, v *Vote) error
	PollMeta(ctx context.Context, pollID string) (*PollMeta, error)
	CountByPoll(ctx context.Context, pollID string) (map[int]int64, int64, error)
	VotersByPoll(ctx context.Context, pollID string) (map[int][]poll.Voter, error)
}
