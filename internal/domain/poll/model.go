package poll

import (
	"context"
	"time"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"

	MinOptions = 2
	MaxOptions = 6
)

// Poll is a question with a fixed, ordered option list. Options are immutable
// after creation: ledger rows reference them by positional index.
type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Options     []string  `json:"options"`
	HostelID    *string   `json:"hostel_id,omitempty"`
	CreatorID   string    `json:"creator_id"`
	Status      string    `json:"status"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Voter is the display profile disclosed on voter lists. Never carries
// credentials, only identity attributes.
type Voter struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	HostelID *string `json:"hostel_id,omitempty"`
}

type OptionTally struct {
	Index  int     `json:"index"`
	Text   string  `json:"text"`
	Votes  int64   `json:"votes"`
	Voters []Voter `json:"voters,omitempty"`
}

// View is the read-model of a poll: static fields joined with tallies
// reconstructed from the vote ledger.
type View struct {
	Poll
	EffectiveStatus string        `json:"effective_status"`
	Tallies         []OptionTally `json:"tallies"`
	TotalVotes      int64         `json:"total_votes"`
	LeadingIndex    int           `json:"leading_index"`
	LeadingPercent  float64       `json:"leading_percent"`
}

type Repository interface {
	Create(ctx context.Context, p *Poll) error
	GetByID(ctx context.Context, id string) (*Poll, error)
	ListVisible(ctx context.Context, role string, hostelID *string) ([]Poll, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// TallySource reads aggregates out of the vote ledger. Implemented by the
// vote repository; the ledger is the single source of truth for counts.
type TallySource interface {
	CountByPoll(ctx context.Context, pollID string) (map[int]int64, int64, error)
	VotersByPoll(ctx context.Context, pollID string) (map[int][]Voter, error)
}
