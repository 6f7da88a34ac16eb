package poll

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrInvalidOptions = errors.New("poll must have 2 to 6 non-empty options")
	ErrInvalidEndDate = errors.New("poll end date must be in the future")
	ErrTitleRequired  = errors.New("poll title required")
	ErrHostelRequired = errors.New("hostel binding required for this creator")
	ErrNotPollOwner   = errors.New("requester does not own this poll")
)

type CreateInput struct {
	Title       string
	Description *string
	Options     []string
	EndsAt      time.Time
	HostelID    *string
}

type Service struct {
	repo    Repository
	tallies TallySource
	now     func() time.Time
}

func NewService(repo Repository, tallies TallySource) *Service {
	return &Service{repo: repo, tallies: tallies, now: time.Now}
}

// Create validates and persists a new poll bound to the creator's hostel.
// Only admins may override the binding; an admin creating without a hostel
// produces a global poll visible to everyone.
func (s *Service) Create(ctx context.Context, creatorID, creatorRole string, creatorHostel *string, in CreateInput) (*Poll, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	opts := make([]string, 0, len(in.Options))
	for _, o := range in.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return nil, ErrInvalidOptions
		}
		opts = append(opts, o)
	}
	if len(opts) < MinOptions || len(opts) > MaxOptions {
		return nil, ErrInvalidOptions
	}

	if !in.EndsAt.After(s.now()) {
		return nil, ErrInvalidEndDate
	}

	hostelID := creatorHostel
	if creatorRole == "admin" {
		hostelID = in.HostelID
	} else if hostelID == nil {
		return nil, ErrHostelRequired
	}

	p := &Poll{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Options:     opts,
		HostelID:    hostelID,
		CreatorID:   creatorID,
		Status:      StatusActive,
		EndsAt:      in.EndsAt,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get reconstructs the poll read-model from the vote ledger. Total votes is
// the sum of per-option tallies, which equals the ledger row count for the
// poll. Leading-option ties break toward the lowest index; a zero-vote poll
// has no leader (index -1, 0%).
func (s *Service) Get(ctx context.Context, id string, withVoters bool) (*View, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, total, err := s.tallies.CountByPoll(ctx, id)
	if err != nil {
		return nil, err
	}

	var voters map[int][]Voter
	if withVoters {
		voters, err = s.tallies.VotersByPoll(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	return s.buildView(p, counts, total, voters), nil
}

// List returns the polls visible to the viewer with counts only, newest first.
// Students and wardens see their hostel's polls plus global ones; admins see all.
func (s *Service) List(ctx context.Context, role string, hostelID *string) ([]View, error) {
	polls, err := s.repo.ListVisible(ctx, role, hostelID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(polls))
	for i := range polls {
		counts, total, err := s.tallies.CountByPoll(ctx, polls[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, *s.buildView(&polls[i], counts, total, nil))
	}
	return views, nil
}

func (s *Service) Close(ctx context.Context, id, requesterID, requesterRole string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.CreatorID != requesterID && requesterRole != "admin" {
		return ErrNotPollOwner
	}
	return s.repo.UpdateStatus(ctx, id, StatusClosed)
}

// Delete removes the poll and every ledger row for it in one unit of work.
func (s *Service) Delete(ctx context.Context, id, requesterID, requesterRole string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.CreatorID != requesterID && requesterRole != "admin" {
		return ErrNotPollOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) buildView(p *Poll, counts map[int]int64, total int64, voters map[int][]Voter) *View {
	tallies := make([]OptionTally, len(p.Options))
	for i, text := range p.Options {
		tallies[i] = OptionTally{Index: i, Text: text, Votes: counts[i]}
		if voters != nil {
			vs := voters[i]
			sort.Slice(vs, func(a, b int) bool { return vs[a].Name < vs[b].Name })
			tallies[i].Voters = vs
		}
	}

	leading := -1
	var leadingVotes int64
	for i := range tallies {
		if tallies[i].Votes > leadingVotes {
			leading = i
			leadingVotes = tallies[i].Votes
		}
	}

	var pct float64
	if total > 0 && leading >= 0 {
		pct = float64(leadingVotes) * 100.0 / float64(total)
	}

	return &View{
		Poll:            *p,
		EffectiveStatus: EffectiveStatus(p, s.now()),
		Tallies:         tallies,
		TotalVotes:      total,
		LeadingIndex:    leading,
		LeadingPercent:  pct,
	}
}
