package vote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hostel-system/internal/domain/poll"
)

type memoryLedger struct {
	mu     sync.Mutex
	metas  map[string]*PollMeta
	rows   []Vote
	byUser map[string]map[string]bool
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		metas:  make(map[string]*PollMeta),
		byUser: make(map[string]map[string]bool),
	}
}

func (r *memoryLedger) seedPoll(id string, meta PollMeta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metas[id] = &meta
}

func (r *memoryLedger) Create(ctx context.Context, v *Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byUser[v.PollID] == nil {
		r.byUser[v.PollID] = make(map[string]bool)
	}
	if r.byUser[v.PollID][v.UserID] {
		return ErrAlreadyVoted
	}
	r.byUser[v.PollID][v.UserID] = true
	v.CreatedAt = time.Now()
	r.rows = append(r.rows, *v)
	return nil
}

func (r *memoryLedger) PollMeta(ctx context.Context, pollID string) (*PollMeta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.metas[pollID]
	if !ok {
		return nil, ErrPollNotFound
	}
	copyMeta := *m
	return &copyMeta, nil
}

func (r *memoryLedger) CountByPoll(ctx context.Context, pollID string) (map[int]int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make(map[int]int64)
	var total int64
	for _, v := range r.rows {
		if v.PollID == pollID {
			res[v.OptionIndex]++
			total++
		}
	}
	return res, total, nil
}

func (r *memoryLedger) VotersByPoll(ctx context.Context, pollID string) (map[int][]poll.Voter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make(map[int][]poll.Voter)
	for _, v := range r.rows {
		if v.PollID == pollID {
			res[v.OptionIndex] = append(res[v.OptionIndex], poll.Voter{ID: v.UserID})
		}
	}
	return res, nil
}

func (r *memoryLedger) ledgerCount(pollID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.rows {
		if v.PollID == pollID {
			n++
		}
	}
	return n
}

func activeMeta(options int) PollMeta {
	return PollMeta{Status: "active", EndsAt: time.Now().Add(time.Hour), OptionCount: options}
}

func TestCastRecordsOneVotePerUser(t *testing.T) {
	repo := newMemoryLedger()
	repo.seedPoll("p1", activeMeta(2))
	svc := NewService(repo)
	ctx := context.Background()

	v, err := svc.Cast(ctx, "p1", "u1", 1)
	if err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	if v.OptionIndex != 1 || v.ID == "" {
		t.Fatalf("unexpected vote %+v", v)
	}

	if _, err := svc.Cast(ctx, "p1", "u1", 0); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	counts, total, _ := repo.CountByPoll(ctx, "p1")
	if total != 1 || counts[1] != 1 || counts[0] != 0 {
		t.Fatalf("duplicate cast mutated tallies: counts=%v total=%d", counts, total)
	}
}

func TestCastRejectsClosedAndExpiredPolls(t *testing.T) {
	repo := newMemoryLedger()
	repo.seedPoll("closed", PollMeta{Status: "closed", EndsAt: time.Now().Add(time.Hour), OptionCount: 2})
	repo.seedPoll("expired", PollMeta{Status: "active", EndsAt: time.Now().Add(-time.Minute), OptionCount: 2})
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Cast(ctx, "closed", "u1", 0); !errors.Is(err, ErrPollClosed) {
		t.Fatalf("expected ErrPollClosed for closed poll, got %v", err)
	}
	if _, err := svc.Cast(ctx, "expired", "u1", 0); !errors.Is(err, ErrPollClosed) {
		t.Fatalf("expected ErrPollClosed for expired poll, got %v", err)
	}
	if n := repo.ledgerCount("closed") + repo.ledgerCount("expired"); n != 0 {
		t.Fatalf("rejected casts left %d ledger rows", n)
	}
}

func TestCastValidatesOptionIndex(t *testing.T) {
	repo := newMemoryLedger()
	repo.seedPoll("p1", activeMeta(2))
	svc := NewService(repo)
	ctx := context.Background()

	for _, idx := range []int{-1, 2, 5} {
		if _, err := svc.Cast(ctx, "p1", "u1", idx); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("index %d: expected ErrInvalidOption, got %v", idx, err)
		}
	}
	if repo.ledgerCount("p1") != 0 {
		t.Fatalf("invalid option mutated the ledger")
	}
}

func TestCastUnknownPoll(t *testing.T) {
	svc := NewService(newMemoryLedger())
	if _, err := svc.Cast(context.Background(), "missing", "u1", 0); !errors.Is(err, ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}

// Concurrent duplicate casts must produce exactly one ledger row; everyone
// else gets ErrAlreadyVoted from the uniqueness constraint.
func TestConcurrentDuplicateCasts(t *testing.T) {
	repo := newMemoryLedger()
	repo.seedPoll("p1", activeMeta(3))
	svc := NewService(repo)
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Cast(ctx, "p1", "u1", i%3)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyVoted):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != attempts-1 {
		t.Fatalf("expected exactly one success, got ok=%d dup=%d", ok, dup)
	}

	if _, total, _ := repo.CountByPoll(ctx, "p1"); total != repo.ledgerCount("p1") || total != 1 {
		t.Fatalf("tally total %d disagrees with ledger %d", total, repo.ledgerCount("p1"))
	}
}

func TestTallyTotalsMatchLedger(t *testing.T) {
	repo := newMemoryLedger()
	repo.seedPoll("p1", activeMeta(3))
	svc := NewService(repo)
	ctx := context.Background()

	users := []string{"a", "b", "c", "d", "e"}
	for i, u := range users {
		if _, err := svc.Cast(ctx, "p1", u, i%3); err != nil {
			t.Fatalf("cast %s: %v", u, err)
		}
	}

	counts, total, err := repo.CountByPoll(ctx, "p1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	var sum int64
	for _, c := range counts {
		sum += c
	}
	if sum != total || total != repo.ledgerCount("p1") || total != int64(len(users)) {
		t.Fatalf("invariant broken: sum=%d total=%d ledger=%d", sum, total, repo.ledgerCount("p1"))
	}
}
