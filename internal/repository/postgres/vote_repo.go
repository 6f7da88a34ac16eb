package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"hostel-system/internal/domain/poll"
	"hostel-system/internal/domain/vote"
)

type VoteRepo struct {
	db *sql.DB
}

func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// Create appends one ledger row. The UNIQUE(poll_id, user_id) constraint is
// what enforces one-vote-per-voter under concurrency; a 23505 from the insert
// surfaces as vote.ErrAlreadyVoted.
func (r *VoteRepo) Create(ctx context.Context, v *vote.Vote) error {
	query := `
        INSERT INTO poll_votes (id, poll_id, user_id, option_index)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `
	err := r.db.QueryRowContext(ctx, query, v.ID, v.PollID, v.UserID, v.OptionIndex).
		Scan(&v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return vote.ErrAlreadyVoted
		}
		return err
	}
	return nil
}

// PollMeta reads the target poll's status, end date and option count fresh,
// immediately before a cast.
func (r *VoteRepo) PollMeta(ctx context.Context, pollID string) (*vote.PollMeta, error) {
	m := &vote.PollMeta{}
	err := r.db.QueryRowContext(ctx, `
        SELECT status, ends_at, jsonb_array_length(options)
        FROM polls WHERE id = $1
    `, pollID).Scan(&m.Status, &m.EndsAt, &m.OptionCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vote.ErrPollNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *VoteRepo) CountByPoll(ctx context.Context, pollID string) (map[int]int64, int64, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT option_index, COUNT(*)
        FROM poll_votes
        WHERE poll_id = $1
        GROUP BY option_index
    `, pollID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res := make(map[int]int64)
	var total int64
	for rows.Next() {
		var idx int
		var c int64
		if err := rows.Scan(&idx, &c); err != nil {
			return nil, 0, err
		}
		res[idx] = c
		total += c
	}

	return res, total, rows.Err()
}

// VotersByPoll resolves every ledger row to a display profile, grouped by
// option index. Only identity attributes leave this query, never credentials.
func (r *VoteRepo) VotersByPoll(ctx context.Context, pollID string) (map[int][]poll.Voter, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT v.option_index, u.id, u.name, u.role, u.hostel_id
        FROM poll_votes v
        JOIN users u ON u.id = v.user_id
        WHERE v.poll_id = $1
        ORDER BY v.created_at
    `, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[int][]poll.Voter)
	for rows.Next() {
		var idx int
		var vt poll.Voter
		if err := rows.Scan(&idx, &vt.ID, &vt.Name, &vt.Role, &vt.HostelID); err != nil {
			return nil, err
		}
		res[idx] = append(res[idx], vt)
	}
	return res, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
