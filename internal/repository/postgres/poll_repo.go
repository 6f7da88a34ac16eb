package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"hostel-system/internal/domain/poll"
)

type PollRepo struct {
	db *sql.DB
}

func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{db: db}
}

func (r *PollRepo) Create(ctx context.Context, p *poll.Poll) error {
	opts, err := json.Marshal(p.Options)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO polls (id, title, description, options, hostel_id, creator_id, status, ends_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	return r.db.QueryRowContext(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		opts,
		p.HostelID,
		p.CreatorID,
		p.Status,
		p.EndsAt,
	).Scan(&p.CreatedAt)
}

func (r *PollRepo) GetByID(ctx context.Context, id string) (*poll.Poll, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, title, description, options, hostel_id, creator_id, status, ends_at, created_at
        FROM polls WHERE id = $1
    `, id)

	p, err := scanPoll(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, poll.ErrPollNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListVisible scopes polls by viewer: admins see everything, everyone else
// sees their hostel's polls plus global ones (hostel_id IS NULL).
func (r *PollRepo) ListVisible(ctx context.Context, role string, hostelID *string) ([]poll.Poll, error) {
	query := `
        SELECT id, title, description, options, hostel_id, creator_id, status, ends_at, created_at
        FROM polls
    `
	var rows *sql.Rows
	var err error

	switch {
	case role == "admin":
		rows, err = r.db.QueryContext(ctx, query+" ORDER BY created_at DESC")
	case hostelID != nil:
		rows, err = r.db.QueryContext(ctx, query+" WHERE hostel_id = $1 OR hostel_id IS NULL ORDER BY created_at DESC", *hostelID)
	default:
		rows, err = r.db.QueryContext(ctx, query+" WHERE hostel_id IS NULL ORDER BY created_at DESC")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []poll.Poll
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func (r *PollRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE polls SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return poll.ErrPollNotFound
	}
	return nil
}

// Delete removes the poll and its ledger rows in one transaction. The votes
// FK also cascades, but the explicit delete keeps the invariant visible and
// does not depend on schema details.
func (r *PollRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM poll_votes WHERE poll_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return poll.ErrPollNotFound
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*poll.Poll, error) {
	p := &poll.Poll{}
	var optsRaw []byte
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &optsRaw,
		&p.HostelID, &p.CreatorID, &p.Status, &p.EndsAt, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(optsRaw, &p.Options); err != nil {
		return nil, err
	}
	return p, nil
}
