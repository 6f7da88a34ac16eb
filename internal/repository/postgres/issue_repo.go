package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hostel-system/internal/domain/issue"
)

type IssueRepo struct {
	db *sql.DB
}

func NewIssueRepo(db *sql.DB) *IssueRepo {
	return &IssueRepo{db: db}
}

const issueColumns = `id, title, description, category, priority, status, student_id, hostel_id, assigned_to, created_at, updated_at, resolved_at`

func (r *IssueRepo) Create(ctx context.Context, i *issue.Issue) error {
	query := `
        INSERT INTO issues (id, title, description, category, priority, status, student_id, hostel_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at
    `
	return r.db.QueryRowContext(ctx, query,
		i.ID, i.Title, i.Description, i.Category, i.Priority, i.Status, i.StudentID, i.HostelID,
	).Scan(&i.CreatedAt, &i.UpdatedAt)
}

func (r *IssueRepo) GetByID(ctx context.Context, id string) (*issue.Issue, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	i, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, issue.ErrIssueNotFound
		}
		return nil, err
	}
	return i, nil
}

func (r *IssueRepo) ListByStudent(ctx context.Context, studentID string) ([]issue.Issue, error) {
	return r.list(ctx, `SELECT `+issueColumns+` FROM issues WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
}

func (r *IssueRepo) ListByHostel(ctx context.Context, hostelID string) ([]issue.Issue, error) {
	return r.list(ctx, `SELECT `+issueColumns+` FROM issues WHERE hostel_id = $1 ORDER BY created_at DESC`, hostelID)
}

func (r *IssueRepo) ListAll(ctx context.Context) ([]issue.Issue, error) {
	return r.list(ctx, `SELECT `+issueColumns+` FROM issues ORDER BY created_at DESC`)
}

func (r *IssueRepo) UpdateStatus(ctx context.Context, id, status string, assignedTo *string, resolvedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE issues
        SET status = $1,
            assigned_to = COALESCE($2, assigned_to),
            resolved_at = $3,
            updated_at = now()
        WHERE id = $4
    `, status, assignedTo, resolvedAt, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return issue.ErrIssueNotFound
	}
	return nil
}

func (r *IssueRepo) list(ctx context.Context, query string, args ...any) ([]issue.Issue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []issue.Issue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *i)
	}
	return res, rows.Err()
}

func scanIssue(row rowScanner) (*issue.Issue, error) {
	i := &issue.Issue{}
	err := row.Scan(
		&i.ID, &i.Title, &i.Description, &i.Category, &i.Priority, &i.Status,
		&i.StudentID, &i.HostelID, &i.AssignedTo, &i.CreatedAt, &i.UpdatedAt, &i.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}
