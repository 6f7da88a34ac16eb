package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hostel-system/internal/domain/notification"
)

type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	query := `
        INSERT INTO notifications (id, user_id, title, message, type, link)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at
    `
	return r.db.QueryRowContext(ctx, query, n.ID, n.UserID, n.Title, n.Message, n.Type, n.Link).
		Scan(&n.CreatedAt)
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, title, message, type, link, read, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, rows.Err()
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2
    `, id, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE user_id = $1`, userID)
	return err
}

func (r *NotificationRepo) StudentsByHostel(ctx context.Context, hostelID, excludeUserID string) ([]notification.Recipient, error) {
	return r.recipients(ctx, `
        SELECT id, email, name, email_notifications
        FROM users
        WHERE hostel_id = $1 AND role = 'student' AND is_active AND id != $2
    `, hostelID, excludeUserID)
}

func (r *NotificationRepo) AllStudents(ctx context.Context, excludeUserID string) ([]notification.Recipient, error) {
	return r.recipients(ctx, `
        SELECT id, email, name, email_notifications
        FROM users
        WHERE role = 'student' AND is_active AND id != $1
    `, excludeUserID)
}

func (r *NotificationRepo) Admins(ctx context.Context) ([]notification.Recipient, error) {
	return r.recipients(ctx, `
        SELECT id, email, name, email_notifications
        FROM users
        WHERE role = 'admin' AND is_active
    `)
}

func (r *NotificationRepo) WardensByHostel(ctx context.Context, hostelID string) ([]notification.Recipient, error) {
	return r.recipients(ctx, `
        SELECT u.id, u.email, u.name, u.email_notifications
        FROM users u
        JOIN hostels h ON h.warden_id = u.id
        WHERE h.id = $1 AND u.is_active
    `, hostelID)
}

func (r *NotificationRepo) User(ctx context.Context, userID string) (*notification.Recipient, error) {
	rcpt := &notification.Recipient{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, email, name, email_notifications
        FROM users WHERE id = $1
    `, userID).Scan(&rcpt.UserID, &rcpt.Email, &rcpt.Name, &rcpt.WantsEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("notification recipient not found")
		}
		return nil, err
	}
	return rcpt, nil
}

func (r *NotificationRepo) recipients(ctx context.Context, query string, args ...any) ([]notification.Recipient, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []notification.Recipient
	for rows.Next() {
		var rcpt notification.Recipient
		if err := rows.Scan(&rcpt.UserID, &rcpt.Email, &rcpt.Name, &rcpt.WantsEmail); err != nil {
			return nil, err
		}
		res = append(res, rcpt)
	}
	return res, rows.Err()
}
